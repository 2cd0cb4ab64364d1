package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/rewoven/marketplace-backend/internal/repositories"
	"github.com/rewoven/marketplace-backend/internal/services"
)

// ItemHandler handles listing-related HTTP requests
type ItemHandler struct {
	itemService  services.ItemService
	imageService services.ImageService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(itemService services.ItemService, imageService services.ImageService) *ItemHandler {
	return &ItemHandler{
		itemService:  itemService,
		imageService: imageService,
	}
}

// CreateItem handles POST /items
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var request struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Price       float64  `json:"price" binding:"required"`
		Category    string   `json:"category" binding:"required"`
		Condition   string   `json:"condition" binding:"required"`
		Brand       string   `json:"brand"`
		Size        string   `json:"size"`
		Color       string   `json:"color"`
		Location    string   `json:"location"`
		SellerID    string   `json:"sellerId" binding:"required"`
		ImageIDs    []string `json:"imageIds"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := &models.Item{
		Title:       request.Title,
		Description: request.Description,
		Price:       request.Price,
		Category:    request.Category,
		Condition:   request.Condition,
		Brand:       request.Brand,
		Size:        request.Size,
		Color:       request.Color,
		Location:    request.Location,
		SellerID:    request.SellerID,
		ImageIDs:    request.ImageIDs,
	}

	created, err := h.itemService.CreateItem(c, item)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetItem handles GET /items/:id
func (h *ItemHandler) GetItem(c *gin.Context) {
	item, err := h.itemService.GetItem(c, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// ListItems handles GET /items
func (h *ItemHandler) ListItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := repositories.ItemFilter{
		Category: c.Query("category"),
		Status:   models.ItemStatus(c.Query("status")),
		SellerID: c.Query("seller_id"),
		Search:   c.Query("q"),
	}

	items, err := h.itemService.ListItems(c, filter, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list items: " + err.Error()})
		return
	}

	count, err := h.itemService.CountItems(c, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count items: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": count, "page": page, "limit": limit})
}

// RemoveItem handles DELETE /items/:id
func (h *ItemHandler) RemoveItem(c *gin.Context) {
	if err := h.itemService.RemoveItem(c, c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

// UploadImage handles POST /upload
func (h *ItemHandler) UploadImage(c *gin.Context) {
	userID := c.PostForm("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	// Dimensions are reported by the client; the bytes are not decoded
	// here.
	width, _ := strconv.Atoi(c.PostForm("width"))
	height, _ := strconv.Atoi(c.PostForm("height"))

	image, err := h.imageService.StoreUpload(c, services.UploadRequest{
		OriginalName: file.Filename,
		FileSize:     file.Size,
		Width:        width,
		Height:       height,
		UserID:       userID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, image)
}
