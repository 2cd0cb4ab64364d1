package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rewoven/marketplace-backend/internal/services"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory handles POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var request struct {
		Name          string   `json:"name" binding:"required"`
		Subcategories []string `json:"subcategories"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.CreateCategory(c, request.Name, request.Subcategories)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, categories)
}
