package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rewoven/marketplace-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler handles account and order management HTTP requests
type AdminHandler struct {
	adminService services.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GetUsers handles GET /admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.adminService.GetUsers(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get users: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role"`
		Details  string `json:"details"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.adminService.CreateUser(c, request.Name, request.Email, request.Password, request.Role, request.Details)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// DeleteUser handles DELETE /admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	if err := h.adminService.DeleteUser(c, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// PromoteUser handles PATCH /admin/users/:id/promote
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	user, err := h.adminService.PromoteUser(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Failed to promote user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": user.Name + " promoted to Admin"})
}

// SearchUsers handles GET /admin/users/search
func (h *AdminHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter q is required"})
		return
	}

	users, err := h.adminService.SearchUsers(c, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search users: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetOrders handles GET /admin/orders
func (h *AdminHandler) GetOrders(c *gin.Context) {
	orders, err := h.adminService.GetOrders(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get orders: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// CreateOrder handles POST /admin/orders
func (h *AdminHandler) CreateOrder(c *gin.Context) {
	var request struct {
		UserID string `json:"userId" binding:"required"`
		ItemID string `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.adminService.CreateOrder(c, request.UserID, request.ItemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// UpdateOrderStatus handles PATCH /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}

	var request struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminService.UpdateOrderStatus(c, id, request.Status); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to update order: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated to " + request.Status})
}
