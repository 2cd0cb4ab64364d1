package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rewoven/marketplace-backend/internal/services"
)

// PointsHandler handles points-related HTTP requests
type PointsHandler struct {
	pointsService services.PointsService
}

// NewPointsHandler creates a new PointsHandler
func NewPointsHandler(pointsService services.PointsService) *PointsHandler {
	return &PointsHandler{
		pointsService: pointsService,
	}
}

// GetUserPoints handles GET /users/:userId/points
func (h *PointsHandler) GetUserPoints(c *gin.Context) {
	userID := c.Param("userId")

	balance, err := h.pointsService.GetBalance(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get points: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, balance)
}

// GetUserTransactions handles GET /users/:userId/transactions
func (h *PointsHandler) GetUserTransactions(c *gin.Context) {
	userID := c.Param("userId")
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	transactions, err := h.pointsService.GetTransactions(c, userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// ModifyPoints handles POST /users/:userId/points/modify
func (h *PointsHandler) ModifyPoints(c *gin.Context) {
	userID := c.Param("userId")

	var request struct {
		Points int    `json:"points" binding:"required"`
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID, ok := actorFromClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	transaction, err := h.pointsService.AdminAdjust(c, actorID, userID, request.Points, request.Reason)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Points modified successfully", "transactionId": transaction.ID})
}

// RedeemItem handles POST /items/:id/redeem
func (h *PointsHandler) RedeemItem(c *gin.Context) {
	itemID := c.Param("id")

	var request struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.pointsService.Redeem(c, request.UserID, itemID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Item redeemed successfully",
		"pointsSpent": -transaction.PointsChange,
	})
}

// CompleteSwap handles POST /swaps/:id/complete
func (h *PointsHandler) CompleteSwap(c *gin.Context) {
	swapID := c.Param("id")

	var request struct {
		User1ID string `json:"user1Id" binding:"required"`
		User2ID string `json:"user2Id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.pointsService.CompleteSwap(c, swapID, request.User1ID, request.User2ID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Swap completed, points awarded"})
}
