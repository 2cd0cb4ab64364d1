package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rewoven/marketplace-backend/internal/config"
	"github.com/rewoven/marketplace-backend/internal/handlers"
	"github.com/rewoven/marketplace-backend/internal/middleware"
)

// HandlerDependencies collects the handlers wired by main
type HandlerDependencies struct {
	AuthHandler     *handlers.AuthHandler
	PointsHandler   *handlers.PointsHandler
	ItemHandler     *handlers.ItemHandler
	CategoryHandler *handlers.CategoryHandler
	AdminHandler    *handlers.AdminHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		public.POST("/auth/login", deps.AuthHandler.Login)

		// Points queries
		public.GET("/users/:userId/points", deps.PointsHandler.GetUserPoints)
		public.GET("/users/:userId/transactions", deps.PointsHandler.GetUserTransactions)

		// Listings
		items := public.Group("/items")
		{
			items.GET("", deps.ItemHandler.ListItems)
			items.GET("/:id", deps.ItemHandler.GetItem)
			items.POST("", deps.ItemHandler.CreateItem)
			items.POST("/:id/redeem", deps.PointsHandler.RedeemItem)
			items.DELETE("/:id", deps.ItemHandler.RemoveItem)
		}

		// Category taxonomy
		categories := public.Group("/categories")
		{
			categories.GET("", deps.CategoryHandler.ListCategories)
			categories.POST("", deps.CategoryHandler.CreateCategory)
		}

		// Uploads earn points once stored
		public.POST("/upload", deps.ItemHandler.UploadImage)

		// Swap completion
		public.POST("/swaps/:id/complete", deps.PointsHandler.CompleteSwap)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.POST("/users/:userId/points/modify", deps.PointsHandler.ModifyPoints)

		admin := protected.Group("/admin")
		{
			users := admin.Group("/users")
			{
				users.GET("", deps.AdminHandler.GetUsers)
				users.GET("/search", deps.AdminHandler.SearchUsers)
				users.POST("", deps.AdminHandler.CreateUser)
				users.PATCH("/:id/promote", deps.AdminHandler.PromoteUser)
				users.DELETE("/:id", deps.AdminHandler.DeleteUser)
			}

			orders := admin.Group("/orders")
			{
				orders.GET("", deps.AdminHandler.GetOrders)
				orders.POST("", deps.AdminHandler.CreateOrder)
				orders.PATCH("/:id/status", deps.AdminHandler.UpdateOrderStatus)
			}
		}
	}

	return router
}
