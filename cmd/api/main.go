package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rewoven/marketplace-backend/api/routes"
	"github.com/rewoven/marketplace-backend/internal/config"
	"github.com/rewoven/marketplace-backend/internal/handlers"
	"github.com/rewoven/marketplace-backend/internal/repositories"
	mongorepo "github.com/rewoven/marketplace-backend/internal/repositories/mongodb"
	"github.com/rewoven/marketplace-backend/internal/services"
	mongodb "github.com/rewoven/marketplace-backend/pkg/mongodb"
)

func main() {
	// Load .env if present; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err = mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Initialize repositories, assigning to interface types
	var balanceRepo repositories.BalanceRepository = mongorepo.NewBalanceRepository(db)
	var transactionRepo repositories.TransactionRepository = mongorepo.NewTransactionRepository(db)
	var itemRepo repositories.ItemRepository = mongorepo.NewItemRepository(db)
	var imageRepo repositories.ImageRepository = mongorepo.NewImageRepository(db)
	var categoryRepo repositories.CategoryRepository = mongorepo.NewCategoryRepository(db)
	var adminUserRepo repositories.AdminUserRepository = mongorepo.NewAdminUserRepository(db)
	var orderRepo repositories.OrderRepository = mongorepo.NewOrderRepository(db)

	// Initialize services
	authService := services.NewAuthService(adminUserRepo, cfg)
	pointsService := services.NewPointsService(balanceRepo, transactionRepo, itemRepo, mongoClient, authService, cfg.Points)
	itemService := services.NewItemService(itemRepo)
	imageService := services.NewImageService(imageRepo, pointsService, cfg.Upload)
	categoryService := services.NewCategoryService(categoryRepo)
	adminService := services.NewAdminService(adminUserRepo, orderRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	pointsHandler := handlers.NewPointsHandler(pointsService)
	itemHandler := handlers.NewItemHandler(itemService, imageService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	adminHandler := handlers.NewAdminHandler(adminService)

	handlerDeps := routes.HandlerDependencies{
		AuthHandler:     authHandler,
		PointsHandler:   pointsHandler,
		ItemHandler:     itemHandler,
		CategoryHandler: categoryHandler,
		AdminHandler:    adminHandler,
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
