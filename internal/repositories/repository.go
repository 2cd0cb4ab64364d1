package repositories

import (
	"context"

	"github.com/rewoven/marketplace-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TxRunner executes fn within a single storage transaction. Every write
// issued through the callback context commits atomically: if fn returns an
// error, none of them are applied.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// BalanceRepository defines the interface for point balance operations
type BalanceRepository interface {
	Create(ctx context.Context, balance *models.PointBalance) error
	FindByUserID(ctx context.Context, userID string) (*models.PointBalance, error)
	Update(ctx context.Context, balance *models.PointBalance) error
}

// TransactionRepository defines the interface for point transaction operations.
// Transactions are append-only; there is deliberately no update or delete.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *models.PointTransaction) error
	FindByUserID(ctx context.Context, userID string, limit int64) ([]*models.PointTransaction, error)
}

// ItemFilter narrows item listing queries.
type ItemFilter struct {
	Category string
	Status   models.ItemStatus
	SellerID string
	Search   string
}

// ItemRepository defines the interface for listing data operations
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	FindByItemID(ctx context.Context, itemID string) (*models.Item, error)
	Find(ctx context.Context, filter ItemFilter, page, limit int) ([]*models.Item, error)
	UpdateStatus(ctx context.Context, itemID string, status models.ItemStatus) error
	IncrementViews(ctx context.Context, itemID string) error
	Count(ctx context.Context, filter ItemFilter) (int64, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	FindByName(ctx context.Context, name string) (*models.Category, error)
	FindAll(ctx context.Context) ([]*models.Category, error)
}

// ImageRepository defines the interface for upload metadata operations
type ImageRepository interface {
	Create(ctx context.Context, image *models.ImageMetadata) error
	FindByImageID(ctx context.Context, imageID string) (*models.ImageMetadata, error)
}

// AdminUserRepository defines the interface for account data operations
type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Update(ctx context.Context, user *models.AdminUser) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindAll(ctx context.Context) ([]*models.AdminUser, error)
	Search(ctx context.Context, query string) ([]*models.AdminUser, error)
}

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindAll(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
}
