package services

import (
	"context"

	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/rewoven/marketplace-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PointsService defines the interface for the points engine. Every
// operation that mutates a balance is a single atomic unit of work, and
// operations targeting the same user are serialized.
type PointsService interface {
	// Earn records a positive transaction for an upload or swap event.
	// Upload earns also evaluate milestone bonuses.
	Earn(ctx context.Context, userID string, kind models.TransactionType, description string) (*models.PointTransaction, error)

	// Redeem spends points to claim an item, transitioning it from
	// active to redeemed. Fails with ErrInsufficientPoints,
	// ErrItemNotFound or ErrItemNotActive without mutating anything.
	Redeem(ctx context.Context, userID, itemID string) (*models.PointTransaction, error)

	// AdminAdjust applies an arbitrary signed delta to a user's balance.
	// The actor must pass the injected Authorizer; the resulting balance
	// may go negative.
	AdminAdjust(ctx context.Context, actorID, targetUserID string, delta int, reason string) (*models.PointTransaction, error)

	// CompleteSwap credits both participants of a finalized swap. The two
	// recordings are independent; each is atomic on its own.
	CompleteSwap(ctx context.Context, swapID, userA, userB string) error

	// RecordUpload runs store and an upload earn (milestones included) in
	// one unit of work under the user's lock. Either the stored record and
	// the award both commit, or neither does.
	RecordUpload(ctx context.Context, userID, description string, store func(ctx context.Context) error) (*models.PointTransaction, error)

	// GetBalance returns the user's balance, zero-valued if the user has
	// no transactions yet.
	GetBalance(ctx context.Context, userID string) (*models.PointBalance, error)

	// GetTransactions returns the user's transaction history, most
	// recent first.
	GetTransactions(ctx context.Context, userID string, limit int64) ([]*models.PointTransaction, error)
}

// Authorizer answers whether an actor holds administrative privilege.
// Injected into the points engine so no credential lives inside it.
type Authorizer interface {
	IsAdmin(ctx context.Context, actorID string) (bool, error)
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	Authorizer
	Login(ctx context.Context, email, password string) (string, error) // Returns JWT token
}

// ItemService defines the interface for listing operations
type ItemService interface {
	CreateItem(ctx context.Context, item *models.Item) (*models.Item, error)
	GetItem(ctx context.Context, itemID string) (*models.Item, error)
	ListItems(ctx context.Context, filter repositories.ItemFilter, page, limit int) ([]*models.Item, error)
	CountItems(ctx context.Context, filter repositories.ItemFilter) (int64, error)
	RemoveItem(ctx context.Context, itemID string) error
}

// CategoryService defines the interface for category taxonomy management
type CategoryService interface {
	CreateCategory(ctx context.Context, name string, subcategories []string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

// UploadRequest carries the metadata of an incoming listing image.
type UploadRequest struct {
	OriginalName string
	FileSize     int64
	Width        int
	Height       int
	UserID       string
}

// ImageService defines the interface for upload intake. The metadata store
// and the upload award commit in the same unit of work.
type ImageService interface {
	StoreUpload(ctx context.Context, req UploadRequest) (*models.ImageMetadata, error)
}

// AdminService defines the interface for account and order management
type AdminService interface {
	GetUsers(ctx context.Context) ([]*models.AdminUser, error)
	CreateUser(ctx context.Context, name, email, password, role, details string) (*models.AdminUser, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	PromoteUser(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	SearchUsers(ctx context.Context, query string) ([]*models.AdminUser, error)
	GetOrders(ctx context.Context) ([]*models.Order, error)
	CreateOrder(ctx context.Context, userID, itemID string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) error
}
