package mongodb

import (
	"context"
	"time"

	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/rewoven/marketplace-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Compile-time check to ensure BalanceRepository implements the interface
var _ repositories.BalanceRepository = (*BalanceRepository)(nil)

// BalanceRepository handles MongoDB operations for PointBalance
type BalanceRepository struct {
	collection *mongo.Collection
}

// NewBalanceRepository creates a new BalanceRepository
func NewBalanceRepository(db *mongo.Database) *BalanceRepository {
	return &BalanceRepository{
		collection: db.Collection("point_balances"),
	}
}

// Create inserts a new balance record
func (r *BalanceRepository) Create(ctx context.Context, balance *models.PointBalance) error {
	balance.ID = primitive.NewObjectID()
	balance.CreatedAt = time.Now()
	balance.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, balance)
	return err
}

// FindByUserID finds a balance by user ID
func (r *BalanceRepository) FindByUserID(ctx context.Context, userID string) (*models.PointBalance, error) {
	var balance models.PointBalance
	filter := bson.M{"userId": userID}
	err := r.collection.FindOne(ctx, filter).Decode(&balance)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &balance, nil
}

// Update replaces an existing balance record
func (r *BalanceRepository) Update(ctx context.Context, balance *models.PointBalance) error {
	balance.UpdatedAt = time.Now()
	filter := bson.M{"_id": balance.ID}
	update := bson.M{"$set": balance}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}
