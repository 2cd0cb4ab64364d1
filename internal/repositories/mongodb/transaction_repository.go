package mongodb

import (
	"context"
	"time"

	"github.com/rewoven/marketplace-backend/internal/models"
	"github.com/rewoven/marketplace-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure TransactionRepository implements the interface
var _ repositories.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository handles MongoDB operations for PointTransaction
type TransactionRepository struct {
	collection *mongo.Collection
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		collection: db.Collection("point_transactions"),
	}
}

// Create inserts a new point transaction record
func (r *TransactionRepository) Create(ctx context.Context, transaction *models.PointTransaction) error {
	transaction.ID = primitive.NewObjectID()
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, transaction)
	return err
}

// FindByUserID finds point transactions for a user, most recent first
func (r *TransactionRepository) FindByUserID(ctx context.Context, userID string, limit int64) ([]*models.PointTransaction, error) {
	var transactions []*models.PointTransaction
	filter := bson.M{"userId": userID}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}

	// Return empty slice instead of nil if no documents found
	if transactions == nil {
		transactions = []*models.PointTransaction{}
	}

	return transactions, nil
}
