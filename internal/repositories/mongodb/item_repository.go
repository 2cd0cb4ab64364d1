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

// Compile-time check to ensure ItemRepository implements the interface
var _ repositories.ItemRepository = (*ItemRepository)(nil)

// ItemRepository handles MongoDB operations for Item
type ItemRepository struct {
	collection *mongo.Collection
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{
		collection: db.Collection("items"),
	}
}

// Create inserts a new item
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	item.ID = primitive.NewObjectID()
	item.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, item)
	return err
}

// FindByItemID finds an item by its public item ID
func (r *ItemRepository) FindByItemID(ctx context.Context, itemID string) (*models.Item, error) {
	var item models.Item
	filter := bson.M{"itemId": itemID}
	err := r.collection.FindOne(ctx, filter).Decode(&item)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &item, nil
}

// buildFilter translates an ItemFilter into a bson query
func buildFilter(filter repositories.ItemFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.SellerID != "" {
		query["sellerId"] = filter.SellerID
	}
	if filter.Search != "" {
		regex := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
			bson.M{"brand": regex},
		}
	}
	return query
}

// Find retrieves items matching the filter, newest first, paginated
func (r *ItemRepository) Find(ctx context.Context, filter repositories.ItemFilter, page, limit int) ([]*models.Item, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var items []*models.Item
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, buildFilter(filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []*models.Item{}
	}
	return items, nil
}

// UpdateStatus sets the status of an item
func (r *ItemRepository) UpdateStatus(ctx context.Context, itemID string, status models.ItemStatus) error {
	filter := bson.M{"itemId": itemID}
	update := bson.M{"$set": bson.M{"status": status}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// IncrementViews bumps the view counter of an item
func (r *ItemRepository) IncrementViews(ctx context.Context, itemID string) error {
	filter := bson.M{"itemId": itemID}
	update := bson.M{"$inc": bson.M{"views": 1}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Count returns the number of items matching the filter
func (r *ItemRepository) Count(ctx context.Context, filter repositories.ItemFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, buildFilter(filter))
}
