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

// Compile-time check to ensure CategoryRepository implements the interface
var _ repositories.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository handles MongoDB operations for Category
type CategoryRepository struct {
	collection *mongo.Collection
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection("categories"),
	}
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	category.ID = primitive.NewObjectID()
	category.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, category)
	return err
}

// FindByName finds a category by its unique name
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	filter := bson.M{"name": name}
	err := r.collection.FindOne(ctx, filter).Decode(&category)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &category, nil
}

// FindAll returns every category
func (r *CategoryRepository) FindAll(ctx context.Context) ([]*models.Category, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []*models.Category
	if err = cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return categories, nil
}
