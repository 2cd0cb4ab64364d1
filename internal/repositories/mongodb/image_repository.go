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

// Compile-time check to ensure ImageRepository implements the interface
var _ repositories.ImageRepository = (*ImageRepository)(nil)

// ImageRepository handles MongoDB operations for ImageMetadata
type ImageRepository struct {
	collection *mongo.Collection
}

// NewImageRepository creates a new ImageRepository
func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{
		collection: db.Collection("images"),
	}
}

// Create inserts a new image metadata record
func (r *ImageRepository) Create(ctx context.Context, image *models.ImageMetadata) error {
	image.ID = primitive.NewObjectID()
	image.UploadedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, image)
	return err
}

// FindByImageID finds image metadata by its public image ID
func (r *ImageRepository) FindByImageID(ctx context.Context, imageID string) (*models.ImageMetadata, error) {
	var image models.ImageMetadata
	filter := bson.M{"imageId": imageID}
	err := r.collection.FindOne(ctx, filter).Decode(&image)
	if err != nil {
		return nil, err // Includes mongo.ErrNoDocuments
	}
	return &image, nil
}
