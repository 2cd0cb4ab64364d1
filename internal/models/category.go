package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a clothing category that listings are filed under. Names
// are unique across the taxonomy.
type Category struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Subcategories []string           `bson:"subcategories" json:"subcategories"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
