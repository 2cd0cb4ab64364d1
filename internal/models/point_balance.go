package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PointBalance holds a user's current point total and activity counters.
// One document per user, created lazily on the user's first transaction.
// The total always equals the sum of PointsChange over the user's
// transaction history; only the points engine writes to it.
type PointBalance struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       string             `bson:"userId" json:"userId"`
	TotalPoints  int                `bson:"totalPoints" json:"totalPoints"`
	UploadsCount int                `bson:"uploadsCount" json:"uploadsCount"`
	RedeemsCount int                `bson:"redeemsCount" json:"redeemsCount"`
	SwapsCount   int                `bson:"swapsCount" json:"swapsCount"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
