package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemStatus is the availability state of a listing.
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "active"
	ItemStatusRedeemed ItemStatus = "redeemed"
	ItemStatusRemoved  ItemStatus = "removed"
)

// Item is a clothing listing in the marketplace.
type Item struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ItemID      string             `bson:"itemId" json:"itemId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Category    string             `bson:"category" json:"category"`
	Condition   string             `bson:"condition" json:"condition"`
	Brand       string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Size        string             `bson:"size,omitempty" json:"size,omitempty"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	SellerID    string             `bson:"sellerId" json:"sellerId"`
	ImageIDs    []string           `bson:"imageIds,omitempty" json:"imageIds,omitempty"`
	Status      ItemStatus         `bson:"status" json:"status"`
	Views       int                `bson:"views" json:"views"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
