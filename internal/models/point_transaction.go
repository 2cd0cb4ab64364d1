package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TransactionType enumerates the kinds of point-affecting events.
type TransactionType string

const (
	TransactionUpload     TransactionType = "upload"
	TransactionRedeem     TransactionType = "redeem"
	TransactionSwap       TransactionType = "swap"
	TransactionAdminBonus TransactionType = "admin_bonus"
	TransactionMilestone  TransactionType = "milestone"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionUpload, TransactionRedeem, TransactionSwap, TransactionAdminBonus, TransactionMilestone:
		return true
	}
	return false
}

// PointTransaction is an immutable record of one point-affecting event.
// Records are append-only: never updated or deleted once written.
type PointTransaction struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          string             `bson:"userId" json:"userId"`
	TransactionType TransactionType    `bson:"transactionType" json:"transactionType"`
	PointsChange    int                `bson:"pointsChange" json:"pointsChange"` // +5, -10, +2, etc.
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	RelatedItemID   string             `bson:"relatedItemId,omitempty" json:"relatedItemId,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
