package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles assignable to marketplace accounts.
const (
	RoleAdmin    = "Admin"
	RoleSeller   = "Seller"
	RoleCustomer = "Customer"
)

// AdminUser is a managed marketplace account.
type AdminUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	Details      string             `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
