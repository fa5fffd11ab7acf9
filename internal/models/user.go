package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values stored on user documents.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
)

// User is an account document. Identity is the email; the role gates the
// admin/seller route guards.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// SellerRequest is an onboarding request awaiting admin review.
type SellerRequest struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name               string             `bson:"name" json:"name"`
	Email              string             `bson:"email" json:"email"`
	Photo              string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Reason             string             `bson:"reason,omitempty" json:"reason,omitempty"`
	BecomeSellerStatus string             `bson:"become_seller_status" json:"becomeSellerStatus"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
}
