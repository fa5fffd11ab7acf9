package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment statuses tracked through the gateway round trip.
const (
	PaymentPending   = "pending"
	PaymentSucceeded = "success"
)

// Payment is a gateway transaction document. TrxID is assigned before the
// session is created and is the key the validation callback comes back with.
type Payment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TrxID        string             `bson:"trxid" json:"trxid"`
	Email        string             `bson:"email" json:"email"`
	AuctionID    string             `bson:"auction_id,omitempty" json:"auctionId,omitempty"`
	PaymentPrice float64            `bson:"payment_price" json:"paymentPrice"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
