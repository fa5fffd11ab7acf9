package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecipientAll is the sentinel recipient addressing every connected client.
const RecipientAll = "all"

// Notification is a persisted notification document. Read state is flipped
// only by the bulk mark-read operation; documents are never deleted.
type Notification struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	NotificationID string             `bson:"notification_id" json:"notificationId"`
	Title          string             `bson:"title" json:"title"`
	Message        string             `bson:"message" json:"message"`
	Recipient      string             `bson:"recipient" json:"recipient"`
	Type           string             `bson:"type,omitempty" json:"type,omitempty"`
	AuctionID      string             `bson:"auction_id,omitempty" json:"auctionId,omitempty"`
	Read           bool               `bson:"read" json:"read"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
}

// Report is a user-submitted report document.
type Report struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ReporterEmail string             `bson:"reporter_email" json:"reporterEmail"`
	Subject       string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	AuctionID     string             `bson:"auction_id,omitempty" json:"auctionId,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
