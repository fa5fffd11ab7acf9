package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a persisted chat message. MessageID is generated server-side
// per send and carries a unique index; documents are never mutated.
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	MessageID  string             `bson:"message_id" json:"messageId"`
	SenderID   string             `bson:"sender_id" json:"senderId"`
	ReceiverID string             `bson:"receiver_id" json:"receiverId"`
	Text       string             `bson:"text" json:"text"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

// ConversationSummary is the latest message per conversation partner,
// produced by the recent-message aggregation for a user's sidebar.
type ConversationSummary struct {
	Partner   string    `bson:"_id" json:"partner"`
	Text      string    `bson:"text" json:"text"`
	SenderID  string    `bson:"sender_id" json:"senderId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
