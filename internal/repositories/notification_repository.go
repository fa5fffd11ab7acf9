package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"auction-service/internal/db"
	"auction-service/internal/models"
)

// NotificationRepository defines interactions for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n models.Notification) (models.Notification, error)
	ListForRecipient(ctx context.Context, recipient string) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, recipient string) (int64, error)
}

// NotificationRepo is a mongo-backed repository.
type NotificationRepo struct {
	col *mongo.Collection
}

// NewNotificationRepo constructs NotificationRepo.
func NewNotificationRepo(database *mongo.Database) *NotificationRepo {
	return &NotificationRepo{col: database.Collection(db.NotificationsCollection)}
}

// Create stores a notification with a fresh id and unread state.
func (r *NotificationRepo) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	if n.NotificationID == "" {
		n.NotificationID = primitive.NewObjectID().Hex()
	}
	if n.Recipient == "" {
		n.Recipient = models.RecipientAll
	}
	n.Read = false
	n.CreatedAt = time.Now().UTC()

	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return models.Notification{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid
	}
	return n, nil
}

// ListForRecipient returns notifications addressed to the recipient or to
// everyone, newest first.
func (r *NotificationRepo) ListForRecipient(ctx context.Context, recipient string) ([]models.Notification, error) {
	filter := bson.M{"recipient": bson.M{"$in": bson.A{recipient, models.RecipientAll}}}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkAllRead flips read on every unread notification scoped to the
// recipient and reports how many were updated.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, recipient string) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{"recipient": recipient, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
