package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"auction-service/internal/db"
	"auction-service/internal/models"
)

// ErrDuplicateMessage is returned when the unique message_id index rejects
// an insert, which is the only way a resubmission can be detected.
var ErrDuplicateMessage = errors.New("message already exists")

// MessageRepository defines interactions for chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg models.Message) (models.Message, error)
	ListConversation(ctx context.Context, userEmail, selectedUserEmail string, since time.Time) ([]models.Message, error)
	RecentSummaries(ctx context.Context, userEmail string, limit int) ([]models.ConversationSummary, error)
}

// MessageRepo is a mongo-backed repository.
type MessageRepo struct {
	col *mongo.Collection
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(database *mongo.Database) *MessageRepo {
	return &MessageRepo{col: database.Collection(db.MessagesCollection)}
}

// Create inserts a message. Uniqueness is enforced by the index, not by a
// prior read, so concurrent duplicates cannot slip through.
func (r *MessageRepo) Create(ctx context.Context, msg models.Message) (models.Message, error) {
	if msg.MessageID == "" {
		msg.MessageID = primitive.NewObjectID().Hex()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, msg)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Message{}, ErrDuplicateMessage
		}
		return models.Message{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid
	}
	return msg, nil
}

// ListConversation returns both directions of a pairwise conversation in
// creation order. A non-zero since narrows to messages created after it,
// which is the pull-based resync path for missed broadcasts.
func (r *MessageRepo) ListConversation(ctx context.Context, userEmail, selectedUserEmail string, since time.Time) ([]models.Message, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"sender_id": userEmail, "receiver_id": selectedUserEmail},
			bson.M{"sender_id": selectedUserEmail, "receiver_id": userEmail},
		},
	}
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gt": since}
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var msgs []models.Message
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// RecentSummaries groups the user's messages by conversation partner and
// keeps the latest per partner, newest first.
func (r *MessageRepo) RecentSummaries(ctx context.Context, userEmail string, limit int) ([]models.ConversationSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"sender_id": userEmail},
			bson.M{"receiver_id": userEmail},
		}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$addFields", Value: bson.M{
			"partner": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$sender_id", userEmail}},
				"$receiver_id",
				"$sender_id",
			}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$partner",
			"text":       bson.M{"$first": "$text"},
			"sender_id":  bson.M{"$first": "$sender_id"},
			"created_at": bson.M{"$first": "$created_at"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var summaries []models.ConversationSummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}
