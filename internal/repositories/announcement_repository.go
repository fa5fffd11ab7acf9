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

var ErrAnnouncementNotFound = errors.New("announcement not found")

// AnnouncementRepository defines interactions for announcements.
type AnnouncementRepository interface {
	List(ctx context.Context) ([]models.Announcement, error)
	Create(ctx context.Context, a models.Announcement) (models.Announcement, error)
	Update(ctx context.Context, id primitive.ObjectID, a models.Announcement) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AnnouncementRepo is a mongo-backed repository.
type AnnouncementRepo struct {
	col *mongo.Collection
}

// NewAnnouncementRepo constructs AnnouncementRepo.
func NewAnnouncementRepo(database *mongo.Database) *AnnouncementRepo {
	return &AnnouncementRepo{col: database.Collection(db.AnnouncementsCollection)}
}

// List returns every announcement, newest first.
func (r *AnnouncementRepo) List(ctx context.Context) ([]models.Announcement, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var announcements []models.Announcement
	if err := cursor.All(ctx, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// Create stores an announcement.
func (r *AnnouncementRepo) Create(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	a.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return models.Announcement{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

// Update replaces the editable fields of an announcement.
func (r *AnnouncementRepo) Update(ctx context.Context, id primitive.ObjectID, a models.Announcement) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"title":   a.Title,
		"content": a.Content,
		"date":    a.Date,
		"image":   a.Image,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

// Delete removes an announcement.
func (r *AnnouncementRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}
