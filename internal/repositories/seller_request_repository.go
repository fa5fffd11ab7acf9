package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"auction-service/internal/db"
	"auction-service/internal/models"
)

var ErrSellerRequestNotFound = errors.New("seller request not found")

// SellerRequestRepository defines interactions for onboarding requests.
type SellerRequestRepository interface {
	List(ctx context.Context) ([]models.SellerRequest, error)
	ListByStatus(ctx context.Context, status string) ([]models.SellerRequest, error)
	Create(ctx context.Context, req models.SellerRequest) (models.SellerRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SellerRequestRepo is a mongo-backed repository.
type SellerRequestRepo struct {
	col *mongo.Collection
}

// NewSellerRequestRepo constructs SellerRequestRepo.
func NewSellerRequestRepo(database *mongo.Database) *SellerRequestRepo {
	return &SellerRequestRepo{col: database.Collection(db.SellerRequestsCollection)}
}

// List returns every onboarding request.
func (r *SellerRequestRepo) List(ctx context.Context) ([]models.SellerRequest, error) {
	return r.find(ctx, bson.M{})
}

// ListByStatus filters requests by review status.
func (r *SellerRequestRepo) ListByStatus(ctx context.Context, status string) ([]models.SellerRequest, error) {
	return r.find(ctx, bson.M{"become_seller_status": status})
}

func (r *SellerRequestRepo) find(ctx context.Context, filter bson.M) ([]models.SellerRequest, error) {
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var reqs []models.SellerRequest
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// Create stores an onboarding request.
func (r *SellerRequestRepo) Create(ctx context.Context, req models.SellerRequest) (models.SellerRequest, error) {
	if req.BecomeSellerStatus == "" {
		req.BecomeSellerStatus = "pending"
	}
	req.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, req)
	if err != nil {
		return models.SellerRequest{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		req.ID = oid
	}
	return req, nil
}

// UpdateStatus moves a request through review.
func (r *SellerRequestRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"become_seller_status": status}})
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrSellerRequestNotFound
	}
	return nil
}

// Delete removes a request.
func (r *SellerRequestRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrSellerRequestNotFound
	}
	return nil
}
