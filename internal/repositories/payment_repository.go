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

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository defines interactions for gateway transactions.
type PaymentRepository interface {
	Create(ctx context.Context, p models.Payment) (models.Payment, error)
	MarkSucceeded(ctx context.Context, trxID string) error
}

// PaymentRepo is a mongo-backed repository.
type PaymentRepo struct {
	col *mongo.Collection
}

// NewPaymentRepo constructs PaymentRepo.
func NewPaymentRepo(database *mongo.Database) *PaymentRepo {
	return &PaymentRepo{col: database.Collection(db.PaymentsCollection)}
}

// Create stores a pending transaction ahead of the gateway redirect.
func (r *PaymentRepo) Create(ctx context.Context, p models.Payment) (models.Payment, error) {
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	p.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return models.Payment{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}

// MarkSucceeded flips a transaction to success after gateway validation.
func (r *PaymentRepo) MarkSucceeded(ctx context.Context, trxID string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"trxid": trxID}, bson.M{"$set": bson.M{"status": models.PaymentSucceeded}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
