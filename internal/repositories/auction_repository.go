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

var ErrAuctionNotFound = errors.New("auction not found")

// AuctionRepository defines interactions for auction listings.
type AuctionRepository interface {
	List(ctx context.Context, sellerEmail string) ([]models.Auction, error)
	Get(ctx context.Context, id primitive.ObjectID) (models.Auction, error)
	Create(ctx context.Context, auction models.Auction) (models.Auction, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	UpdateCurrentBid(ctx context.Context, id primitive.ObjectID, amount float64) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// AuctionRepo is a mongo-backed repository.
type AuctionRepo struct {
	col *mongo.Collection
}

// NewAuctionRepo constructs AuctionRepo.
func NewAuctionRepo(database *mongo.Database) *AuctionRepo {
	return &AuctionRepo{col: database.Collection(db.AuctionsCollection)}
}

// List returns auctions, optionally filtered by seller email.
func (r *AuctionRepo) List(ctx context.Context, sellerEmail string) ([]models.Auction, error) {
	filter := bson.M{}
	if sellerEmail != "" {
		filter["seller_email"] = sellerEmail
	}
	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var auctions []models.Auction
	if err := cursor.All(ctx, &auctions); err != nil {
		return nil, err
	}
	return auctions, nil
}

// Get retrieves one auction.
func (r *AuctionRepo) Get(ctx context.Context, id primitive.ObjectID) (models.Auction, error) {
	var auction models.Auction
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&auction)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Auction{}, ErrAuctionNotFound
	}
	return auction, err
}

// Create stores a new listing.
func (r *AuctionRepo) Create(ctx context.Context, auction models.Auction) (models.Auction, error) {
	auction.CreatedAt = time.Now().UTC()
	if auction.Status == "" {
		auction.Status = "pending"
	}
	res, err := r.col.InsertOne(ctx, auction)
	if err != nil {
		return models.Auction{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		auction.ID = oid
	}
	return auction, nil
}

// UpdateStatus sets the listing status.
func (r *AuctionRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAuctionNotFound
	}
	return nil
}

// UpdateCurrentBid records the latest accepted bid amount on the listing.
func (r *AuctionRepo) UpdateCurrentBid(ctx context.Context, id primitive.ObjectID, amount float64) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"current_bid": amount}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAuctionNotFound
	}
	return nil
}

// Delete removes a listing.
func (r *AuctionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrAuctionNotFound
	}
	return nil
}
