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

// BidRepository defines interactions for the liveBids collection.
type BidRepository interface {
	Create(ctx context.Context, bid models.Bid) (models.Bid, error)
	TopBidders(ctx context.Context, auctionID string, limit int) ([]models.TopBidder, error)
	Recent(ctx context.Context, auctionID string, limit int) ([]models.Bid, error)
}

// BidRepo is a mongo-backed repository.
type BidRepo struct {
	col *mongo.Collection
}

// NewBidRepo constructs BidRepo.
func NewBidRepo(database *mongo.Database) *BidRepo {
	return &BidRepo{col: database.Collection(db.LiveBidsCollection)}
}

// Create stores a live bid record.
func (r *BidRepo) Create(ctx context.Context, bid models.Bid) (models.Bid, error) {
	bid.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, bid)
	if err != nil {
		return models.Bid{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		bid.ID = oid
	}
	return bid, nil
}

// TopBidders groups bids per bidder email keeping the highest amount,
// ordered descending. An empty auctionID ranks across all auctions.
func (r *BidRepo) TopBidders(ctx context.Context, auctionID string, limit int) ([]models.TopBidder, error) {
	match := bson.M{}
	if auctionID != "" {
		match["auction_id"] = auctionID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$email",
			"name":       bson.M{"$first": "$name"},
			"photo":      bson.M{"$first": "$photo"},
			"amount":     bson.M{"$max": "$amount"},
			"auction_id": bson.M{"$first": "$auction_id"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "amount", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var bidders []models.TopBidder
	if err := cursor.All(ctx, &bidders); err != nil {
		return nil, err
	}
	return bidders, nil
}

// Recent returns the newest bids, optionally scoped to one auction.
func (r *BidRepo) Recent(ctx context.Context, auctionID string, limit int) ([]models.Bid, error) {
	filter := bson.M{}
	if auctionID != "" {
		filter["auction_id"] = auctionID
	}

	cursor, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	var bids []models.Bid
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, err
	}
	return bids, nil
}
