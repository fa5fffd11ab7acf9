package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Auction is a listing document.
type Auction struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Images       []string           `bson:"images,omitempty" json:"images,omitempty"`
	StartingBid  float64            `bson:"starting_bid" json:"startingBid"`
	CurrentBid   float64            `bson:"current_bid" json:"currentBid"`
	SellerEmail  string             `bson:"seller_email" json:"sellerEmail"`
	SellerName   string             `bson:"seller_name,omitempty" json:"sellerName,omitempty"`
	Status       string             `bson:"status" json:"status"`
	StartTime    time.Time          `bson:"start_time,omitempty" json:"startTime,omitempty"`
	EndTime      time.Time          `bson:"end_time,omitempty" json:"endTime,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Bid is a live bid document in the liveBids collection. The relay never
// writes these; the REST layer does.
type Bid struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AuctionID string             `bson:"auction_id" json:"auctionId"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Amount    float64            `bson:"amount" json:"amount"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// TopBidder is one row of the top-bidders aggregation: the highest amount
// per bidder email, ordered descending.
type TopBidder struct {
	Email     string  `bson:"_id" json:"email"`
	Name      string  `bson:"name" json:"name"`
	Photo     string  `bson:"photo,omitempty" json:"photo,omitempty"`
	Amount    float64 `bson:"amount" json:"amount"`
	AuctionID string  `bson:"auction_id" json:"auctionId"`
}
