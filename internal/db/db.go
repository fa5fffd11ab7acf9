package db

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used across the service.
const (
	UsersCollection          = "users"
	AuctionsCollection       = "auctionsList"
	AnnouncementsCollection  = "announcement"
	SellerRequestsCollection = "sellerRequest"
	LiveBidsCollection       = "liveBids"
	PaymentsCollection       = "paymentsWithSSL"
	ReportsCollection        = "reports"
	MessagesCollection       = "messages"
	NotificationsCollection  = "notifications"
)

// Connect opens the MongoDB connection, verifies it and prepares indexes.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	logrus.WithField("database", database).Info("mongodb connected")
	return db, nil
}

// ensureIndexes creates the indexes the repositories rely on. The unique
// index on message_id is what turns a duplicate message submission into a
// write error instead of a lost check-then-insert race.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(MessagesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "message_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(MessagesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(LiveBidsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "auction_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
