package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"auction-service/internal/models"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) Create(ctx context.Context, user models.User) (models.User, bool, error) {
	args := m.Called(ctx, user)
	var stored models.User
	if val := args.Get(0); val != nil {
		stored = val.(models.User)
	}
	return stored, args.Bool(1), args.Error(2)
}

func (m *UserRepositoryMock) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *UserRepositoryMock) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Create(ctx context.Context, msg models.Message) (models.Message, error) {
	args := m.Called(ctx, msg)
	var stored models.Message
	if val := args.Get(0); val != nil {
		stored = val.(models.Message)
	}
	return stored, args.Error(1)
}

func (m *MessageRepositoryMock) ListConversation(ctx context.Context, userEmail, selectedUserEmail string, since time.Time) ([]models.Message, error) {
	args := m.Called(ctx, userEmail, selectedUserEmail, since)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) RecentSummaries(ctx context.Context, userEmail string, limit int) ([]models.ConversationSummary, error) {
	args := m.Called(ctx, userEmail, limit)
	var summaries []models.ConversationSummary
	if val := args.Get(0); val != nil {
		summaries = val.([]models.ConversationSummary)
	}
	return summaries, args.Error(1)
}

type NotificationRepositoryMock struct {
	mock.Mock
}

func (m *NotificationRepositoryMock) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	args := m.Called(ctx, n)
	var stored models.Notification
	if val := args.Get(0); val != nil {
		stored = val.(models.Notification)
	}
	return stored, args.Error(1)
}

func (m *NotificationRepositoryMock) ListForRecipient(ctx context.Context, recipient string) ([]models.Notification, error) {
	args := m.Called(ctx, recipient)
	var notifications []models.Notification
	if val := args.Get(0); val != nil {
		notifications = val.([]models.Notification)
	}
	return notifications, args.Error(1)
}

func (m *NotificationRepositoryMock) MarkAllRead(ctx context.Context, recipient string) (int64, error) {
	args := m.Called(ctx, recipient)
	return args.Get(0).(int64), args.Error(1)
}

type AuctionRepositoryMock struct {
	mock.Mock
}

func (m *AuctionRepositoryMock) List(ctx context.Context, sellerEmail string) ([]models.Auction, error) {
	args := m.Called(ctx, sellerEmail)
	var auctions []models.Auction
	if val := args.Get(0); val != nil {
		auctions = val.([]models.Auction)
	}
	return auctions, args.Error(1)
}

func (m *AuctionRepositoryMock) Get(ctx context.Context, id primitive.ObjectID) (models.Auction, error) {
	args := m.Called(ctx, id)
	var auction models.Auction
	if val := args.Get(0); val != nil {
		auction = val.(models.Auction)
	}
	return auction, args.Error(1)
}

func (m *AuctionRepositoryMock) Create(ctx context.Context, auction models.Auction) (models.Auction, error) {
	args := m.Called(ctx, auction)
	var stored models.Auction
	if val := args.Get(0); val != nil {
		stored = val.(models.Auction)
	}
	return stored, args.Error(1)
}

func (m *AuctionRepositoryMock) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *AuctionRepositoryMock) UpdateCurrentBid(ctx context.Context, id primitive.ObjectID, amount float64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *AuctionRepositoryMock) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type BidRepositoryMock struct {
	mock.Mock
}

func (m *BidRepositoryMock) Create(ctx context.Context, bid models.Bid) (models.Bid, error) {
	args := m.Called(ctx, bid)
	var stored models.Bid
	if val := args.Get(0); val != nil {
		stored = val.(models.Bid)
	}
	return stored, args.Error(1)
}

func (m *BidRepositoryMock) TopBidders(ctx context.Context, auctionID string, limit int) ([]models.TopBidder, error) {
	args := m.Called(ctx, auctionID, limit)
	var bidders []models.TopBidder
	if val := args.Get(0); val != nil {
		bidders = val.([]models.TopBidder)
	}
	return bidders, args.Error(1)
}

func (m *BidRepositoryMock) Recent(ctx context.Context, auctionID string, limit int) ([]models.Bid, error) {
	args := m.Called(ctx, auctionID, limit)
	var bids []models.Bid
	if val := args.Get(0); val != nil {
		bids = val.([]models.Bid)
	}
	return bids, args.Error(1)
}

type AnnouncementRepositoryMock struct {
	mock.Mock
}

func (m *AnnouncementRepositoryMock) List(ctx context.Context) ([]models.Announcement, error) {
	args := m.Called(ctx)
	var announcements []models.Announcement
	if val := args.Get(0); val != nil {
		announcements = val.([]models.Announcement)
	}
	return announcements, args.Error(1)
}

func (m *AnnouncementRepositoryMock) Create(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	args := m.Called(ctx, a)
	var stored models.Announcement
	if val := args.Get(0); val != nil {
		stored = val.(models.Announcement)
	}
	return stored, args.Error(1)
}

func (m *AnnouncementRepositoryMock) Update(ctx context.Context, id primitive.ObjectID, a models.Announcement) error {
	args := m.Called(ctx, id, a)
	return args.Error(0)
}

func (m *AnnouncementRepositoryMock) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type SellerRequestRepositoryMock struct {
	mock.Mock
}

func (m *SellerRequestRepositoryMock) List(ctx context.Context) ([]models.SellerRequest, error) {
	args := m.Called(ctx)
	var requests []models.SellerRequest
	if val := args.Get(0); val != nil {
		requests = val.([]models.SellerRequest)
	}
	return requests, args.Error(1)
}

func (m *SellerRequestRepositoryMock) ListByStatus(ctx context.Context, status string) ([]models.SellerRequest, error) {
	args := m.Called(ctx, status)
	var requests []models.SellerRequest
	if val := args.Get(0); val != nil {
		requests = val.([]models.SellerRequest)
	}
	return requests, args.Error(1)
}

func (m *SellerRequestRepositoryMock) Create(ctx context.Context, req models.SellerRequest) (models.SellerRequest, error) {
	args := m.Called(ctx, req)
	var stored models.SellerRequest
	if val := args.Get(0); val != nil {
		stored = val.(models.SellerRequest)
	}
	return stored, args.Error(1)
}

func (m *SellerRequestRepositoryMock) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *SellerRequestRepositoryMock) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type PaymentRepositoryMock struct {
	mock.Mock
}

func (m *PaymentRepositoryMock) Create(ctx context.Context, p models.Payment) (models.Payment, error) {
	args := m.Called(ctx, p)
	var stored models.Payment
	if val := args.Get(0); val != nil {
		stored = val.(models.Payment)
	}
	return stored, args.Error(1)
}

func (m *PaymentRepositoryMock) MarkSucceeded(ctx context.Context, trxID string) error {
	args := m.Called(ctx, trxID)
	return args.Error(0)
}

type ReportRepositoryMock struct {
	mock.Mock
}

func (m *ReportRepositoryMock) Create(ctx context.Context, report models.Report) (models.Report, error) {
	args := m.Called(ctx, report)
	var stored models.Report
	if val := args.Get(0); val != nil {
		stored = val.(models.Report)
	}
	return stored, args.Error(1)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, event any) error {
	args := m.Called(ctx, routingKey, event)
	return args.Error(0)
}

func (m *PublisherMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
