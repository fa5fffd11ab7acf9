package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"auction-service/internal/mocks"
	"auction-service/internal/models"
)

func setupBidRouter(handler *BidHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/live-bid/top", handler.TopBidders)
	r.GET("/live-bid/recent", handler.RecentBids)
	r.POST("/live-bid", handler.CreateBid)
	return r
}

func TestTopBidders(t *testing.T) {
	bidRepo := new(mocks.BidRepositoryMock)
	router := setupBidRouter(NewBidHandler(bidRepo, new(mocks.AuctionRepositoryMock)))

	bidRepo.On("TopBidders", mock.Anything, "a1", bidListLimit).
		Return([]models.TopBidder{{Email: "bob@b.c", Amount: 300}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/live-bid/top?auctionId=a1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var bidders []models.TopBidder
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bidders))
	require.Len(t, bidders, 1)
	bidRepo.AssertExpectations(t)
}

func TestCreateBidRollsCurrentBidForward(t *testing.T) {
	bidRepo := new(mocks.BidRepositoryMock)
	auctionRepo := new(mocks.AuctionRepositoryMock)
	router := setupBidRouter(NewBidHandler(bidRepo, auctionRepo))

	auctionID := primitive.NewObjectID()
	bid := models.Bid{AuctionID: auctionID.Hex(), Email: "bob@b.c", Amount: 150}
	bidRepo.On("Create", mock.Anything, bid).Return(bid, nil).Once()
	auctionRepo.On("UpdateCurrentBid", mock.Anything, auctionID, float64(150)).Return(nil).Once()

	payload, err := json.Marshal(bid)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/live-bid", bytes.NewBuffer(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	bidRepo.AssertExpectations(t)
	auctionRepo.AssertExpectations(t)
}

func TestCreateBidSucceedsWhenCurrentBidUpdateFails(t *testing.T) {
	bidRepo := new(mocks.BidRepositoryMock)
	auctionRepo := new(mocks.AuctionRepositoryMock)
	router := setupBidRouter(NewBidHandler(bidRepo, auctionRepo))

	auctionID := primitive.NewObjectID()
	bid := models.Bid{AuctionID: auctionID.Hex(), Email: "bob@b.c", Amount: 150}
	bidRepo.On("Create", mock.Anything, bid).Return(bid, nil).Once()
	auctionRepo.On("UpdateCurrentBid", mock.Anything, auctionID, float64(150)).Return(assert.AnError).Once()

	payload, err := json.Marshal(bid)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/live-bid", bytes.NewBuffer(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	bidRepo.AssertExpectations(t)
}

func TestCreateBidRequiresAuctionID(t *testing.T) {
	bidRepo := new(mocks.BidRepositoryMock)
	router := setupBidRouter(NewBidHandler(bidRepo, new(mocks.AuctionRepositoryMock)))

	body := bytes.NewBufferString(`{"email":"bob@b.c","amount":10}`)
	req := httptest.NewRequest(http.MethodPost, "/live-bid", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	bidRepo.AssertNotCalled(t, "Create")
}
