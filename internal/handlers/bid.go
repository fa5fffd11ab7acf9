package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"auction-service/internal/models"
	"auction-service/internal/repositories"
)

const bidListLimit = 3

// BidHandler manages the live-bid endpoints backing the auction page
// widgets. The realtime newBid fanout happens in the relay; these routes
// are the persisted, pull-based view.
type BidHandler struct {
	bidRepo     repositories.BidRepository
	auctionRepo repositories.AuctionRepository
}

// NewBidHandler builds a BidHandler.
func NewBidHandler(bidRepo repositories.BidRepository, auctionRepo repositories.AuctionRepository) *BidHandler {
	return &BidHandler{bidRepo: bidRepo, auctionRepo: auctionRepo}
}

// TopBidders returns the highest bid per bidder, descending.
func (h *BidHandler) TopBidders(c *gin.Context) {
	bidders, err := h.bidRepo.TopBidders(c.Request.Context(), c.Query("auctionId"), bidListLimit)
	if err != nil {
		logrus.WithError(err).Error("failed to aggregate top bidders")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, bidders)
}

// RecentBids returns the newest bids.
func (h *BidHandler) RecentBids(c *gin.Context) {
	bids, err := h.bidRepo.Recent(c.Request.Context(), c.Query("auctionId"), bidListLimit)
	if err != nil {
		logrus.WithError(err).Error("failed to list recent bids")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, bids)
}

// CreateBid stores a live bid and rolls the auction's current bid forward.
func (h *BidHandler) CreateBid(c *gin.Context) {
	var bid models.Bid
	if err := c.ShouldBindJSON(&bid); err != nil || bid.AuctionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "auctionId is required"})
		return
	}

	stored, err := h.bidRepo.Create(c.Request.Context(), bid)
	if err != nil {
		logrus.WithError(err).Error("failed to store bid")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	if auctionID, err := primitive.ObjectIDFromHex(bid.AuctionID); err == nil {
		if err := h.auctionRepo.UpdateCurrentBid(c.Request.Context(), auctionID, bid.Amount); err != nil {
			logrus.WithError(err).WithField("auction_id", bid.AuctionID).Warn("failed to update current bid")
		}
	}

	c.JSON(http.StatusOK, stored)
}
