package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"auction-service/internal/models"
	"auction-service/internal/repositories"
)

// AuctionHandler manages listing endpoints.
type AuctionHandler struct {
	auctionRepo repositories.AuctionRepository
}

// NewAuctionHandler builds an AuctionHandler.
func NewAuctionHandler(auctionRepo repositories.AuctionRepository) *AuctionHandler {
	return &AuctionHandler{auctionRepo: auctionRepo}
}

// ListAuctions returns listings, optionally filtered by seller email.
func (h *AuctionHandler) ListAuctions(c *gin.Context) {
	auctions, err := h.auctionRepo.List(c.Request.Context(), c.Query("email"))
	if err != nil {
		logrus.WithError(err).Error("failed to list auctions")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, auctions)
}

// GetAuction returns one listing.
func (h *AuctionHandler) GetAuction(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid auction id"})
		return
	}

	auction, err := h.auctionRepo.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrAuctionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Auction not found"})
			return
		}
		logrus.WithError(err).Error("failed to fetch auction")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch Auction"})
		return
	}
	c.JSON(http.StatusOK, auction)
}

// CreateAuction stores a new listing.
func (h *AuctionHandler) CreateAuction(c *gin.Context) {
	var auction models.Auction
	if err := c.ShouldBindJSON(&auction); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	stored, err := h.auctionRepo.Create(c.Request.Context(), auction)
	if err != nil {
		logrus.WithError(err).Error("failed to create auction")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, stored)
}

// UpdateAuctionStatus moves a listing through its lifecycle.
func (h *AuctionHandler) UpdateAuctionStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid auction id"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}

	if err := h.auctionRepo.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, repositories.ErrAuctionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Auction not found"})
			return
		}
		logrus.WithError(err).Error("failed to update auction status")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteAuction removes a listing.
func (h *AuctionHandler) DeleteAuction(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid auction id"})
		return
	}

	if err := h.auctionRepo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrAuctionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Auction not found"})
			return
		}
		logrus.WithError(err).Error("failed to delete auction")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
