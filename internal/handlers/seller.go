package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"auction-service/internal/models"
	"auction-service/internal/repositories"
	"auction-service/internal/telemetry"
)

// SellerHandler manages seller-onboarding endpoints.
type SellerHandler struct {
	repo  repositories.SellerRequestRepository
	audit *telemetry.AuditEmitter
}

// NewSellerHandler builds a SellerHandler.
func NewSellerHandler(repo repositories.SellerRequestRepository, audit *telemetry.AuditEmitter) *SellerHandler {
	return &SellerHandler{repo: repo, audit: audit}
}

// ListRequests returns every onboarding request.
func (h *SellerHandler) ListRequests(c *gin.Context) {
	reqs, err := h.repo.List(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("failed to list seller requests")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// ListRequestsByStatus filters requests by review status; an empty result
// is a 404, matching the frontend's expectation.
func (h *SellerHandler) ListRequestsByStatus(c *gin.Context) {
	reqs, err := h.repo.ListByStatus(c.Request.Context(), c.Param("becomeSellerStatus"))
	if err != nil {
		logrus.WithError(err).Error("failed to list seller requests")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	if len(reqs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Users not found"})
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// CreateRequest stores an onboarding request.
func (h *SellerHandler) CreateRequest(c *gin.Context) {
	var req models.SellerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "email is required"})
		return
	}

	stored, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		logrus.WithError(err).Error("failed to create seller request")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": stored})
}

// UpdateRequestStatus moves a request through review.
func (h *SellerHandler) UpdateRequestStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request id"})
		return
	}

	var req struct {
		BecomeSellerStatus string `json:"becomeSellerStatus"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.BecomeSellerStatus == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status is required!"})
		return
	}

	if err := h.repo.UpdateStatus(c.Request.Context(), id, req.BecomeSellerStatus); err != nil {
		if errors.Is(err, repositories.ErrSellerRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Seller request not found!"})
			return
		}
		logrus.WithError(err).Error("failed to update seller request")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}

	h.audit.Emit(c.Request.Context(), "warn", "seller request status set to "+req.BecomeSellerStatus, requestIDFromContext(c), userEmailFromContext(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Seller status updated successfully!"})
}

// DeleteRequest removes an onboarding request.
func (h *SellerHandler) DeleteRequest(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrSellerRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Seller request not found!"})
			return
		}
		logrus.WithError(err).Error("failed to delete seller request")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Seller request deleted successfully!"})
}
