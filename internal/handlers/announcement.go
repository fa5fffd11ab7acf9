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

// AnnouncementHandler manages announcement endpoints.
type AnnouncementHandler struct {
	repo repositories.AnnouncementRepository
}

// NewAnnouncementHandler builds an AnnouncementHandler.
func NewAnnouncementHandler(repo repositories.AnnouncementRepository) *AnnouncementHandler {
	return &AnnouncementHandler{repo: repo}
}

// ListAnnouncements returns every announcement.
func (h *AnnouncementHandler) ListAnnouncements(c *gin.Context) {
	announcements, err := h.repo.List(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("failed to list announcements")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	c.JSON(http.StatusOK, announcements)
}

// CreateAnnouncement stores a new announcement.
func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	var announcement models.Announcement
	if err := c.ShouldBindJSON(&announcement); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	stored, err := h.repo.Create(c.Request.Context(), announcement)
	if err != nil {
		logrus.WithError(err).Error("failed to create announcement")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": stored})
}

// UpdateAnnouncement replaces the editable fields of an announcement.
func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid announcement id"})
		return
	}

	var announcement models.Announcement
	if err := c.ShouldBindJSON(&announcement); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.repo.Update(c.Request.Context(), id, announcement); err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Announcement not found"})
			return
		}
		logrus.WithError(err).Error("failed to update announcement")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update the announcement"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement updated successfully"})
}

// DeleteAnnouncement removes an announcement.
func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid announcement id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrAnnouncementNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Announcement not found"})
			return
		}
		logrus.WithError(err).Error("failed to delete announcement")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
