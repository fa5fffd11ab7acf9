package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"auction-service/internal/repositories"
)

// NotificationHandler serves the persisted notification feed.
type NotificationHandler struct {
	repo repositories.NotificationRepository
}

// NewNotificationHandler builds a NotificationHandler.
func NewNotificationHandler(repo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

// ListForRecipient returns the recipient's notifications, including
// broadcast ones, newest first.
func (h *NotificationHandler) ListForRecipient(c *gin.Context) {
	notifications, err := h.repo.ListForRecipient(c.Request.Context(), c.Param("recipient"))
	if err != nil {
		logrus.WithError(err).Error("failed to list notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkAllRead flips every unread notification scoped to the recipient.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.repo.MarkAllRead(c.Request.Context(), c.Param("recipient"))
	if err != nil {
		logrus.WithError(err).Error("failed to mark notifications read")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error!"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": updated})
}
