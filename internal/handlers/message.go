package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"auction-service/internal/repositories"
)

const summaryLimit = 10

// MessageHandler serves chat history. The relay's broadcasts are
// at-most-once, so clients resynchronize through these routes with the
// since query after a missed window.
type MessageHandler struct {
	messageRepo repositories.MessageRepository
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(messageRepo repositories.MessageRepository) *MessageHandler {
	return &MessageHandler{messageRepo: messageRepo}
}

// GetConversation returns both directions of a pairwise conversation in
// creation order, optionally narrowed to messages after since (RFC 3339).
func (h *MessageHandler) GetConversation(c *gin.Context) {
	userEmail := c.Param("userEmail")
	selectedUserEmail := c.Param("selectedUserEmail")

	var since time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid since timestamp"})
			return
		}
		since = parsed
	}

	msgs, err := h.messageRepo.ListConversation(c.Request.Context(), userEmail, selectedUserEmail, since)
	if err != nil {
		logrus.WithError(err).Error("failed to fetch messages")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch messages"})
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// RecentConversations returns the caller's sidebar view: the latest
// message per conversation partner.
func (h *MessageHandler) RecentConversations(c *gin.Context) {
	email := c.GetString("userEmail")
	summaries, err := h.messageRepo.RecentSummaries(c.Request.Context(), email, summaryLimit)
	if err != nil {
		logrus.WithError(err).Error("failed to aggregate conversations")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch conversations"})
		return
	}
	c.JSON(http.StatusOK, summaries)
}
