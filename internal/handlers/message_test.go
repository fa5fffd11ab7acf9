package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auction-service/internal/mocks"
	"auction-service/internal/models"
)

func setupMessageRouter(handler *MessageHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userEmail", "bob@b.c")
		c.Next()
	})
	r.GET("/messages/email/:userEmail/:selectedUserEmail", handler.GetConversation)
	r.GET("/conversations/:userEmail", handler.RecentConversations)
	return r
}

func TestGetConversation(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(NewMessageHandler(messageRepo))

	messageRepo.On("ListConversation", mock.Anything, "bob@b.c", "alice@b.c", time.Time{}).
		Return([]models.Message{{MessageID: "m-1", Text: "hi"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages/email/bob@b.c/alice@b.c", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []models.Message
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&msgs))
	require.Len(t, msgs, 1)
	messageRepo.AssertExpectations(t)
}

func TestGetConversationSince(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(NewMessageHandler(messageRepo))

	since := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	messageRepo.On("ListConversation", mock.Anything, "bob@b.c", "alice@b.c", since).
		Return([]models.Message{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/messages/email/bob@b.c/alice@b.c?since=2024-06-01T12:00:00Z", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	messageRepo.AssertExpectations(t)
}

func TestGetConversationRejectsBadSince(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(NewMessageHandler(messageRepo))

	req := httptest.NewRequest(http.MethodGet, "/messages/email/bob@b.c/alice@b.c?since=yesterday", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	messageRepo.AssertNotCalled(t, "ListConversation")
}

func TestRecentConversations(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	router := setupMessageRouter(NewMessageHandler(messageRepo))

	messageRepo.On("RecentSummaries", mock.Anything, "bob@b.c", summaryLimit).
		Return([]models.ConversationSummary{{Partner: "alice@b.c", Text: "hi"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/conversations/bob@b.c", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	messageRepo.AssertExpectations(t)
}
