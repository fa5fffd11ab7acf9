package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auction-service/internal/mocks"
	"auction-service/internal/models"
)

func setupNotificationRouter(handler *NotificationHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/notifications/:recipient", handler.ListForRecipient)
	r.PATCH("/notifications/:recipient/read", handler.MarkAllRead)
	return r
}

func TestListNotificationsForRecipient(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	router := setupNotificationRouter(NewNotificationHandler(repo))

	repo.On("ListForRecipient", mock.Anything, "bob@b.c").
		Return([]models.Notification{{NotificationID: "n-1", Recipient: "bob@b.c"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/notifications/bob@b.c", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var notifications []models.Notification
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&notifications))
	require.Len(t, notifications, 1)
	repo.AssertExpectations(t)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	repo := new(mocks.NotificationRepositoryMock)
	router := setupNotificationRouter(NewNotificationHandler(repo))

	repo.On("MarkAllRead", mock.Anything, "bob@b.c").Return(int64(4), nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/notifications/bob@b.c/read", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, float64(4), resp["updated"])
	repo.AssertExpectations(t)
}
