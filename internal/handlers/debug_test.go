package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"auction-service/internal/ws"
)

func TestDebugEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDebugHandler(ws.NewHub())
	r := gin.New()
	r.GET("/", handler.Root)
	r.GET("/socket-test", handler.SocketTest)
	r.GET("/debug/socket-connections", handler.SocketConnections)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "RexAuction Running with WebSockets!", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/socket-test", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"connections":0`)

	req = httptest.NewRequest(http.MethodGet, "/debug/socket-connections", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"activeConnections":0`)
}
