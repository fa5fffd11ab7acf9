package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"auction-service/internal/ws"
)

var startedAt = time.Now()

// DebugHandler exposes liveness and connection introspection.
type DebugHandler struct {
	hub *ws.Hub
}

// NewDebugHandler builds a DebugHandler.
func NewDebugHandler(hub *ws.Hub) *DebugHandler {
	return &DebugHandler{hub: hub}
}

// Root answers the plain liveness probe.
func (h *DebugHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "RexAuction Running with WebSockets!")
}

// SocketTest reports the relay's connection count and uptime.
func (h *DebugHandler) SocketTest(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "WebSocket server running",
		"connections": h.hub.ClientCount(),
		"uptime":      time.Since(startedAt).Seconds(),
	})
}

// SocketConnections lists every active connection and its rooms.
func (h *DebugHandler) SocketConnections(c *gin.Context) {
	connections := h.hub.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"activeConnections": len(connections),
		"connections":       connections,
	})
}
