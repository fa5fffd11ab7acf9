package ws

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"auction-service/internal/models"
)

// ConnInfo carries request identity captured at handshake time, attached
// to lifecycle events published for the connection.
type ConnInfo struct {
	ConnID      string
	UserID      string
	DeviceID    string
	IP          string
	RequestID   string
	TraceID     string
	ConnectedAt time.Time
}

// Client is the per-connection context object: it owns the connection, the
// set of rooms currently joined and the write lock serializing frames.
// Handlers receive it explicitly instead of closing over shared state.
type Client struct {
	// info is guarded by infoMu: UserID is learned on joinChat while other
	// goroutines read the identity for lifecycle events. ConnID is set once
	// at construction and never changes.
	infoMu sync.Mutex
	info   ConnInfo

	conn *websocket.Conn

	writeMu sync.Mutex

	// joined is guarded by the hub's lock; only the hub mutates it.
	joined map[string]struct{}
}

// newClient wraps an upgraded connection.
func newClient(conn *websocket.Conn, info ConnInfo) *Client {
	if info.ConnID == "" {
		info.ConnID = newConnID()
	}
	return &Client{
		info:   info,
		conn:   conn,
		joined: make(map[string]struct{}),
	}
}

// ID returns the server-generated connection id.
func (c *Client) ID() string {
	return c.info.ConnID
}

// Info returns a copy of the connection identity.
func (c *Client) Info() ConnInfo {
	c.infoMu.Lock()
	defer c.infoMu.Unlock()
	return c.info
}

func (c *Client) setUserID(userID string) {
	c.infoMu.Lock()
	c.info.UserID = userID
	c.infoMu.Unlock()
}

// Send writes one envelope to the peer. gorilla/websocket allows a single
// concurrent writer, so all sends go through the write lock.
func (c *Client) Send(env models.Envelope) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(env)
}

func (c *Client) writePing() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func newConnID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return ""
	}
	return hex.EncodeToString(buf)
}
