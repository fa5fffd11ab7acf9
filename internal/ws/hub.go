package ws

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"auction-service/internal/models"
	"auction-service/internal/observability"
)

const wsEventsRoutingKey = "ws_events.relay"

// Hub maintains the set of live connections and their room membership.
// Delivery is at-most-once: a member that is gone at broadcast time never
// receives the event, and no redelivery occurs.
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]bool
	clients map[*Client]bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms:   make(map[string]map[*Client]bool),
		clients: make(map[*Client]bool),
	}
}

// Register tracks a new connection.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

// Unregister drops the connection and every room membership it holds.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveAllLocked(c)
	delete(h.clients, c)
}

// Join adds the client to a room and records it in the client's set.
func (h *Hub) Join(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.joinLocked(c, room)
}

// Leave removes the client from one room.
func (h *Hub) Leave(c *Client, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, room)
}

// LeaveAll removes the client from every room it has joined and clears its
// set. Idempotent.
func (h *Hub) LeaveAll(c *Client) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.leaveAllLocked(c)
}

// JoinChat switches the connection's chat membership: all prior rooms are
// left, then the chat room and the user's personal room are joined.
func (h *Hub) JoinChat(c *Client, chatRoom, personalRoom string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveAllLocked(c)
	h.joinLocked(c, chatRoom)
	h.joinLocked(c, personalRoom)
}

func (h *Hub) joinLocked(c *Client, room string) {
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][c] = true
	c.joined[room] = struct{}{}
}

func (h *Hub) leaveLocked(c *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.joined, room)
}

func (h *Hub) leaveAllLocked(c *Client) []string {
	left := make([]string, 0, len(c.joined))
	for room := range c.joined {
		left = append(left, room)
		if members, ok := h.rooms[room]; ok {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, room)
			}
		}
	}
	c.joined = make(map[string]struct{})
	return left
}

// Rooms returns a snapshot of the client's memberships.
func (h *Hub) Rooms(c *Client) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	rooms := make([]string, 0, len(c.joined))
	for room := range c.joined {
		rooms = append(rooms, room)
	}
	return rooms
}

// InRoom reports whether the client is currently a member of the room.
func (h *Hub) InRoom(c *Client, room string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := c.joined[room]
	return ok
}

// Broadcast fans one envelope out to every member of a room. Writes are
// fire-and-forget; a member whose write fails is closed and dropped.
func (h *Hub) Broadcast(room string, env models.Envelope) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	observability.IncWSBroadcast(env.Event)
	h.fanout(members, env, room)
}

// BroadcastRooms sends one envelope to the union of members across the
// rooms. A connection sitting in several of the rooms receives the
// envelope exactly once.
func (h *Hub) BroadcastRooms(rooms []string, env models.Envelope) {
	h.mu.RLock()
	seen := make(map[*Client]bool)
	members := make([]*Client, 0)
	for _, room := range rooms {
		for c := range h.rooms[room] {
			if seen[c] {
				continue
			}
			seen[c] = true
			members = append(members, c)
		}
	}
	h.mu.RUnlock()

	observability.IncWSBroadcast(env.Event)
	h.fanout(members, env, "")
}

// BroadcastAll sends one envelope to every connected client.
func (h *Hub) BroadcastAll(env models.Envelope) {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		members = append(members, c)
	}
	h.mu.RUnlock()

	observability.IncWSBroadcast(env.Event)
	h.fanout(members, env, "")
}

func (h *Hub) fanout(members []*Client, env models.Envelope, room string) {
	for _, c := range members {
		if err := c.Send(env); err != nil {
			logrus.WithError(err).WithField("room", room).Warn("websocket write error")
			c.conn.Close()
			h.Unregister(c)
			h.publishWSError(c, err)
		}
	}
}

// ClientCount returns the number of live connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ConnectionSnapshot is one entry of the debug listing.
type ConnectionSnapshot struct {
	ID    string   `json:"id"`
	Rooms []string `json:"rooms"`
}

// Snapshot lists every connection and its rooms for the debug endpoint.
func (h *Hub) Snapshot() []ConnectionSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snapshots := make([]ConnectionSnapshot, 0, len(h.clients))
	for c := range h.clients {
		rooms := make([]string, 0, len(c.joined))
		for room := range c.joined {
			rooms = append(rooms, room)
		}
		snapshots = append(snapshots, ConnectionSnapshot{ID: c.ID(), Rooms: rooms})
	}
	return snapshots
}

func (h *Hub) publishWSError(c *Client, err error) {
	info := c.Info()
	payload := map[string]any{
		"ws": map[string]any{
			"event":       "ws_error",
			"conn_id":     info.ConnID,
			"duration_ms": time.Since(info.ConnectedAt).Milliseconds(),
			"reason":      err.Error(),
		},
		"identity": map[string]any{
			"user_id":   info.UserID,
			"device_id": info.DeviceID,
			"ip":        info.IP,
		},
	}

	headers := observability.BuildHeaders(info.RequestID, info.TraceID)
	_ = observability.PublishEvent(context.Background(), wsEventsRoutingKey,
		observability.WSEvent("ws_error", payload), headers)
	observability.IncWSEvent("ws_error")
}
