package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"auction-service/internal/models"
	"auction-service/internal/observability"
	"auction-service/internal/repositories"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// inbound is the client-to-server wire frame. Data stays raw until the
// event handler knows its shape; placeBid rebroadcasts it verbatim.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	AckID string          `json:"ack_id"`
}

// Relay validates and persists qualifying events, then fans them out
// through the hub. Each inbound event is processed to completion before
// the next frame of that connection is read.
type Relay struct {
	hub           *Hub
	messages      repositories.MessageRepository
	notifications repositories.NotificationRepository
}

// NewRelay constructs a Relay.
func NewRelay(hub *Hub, messages repositories.MessageRepository, notifications repositories.NotificationRepository) *Relay {
	return &Relay{hub: hub, messages: messages, notifications: notifications}
}

// Handle upgrades the connection, registers the client and runs its read
// loop until disconnect.
func (r *Relay) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("auction-service/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	traceID := span.SpanContext().TraceID().String()
	client := newClient(conn, ConnInfo{
		DeviceID:    deviceIDFrom(c.Request),
		IP:          clientIP(c.Request),
		RequestID:   requestIDFrom(c.Request),
		TraceID:     traceID,
		ConnectedAt: time.Now(),
	})

	r.hub.Register(client)
	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	r.publishLifecycle(ctx, client, "ws_connect", "")

	logrus.WithField("conn_id", client.ID()).Info("client connected")

	// Immediate acknowledgement, mirroring the connection handshake the
	// frontend expects before it starts emitting events.
	_ = client.Send(models.Envelope{
		Event: models.EventConnectionAck,
		Data: models.ConnectionAck{
			ID:        client.ID(),
			Status:    "connected",
			Timestamp: time.Now().UTC(),
		},
	})

	// The request context is torn down once the handler returns; the read
	// loop outlives it but keeps the trace correlation values.
	go r.readLoop(context.WithoutCancel(ctx), client)
}

func (r *Relay) readLoop(ctx context.Context, client *Client) {
	var closeReason string
	defer func() {
		r.hub.Unregister(client)
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		r.publishLifecycle(ctx, client, "ws_disconnect", closeReason)
		client.conn.Close()
		logrus.WithField("conn_id", client.ID()).Info("client disconnected")
	}()

	// Liveness: drop the connection after a fixed idle threshold without a
	// pong, keeping a ping ticker under that threshold.
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := client.writePing(); err != nil {
					return
				}
			case <-stopPing:
				return
			}
		}
	}()

	for {
		_, payload, err := client.conn.ReadMessage()
		if err != nil {
			closeReason = err.Error()
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
				r.publishLifecycle(ctx, client, "ws_error", closeReason)
			}
			return
		}

		var frame inbound
		if err := json.Unmarshal(payload, &frame); err != nil {
			logrus.WithError(err).WithField("conn_id", client.ID()).Warn("malformed frame")
			continue
		}

		r.dispatch(ctx, client, frame)
	}
}

// dispatch routes one event. Every handler is isolated here: an error is
// logged and acknowledged to the caller, never propagated, never retried.
func (r *Relay) dispatch(ctx context.Context, client *Client, frame inbound) {
	observability.IncWSEvent(frame.Event)

	switch frame.Event {
	case models.EventJoinChat:
		r.handleJoinChat(client, frame)
	case models.EventLeaveAllRooms:
		r.handleLeaveAllRooms(client, frame)
	case models.EventSendMessage:
		r.handleSendMessage(ctx, client, frame)
	case models.EventSendNotification:
		r.handleSendNotification(ctx, client, frame)
	case models.EventJoinAuction:
		r.handleAuctionRoom(client, frame, true)
	case models.EventLeaveAuction:
		r.handleAuctionRoom(client, frame, false)
	case models.EventPlaceBid:
		r.handlePlaceBid(client, frame)
	case models.EventPing:
		r.handlePing(client, frame)
	default:
		logrus.WithFields(logrus.Fields{
			"conn_id": client.ID(),
			"event":   frame.Event,
		}).Warn("unknown event")
	}
}

func (r *Relay) handleJoinChat(client *Client, frame inbound) {
	var req models.JoinChatPayload
	if err := json.Unmarshal(frame.Data, &req); err != nil {
		r.ack(client, frame.AckID, models.Ack{Success: false, Error: "invalid joinChat payload"})
		return
	}

	room, err := resolveChatRoom(req.RoomID, req.UserID, req.SelectedUserID)
	if err != nil {
		r.ack(client, frame.AckID, models.Ack{Success: false, Error: err.Error()})
		return
	}

	personalRoom := PersonalRoom(req.UserID)
	r.hub.JoinChat(client, room, personalRoom)
	client.setUserID(req.UserID)

	logrus.WithFields(logrus.Fields{
		"conn_id": client.ID(),
		"room":    room,
		"user":    req.UserID,
	}).Info("joined chat room")

	_ = client.Send(models.Envelope{
		Event: models.EventJoinedRoom,
		AckID: frame.AckID,
		Data: models.JoinedRoom{
			Room:         room,
			PersonalRoom: personalRoom,
			Status:       "joined",
		},
	})
}

func (r *Relay) handleLeaveAllRooms(client *Client, frame inbound) {
	left := r.hub.LeaveAll(client)
	logrus.WithFields(logrus.Fields{
		"conn_id": client.ID(),
		"rooms":   left,
	}).Info("left all rooms")

	_ = client.Send(models.Envelope{
		Event: models.EventLeftRooms,
		AckID: frame.AckID,
		Data:  gin.H{"status": "success"},
	})
}

func (r *Relay) handleSendMessage(ctx context.Context, client *Client, frame inbound) {
	var req models.SendMessagePayload
	if err := json.Unmarshal(frame.Data, &req); err != nil {
		r.ack(client, frame.AckID, models.Ack{Success: false, Error: "invalid sendMessage payload"})
		return
	}
	if req.Text == "" {
		r.ack(client, frame.AckID, models.Ack{Success: false, Error: "text is required"})
		return
	}

	chatRoom, err := resolveChatRoom(req.RoomID, req.SenderID, req.ReceiverID)
	if err != nil {
		r.ack(client, frame.AckID, models.Ack{Success: false, Error: err.Error()})
		return
	}

	msg, err := r.messages.Create(ctx, models.Message{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Text:       req.Text,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateMessage) {
			r.ack(client, frame.AckID, models.Ack{Success: false, Error: "Message already exists"})
			return
		}
		logrus.WithError(err).WithField("conn_id", client.ID()).Error("failed to store message")
		r.ack(client, frame.AckID, models.Ack{Success: false, Error: err.Error()})
		return
	}

	// The chat room plus each participant's personal room, so sidebar
	// views update even when that user is not in the chat room. The union
	// delivers once per connection; the sender sits in both the chat room
	// and its own personal room.
	r.hub.BroadcastRooms([]string{
		chatRoom,
		PersonalRoom(req.SenderID),
		PersonalRoom(req.ReceiverID),
	}, models.Envelope{Event: models.EventReceiveMessage, Data: msg})

	r.ack(client, frame.AckID, models.Ack{Success: true, MessageID: msg.MessageID})
}

func (r *Relay) handleSendNotification(ctx context.Context, client *Client, frame inbound) {
	var req models.SendNotificationPayload
	if err := json.Unmarshal(frame.Data, &req); err != nil {
		r.ack(client, frame.AckID, models.Ack{Success: false, Error: "invalid sendNotification payload"})
		return
	}

	notification, err := r.notifications.Create(ctx, models.Notification{
		Title:     req.Title,
		Message:   req.Message,
		Recipient: req.Recipient,
		Type:      req.Type,
		AuctionID: req.AuctionID,
	})
	if err != nil {
		logrus.WithError(err).WithField("conn_id", client.ID()).Error("failed to store notification")
		r.ack(client, frame.AckID, models.Ack{Success: false, Error: err.Error()})
		return
	}

	env := models.Envelope{Event: models.EventReceiveNotification, Data: notification}
	if notification.Recipient == "" || notification.Recipient == models.RecipientAll {
		r.hub.BroadcastAll(env)
	} else {
		r.hub.Broadcast(PersonalRoom(notification.Recipient), env)
	}

	r.ack(client, frame.AckID, models.Ack{Success: true, MessageID: notification.NotificationID})
}

func (r *Relay) handleAuctionRoom(client *Client, frame inbound, join bool) {
	var req models.AuctionRoomPayload
	if err := json.Unmarshal(frame.Data, &req); err != nil || req.AuctionID == "" {
		logrus.WithField("conn_id", client.ID()).Warn("auction room event without auction id")
		return
	}

	room := AuctionRoom(req.AuctionID)
	if join {
		r.hub.Join(client, room)
	} else {
		r.hub.Leave(client, room)
	}
}

func (r *Relay) handlePlaceBid(client *Client, frame inbound) {
	var req models.PlaceBidPayload
	if err := json.Unmarshal(frame.Data, &req); err != nil || req.AuctionID == "" {
		_ = client.Send(models.Envelope{
			Event: models.EventBidError,
			AckID: frame.AckID,
			Data:  gin.H{"error": "auctionId is required"},
		})
		return
	}

	// The relay neither persists nor validates bids; it rebroadcasts the
	// payload verbatim in arrival order.
	r.hub.Broadcast(AuctionRoom(req.AuctionID), models.Envelope{
		Event: models.EventNewBid,
		Data:  frame.Data,
	})
}

func (r *Relay) handlePing(client *Client, frame inbound) {
	_ = client.Send(models.Envelope{
		Event: models.EventPong,
		AckID: frame.AckID,
		Data:  models.Pong{Time: time.Now().UTC(), Status: "active"},
	})
}

func (r *Relay) ack(client *Client, ackID string, ack models.Ack) {
	_ = client.Send(models.Envelope{Event: models.EventAck, AckID: ackID, Data: ack})
}

// resolveChatRoom picks the explicit room id when supplied, otherwise the
// sorted-pair id. A pair with a missing side is rejected rather than
// deriving a room from a half-defined key.
func resolveChatRoom(roomID, userID, selectedUserID string) (string, error) {
	if roomID != "" {
		return roomID, nil
	}
	if userID == "" || selectedUserID == "" {
		return "", errors.New("roomId or both user ids are required")
	}
	return ChatRoomID(userID, selectedUserID), nil
}

func (r *Relay) publishLifecycle(ctx context.Context, client *Client, event, reason string) {
	info := client.Info()
	durationMS := int64(0)
	if event != "ws_connect" {
		durationMS = time.Since(info.ConnectedAt).Milliseconds()
	}

	payload := map[string]any{
		"ws": map[string]any{
			"event":       event,
			"conn_id":     info.ConnID,
			"duration_ms": durationMS,
			"reason":      reason,
		},
		"identity": map[string]any{
			"user_id":   info.UserID,
			"device_id": info.DeviceID,
			"ip":        info.IP,
		},
	}

	_ = observability.PublishEvent(ctx, wsEventsRoutingKey,
		observability.WSEvent(event, payload),
		observability.BuildHeaders(info.RequestID, info.TraceID))
}
