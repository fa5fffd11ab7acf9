package models

import "time"

// Client-sent event names.
const (
	EventJoinChat         = "joinChat"
	EventLeaveAllRooms    = "leaveAllRooms"
	EventSendMessage      = "sendMessage"
	EventSendNotification = "sendNotification"
	EventJoinAuction      = "joinAuction"
	EventLeaveAuction     = "leaveAuction"
	EventPlaceBid         = "placeBid"
	EventPing             = "ping"
)

// Server-emitted event names.
const (
	EventConnectionAck       = "connection_ack"
	EventJoinedRoom          = "joinedRoom"
	EventLeftRooms           = "leftRooms"
	EventReceiveMessage      = "receiveMessage"
	EventReceiveNotification = "receiveNotification"
	EventNewBid              = "newBid"
	EventBidError            = "bidError"
	EventPong                = "pong"
	EventAck                 = "ack"
)

// Envelope is the wire frame for every websocket event in either
// direction. AckID is echoed back on direct replies so the client can
// correlate acknowledgements; broadcasts leave it empty.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
	AckID string `json:"ack_id,omitempty"`
}

// JoinChatPayload is the joinChat event body.
type JoinChatPayload struct {
	UserID         string `json:"userId"`
	SelectedUserID string `json:"selectedUserId"`
	RoomID         string `json:"roomId"`
}

// SendMessagePayload is the sendMessage event body.
type SendMessagePayload struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`
	RoomID     string `json:"roomId"`
}

// SendNotificationPayload is the sendNotification event body.
type SendNotificationPayload struct {
	Title     string `json:"title"`
	Message   string `json:"message"`
	Recipient string `json:"recipient"`
	Type      string `json:"type"`
	AuctionID string `json:"auctionId"`
}

// AuctionRoomPayload is the joinAuction/leaveAuction event body.
type AuctionRoomPayload struct {
	AuctionID string `json:"auctionId"`
}

// PlaceBidPayload is the placeBid event body. It is rebroadcast verbatim
// and never persisted by the relay.
type PlaceBidPayload struct {
	AuctionID string  `json:"auctionId"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Photo     string  `json:"photo"`
	Amount    float64 `json:"amount"`
}

// Ack is the reply body for events that carry an ack id.
type Ack struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ConnectionAck greets every new connection.
type ConnectionAck struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// JoinedRoom confirms a chat join.
type JoinedRoom struct {
	Room         string `json:"room"`
	PersonalRoom string `json:"personalRoom"`
	Status       string `json:"status"`
}

// Pong answers a ping.
type Pong struct {
	Time   time.Time `json:"time"`
	Status string    `json:"status"`
}
