package ws

import (
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auction-service/internal/mocks"
	"auction-service/internal/models"
	"auction-service/internal/repositories"
)

// frame mirrors the wire envelope with the data kept raw for per-test decoding.
type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	AckID string          `json:"ack_id"`
}

func startRelay(t *testing.T, relay *Relay) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", relay.Handle)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func dialURL(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func dialRelay(t *testing.T, relay *Relay) *websocket.Conn {
	t.Helper()
	return dialURL(t, startRelay(t, relay))
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func sendFrame(t *testing.T, conn *websocket.Conn, event string, data any, ackID string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(models.Envelope{Event: event, Data: data, AckID: ackID}))
}

func assertNoFrame(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err := conn.ReadMessage()
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	require.True(t, netErr.Timeout())
}

func TestRelayConnectionAck(t *testing.T) {
	relay := NewRelay(NewHub(), new(mocks.MessageRepositoryMock), new(mocks.NotificationRepositoryMock))
	conn := dialRelay(t, relay)

	f := readFrame(t, conn)
	require.Equal(t, models.EventConnectionAck, f.Event)

	var ack models.ConnectionAck
	require.NoError(t, json.Unmarshal(f.Data, &ack))
	require.NotEmpty(t, ack.ID)
	require.Equal(t, "connected", ack.Status)
}

func TestRelayJoinChatDerivesSortedRoom(t *testing.T) {
	relay := NewRelay(NewHub(), new(mocks.MessageRepositoryMock), new(mocks.NotificationRepositoryMock))
	conn := dialRelay(t, relay)
	readFrame(t, conn) // connection_ack

	sendFrame(t, conn, models.EventJoinChat, models.JoinChatPayload{UserID: "bob", SelectedUserID: "alice"}, "ack-1")

	f := readFrame(t, conn)
	require.Equal(t, models.EventJoinedRoom, f.Event)
	require.Equal(t, "ack-1", f.AckID)

	var joined models.JoinedRoom
	require.NoError(t, json.Unmarshal(f.Data, &joined))
	require.Equal(t, "alice_bob", joined.Room)
	require.Equal(t, "user:bob", joined.PersonalRoom)
	require.Equal(t, "joined", joined.Status)
}

func TestRelayJoinChatRejectsHalfDefinedPair(t *testing.T) {
	relay := NewRelay(NewHub(), new(mocks.MessageRepositoryMock), new(mocks.NotificationRepositoryMock))
	conn := dialRelay(t, relay)
	readFrame(t, conn)

	sendFrame(t, conn, models.EventJoinChat, models.JoinChatPayload{UserID: "bob"}, "ack-1")

	f := readFrame(t, conn)
	require.Equal(t, models.EventAck, f.Event)

	var ack models.Ack
	require.NoError(t, json.Unmarshal(f.Data, &ack))
	require.False(t, ack.Success)
	require.NotEmpty(t, ack.Error)
}

func TestRelaySendMessagePersistsAndFansOut(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	relay := NewRelay(NewHub(), messageRepo, new(mocks.NotificationRepositoryMock))
	conn := dialRelay(t, relay)
	readFrame(t, conn)

	sendFrame(t, conn, models.EventJoinChat, models.JoinChatPayload{UserID: "bob", SelectedUserID: "alice"}, "")
	readFrame(t, conn) // joinedRoom

	stored := models.Message{MessageID: "m-1", SenderID: "bob", ReceiverID: "alice", Text: "hi"}
	messageRepo.On("Create", mock.Anything, models.Message{SenderID: "bob", ReceiverID: "alice", Text: "hi"}).
		Return(stored, nil).Once()

	sendFrame(t, conn, models.EventSendMessage, models.SendMessagePayload{SenderID: "bob", ReceiverID: "alice", Text: "hi"}, "ack-2")

	// The sender sits in both the chat room and its own personal room but
	// still gets the broadcast exactly once; the next frame is the ack.
	first := readFrame(t, conn)
	require.Equal(t, models.EventReceiveMessage, first.Event)

	var msg models.Message
	require.NoError(t, json.Unmarshal(first.Data, &msg))
	require.Equal(t, "m-1", msg.MessageID)
	require.Equal(t, "hi", msg.Text)

	f := readFrame(t, conn)
	require.Equal(t, models.EventAck, f.Event)
	require.Equal(t, "ack-2", f.AckID)

	var ack models.Ack
	require.NoError(t, json.Unmarshal(f.Data, &ack))
	require.True(t, ack.Success)
	require.Equal(t, "m-1", ack.MessageID)

	messageRepo.AssertExpectations(t)
}

func TestRelaySendMessageDuplicateRejected(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	relay := NewRelay(NewHub(), messageRepo, new(mocks.NotificationRepositoryMock))
	conn := dialRelay(t, relay)
	readFrame(t, conn)

	messageRepo.On("Create", mock.Anything, mock.Anything).
		Return(models.Message{}, repositories.ErrDuplicateMessage).Once()

	sendFrame(t, conn, models.EventSendMessage, models.SendMessagePayload{SenderID: "bob", ReceiverID: "alice", Text: "hi"}, "ack-1")

	f := readFrame(t, conn)
	require.Equal(t, models.EventAck, f.Event)

	var ack models.Ack
	require.NoError(t, json.Unmarshal(f.Data, &ack))
	require.False(t, ack.Success)
	require.Equal(t, "Message already exists", ack.Error)

	messageRepo.AssertExpectations(t)
}

func TestRelaySendMessageRequiresText(t *testing.T) {
	messageRepo := new(mocks.MessageRepositoryMock)
	relay := NewRelay(NewHub(), messageRepo, new(mocks.NotificationRepositoryMock))
	conn := dialRelay(t, relay)
	readFrame(t, conn)

	sendFrame(t, conn, models.EventSendMessage, models.SendMessagePayload{SenderID: "bob", ReceiverID: "alice"}, "ack-1")

	f := readFrame(t, conn)
	require.Equal(t, models.EventAck, f.Event)

	var ack models.Ack
	require.NoError(t, json.Unmarshal(f.Data, &ack))
	require.False(t, ack.Success)
	messageRepo.AssertNotCalled(t, "Create")
}

func TestRelayNotificationToAllReachesEveryClient(t *testing.T) {
	notificationRepo := new(mocks.NotificationRepositoryMock)
	relay := NewRelay(NewHub(), new(mocks.MessageRepositoryMock), notificationRepo)
	conn := dialRelay(t, relay)
	readFrame(t, conn)

	stored := models.Notification{NotificationID: "n-1", Title: "outbid", Recipient: models.RecipientAll}
	notificationRepo.On("Create", mock.Anything, mock.Anything).Return(stored, nil).Once()

	sendFrame(t, conn, models.EventSendNotification, models.SendNotificationPayload{Title: "outbid", Recipient: "all"}, "ack-1")

	// Broadcast to all connected clients includes the sender even though it
	// never joined a room.
	f := readFrame(t, conn)
	require.Equal(t, models.EventReceiveNotification, f.Event)

	var n models.Notification
	require.NoError(t, json.Unmarshal(f.Data, &n))
	require.Equal(t, "n-1", n.NotificationID)

	f = readFrame(t, conn)
	require.Equal(t, models.EventAck, f.Event)
	notificationRepo.AssertExpectations(t)
}

func TestRelayNotificationToRecipientSkipsOthers(t *testing.T) {
	notificationRepo := new(mocks.NotificationRepositoryMock)
	relay := NewRelay(NewHub(), new(mocks.MessageRepositoryMock), notificationRepo)
	conn := dialRelay(t, relay)
	readFrame(t, conn)

	stored := models.Notification{NotificationID: "n-2", Recipient: "alice"}
	notificationRepo.On("Create", mock.Anything, mock.Anything).Return(stored, nil).Once()

	sendFrame(t, conn, models.EventSendNotification, models.SendNotificationPayload{Recipient: "alice"}, "ack-1")

	// The sender is not in alice's personal room, so the only reply is the ack.
	f := readFrame(t, conn)
	require.Equal(t, models.EventAck, f.Event)

	var ack models.Ack
	require.NoError(t, json.Unmarshal(f.Data, &ack))
	require.True(t, ack.Success)
	require.Equal(t, "n-2", ack.MessageID)
	notificationRepo.AssertExpectations(t)
}

func TestRelayPlaceBidBroadcastsToAuctionRoom(t *testing.T) {
	relay := NewRelay(NewHub(), new(mocks.MessageRepositoryMock), new(mocks.NotificationRepositoryMock))
	conn := dialRelay(t, relay)
	readFrame(t, conn)

	sendFrame(t, conn, models.EventJoinAuction, models.AuctionRoomPayload{AuctionID: "a1"}, "")
	sendFrame(t, conn, models.EventPlaceBid, models.PlaceBidPayload{AuctionID: "a1", Email: "bob@example.com", Amount: 120}, "")

	f := readFrame(t, conn)
	require.Equal(t, models.EventNewBid, f.Event)

	var bid models.PlaceBidPayload
	require.NoError(t, json.Unmarshal(f.Data, &bid))
	require.Equal(t, "a1", bid.AuctionID)
	require.Equal(t, float64(120), bid.Amount)
}

func TestRelayBidNotDeliveredOutsideAuctionRoom(t *testing.T) {
	relay := NewRelay(NewHub(), new(mocks.MessageRepositoryMock), new(mocks.NotificationRepositoryMock))
	url := startRelay(t, relay)

	bidder := dialURL(t, url)
	readFrame(t, bidder)
	departed := dialURL(t, url)
	readFrame(t, departed)
	outsider := dialURL(t, url)
	readFrame(t, outsider)

	sendFrame(t, bidder, models.EventJoinAuction, models.AuctionRoomPayload{AuctionID: "a1"}, "")
	sendFrame(t, departed, models.EventJoinAuction, models.AuctionRoomPayload{AuctionID: "a1"}, "")

	// The leftRooms reply confirms the server has processed both of the
	// departing connection's frames before the bid goes out.
	sendFrame(t, departed, models.EventLeaveAllRooms, nil, "ack-1")
	left := readFrame(t, departed)
	require.Equal(t, models.EventLeftRooms, left.Event)

	sendFrame(t, bidder, models.EventPlaceBid, models.PlaceBidPayload{AuctionID: "a1", Amount: 75}, "")

	f := readFrame(t, bidder)
	require.Equal(t, models.EventNewBid, f.Event)

	assertNoFrame(t, departed)
	assertNoFrame(t, outsider)
}

func TestRelayPlaceBidWithoutAuctionID(t *testing.T) {
	relay := NewRelay(NewHub(), new(mocks.MessageRepositoryMock), new(mocks.NotificationRepositoryMock))
	conn := dialRelay(t, relay)
	readFrame(t, conn)

	sendFrame(t, conn, models.EventPlaceBid, models.PlaceBidPayload{Amount: 50}, "ack-1")

	f := readFrame(t, conn)
	require.Equal(t, models.EventBidError, f.Event)
	require.Equal(t, "ack-1", f.AckID)
}

func TestRelayPing(t *testing.T) {
	relay := NewRelay(NewHub(), new(mocks.MessageRepositoryMock), new(mocks.NotificationRepositoryMock))
	conn := dialRelay(t, relay)
	readFrame(t, conn)

	sendFrame(t, conn, models.EventPing, nil, "ack-1")

	f := readFrame(t, conn)
	require.Equal(t, models.EventPong, f.Event)
	require.Equal(t, "ack-1", f.AckID)

	var pong models.Pong
	require.NoError(t, json.Unmarshal(f.Data, &pong))
	require.Equal(t, "active", pong.Status)
}

func TestResolveChatRoom(t *testing.T) {
	cases := []struct {
		name     string
		roomID   string
		userID   string
		selected string
		want     string
		wantErr  bool
	}{
		{name: "explicit room wins", roomID: "custom", userID: "a", selected: "b", want: "custom"},
		{name: "derived from pair", userID: "bob", selected: "alice", want: "alice_bob"},
		{name: "missing selected user", userID: "bob", wantErr: true},
		{name: "missing user", selected: "alice", wantErr: true},
		{name: "nothing supplied", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolveChatRoom(tc.roomID, tc.userID, tc.selected)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
