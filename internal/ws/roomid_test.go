package ws

import "testing"

func TestChatRoomIDOrderIndependent(t *testing.T) {
	if got := ChatRoomID("alice", "bob"); got != "alice_bob" {
		t.Fatalf("unexpected room id: %s", got)
	}
	if got := ChatRoomID("bob", "alice"); got != "alice_bob" {
		t.Fatalf("expected identical room id regardless of order, got %s", got)
	}
}

func TestPersonalRoom(t *testing.T) {
	if got := PersonalRoom("alice@example.com"); got != "user:alice@example.com" {
		t.Fatalf("unexpected personal room: %s", got)
	}
}

func TestAuctionRoom(t *testing.T) {
	if got := AuctionRoom("64f1"); got != "auction:64f1" {
		t.Fatalf("unexpected auction room: %s", got)
	}
}
