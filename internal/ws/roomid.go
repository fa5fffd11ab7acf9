package ws

// Room key prefixes. Personal rooms receive direct-to-user delivery
// (notifications, sidebar updates) regardless of which chat or auction
// room the user is also in.
const (
	personalPrefix = "user:"
	auctionPrefix  = "auction:"
)

// ChatRoomID derives the deterministic pairwise room id for two user ids.
// The pair is sorted so both participants compute the same key.
func ChatRoomID(userID, selectedUserID string) string {
	if selectedUserID < userID {
		userID, selectedUserID = selectedUserID, userID
	}
	return userID + "_" + selectedUserID
}

// PersonalRoom returns the room keyed by a single user's id.
func PersonalRoom(userID string) string {
	return personalPrefix + userID
}

// AuctionRoom returns the room namespaced by an auction id.
func AuctionRoom(auctionID string) string {
	return auctionPrefix + auctionID
}
