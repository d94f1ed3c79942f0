package model

type FriendshipStatus string

const (
	StatusFriends         FriendshipStatus = "friends"
	StatusOutgoingRequest FriendshipStatus = "outgoing_request"
	StatusIncomingRequest FriendshipStatus = "incoming_request"
	StatusNothing         FriendshipStatus = "nothing"
)
