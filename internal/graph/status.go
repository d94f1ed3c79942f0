package graph

import "github.com/BloggingApp/friends-service/internal/model"

// Status projects the two viewer flags onto a single label.
func Status(isFollower, isFollowing bool) model.FriendshipStatus {
	switch {
	case isFollower && isFollowing:
		return model.StatusFriends
	case isFollowing:
		return model.StatusOutgoingRequest
	case isFollower:
		return model.StatusIncomingRequest
	default:
		return model.StatusNothing
	}
}
