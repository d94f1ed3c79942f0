package dto

import (
	"github.com/BloggingApp/friends-service/internal/graph"
	"github.com/BloggingApp/friends-service/internal/model"
)

type User struct {
	ID               int64                  `json:"id"`
	Username         string                 `json:"username"`
	FriendshipStatus model.FriendshipStatus `json:"friendship_status"`
}

func NewUser(u *model.AnnotatedUser) User {
	return User{
		ID:               u.ID,
		Username:         u.Username,
		FriendshipStatus: graph.Status(u.IsFollower, u.IsFollowing),
	}
}

func NewUsers(users []*model.AnnotatedUser) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, NewUser(u))
	}
	return out
}
