package model

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// AnnotatedUser is a user seen from a viewer's side.
// IsFollower means the user follows the viewer, IsFollowing means the viewer follows the user.
type AnnotatedUser struct {
	User
	IsFollower  bool
	IsFollowing bool
}
