package dto

import (
	"time"

	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/google/uuid"
)

// MQFollow is the broker payload for follow.created / follow.deleted.
type MQFollow struct {
	EventID    uuid.UUID `json:"event_id"`
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	FollowerID int64     `json:"follower_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewMQFollow converts an event; UserID is the followed user, FollowerID the follower.
func NewMQFollow(e model.FollowEvent) MQFollow {
	return MQFollow{
		EventID:    e.ID,
		Type:       e.Type,
		UserID:     e.FollowingID,
		FollowerID: e.UserID,
		CreatedAt:  e.CreatedAt,
	}
}
