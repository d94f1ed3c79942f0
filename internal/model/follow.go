package model

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge: UserID follows FollowingID.
type Follow struct {
	UserID      int64     `json:"user_id"`
	FollowingID int64     `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	FollowCreated = "follow.created"
	FollowDeleted = "follow.deleted"
)

type FollowEvent struct {
	ID          uuid.UUID  `json:"id"`
	Type        string     `json:"type"`
	UserID      int64      `json:"user_id"`
	FollowingID int64      `json:"following_id"`
	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at"`
}

func NewFollowEvent(eventType string, userID, followingID int64) FollowEvent {
	return FollowEvent{
		ID:          uuid.New(),
		Type:        eventType,
		UserID:      userID,
		FollowingID: followingID,
		CreatedAt:   time.Now().UTC(),
	}
}
