package repository

import (
	"context"

	"github.com/BloggingApp/friends-service/internal/model"
)

type User interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

type Follow interface {
	Exists(ctx context.Context, userID, followingID int64) (bool, error)
	Create(ctx context.Context, userID, followingID int64) error
	Delete(ctx context.Context, userID, followingID int64) error
	Incident(ctx context.Context, userID int64) ([]model.Follow, error)
}

type Outbox interface {
	// Drain hands pending events to publish in creation order and marks
	// the successful ones as published. It stops at the first publish error.
	Drain(ctx context.Context, limit int, publish func(model.FollowEvent) error) (int, error)
}

type Repository struct {
	User
	Follow
	Outbox
}
