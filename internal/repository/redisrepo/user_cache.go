package redisrepo

import (
	"context"
	"time"

	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/redis/go-redis/v9"
)

// UserCache stores users as JSON; the password hash never reaches redis.
type UserCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewUserCache(rdb redis.Cmdable, ttl time.Duration) *UserCache {
	return &UserCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func (c *UserCache) Get(ctx context.Context, id int64) (*model.User, error) {
	return Get[model.User](c.rdb, ctx, UserKey(id))
}

func (c *UserCache) Set(ctx context.Context, user *model.User) error {
	return SetJSON(c.rdb, ctx, UserKey(user.ID), user, c.ttl)
}
