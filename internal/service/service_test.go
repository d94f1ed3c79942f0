package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BloggingApp/friends-service/internal/auth"
	"github.com/BloggingApp/friends-service/internal/config"
	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/repository"
	"github.com/BloggingApp/friends-service/internal/repository/memory"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testParams = &auth.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type mapCache struct {
	mu    sync.Mutex
	users map[int64]model.User
	gets  int
	hits  int
}

func newMapCache() *mapCache {
	return &mapCache{users: make(map[int64]model.User)}
}

func (c *mapCache) Get(ctx context.Context, id int64) (*model.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	u, ok := c.users[id]
	if !ok {
		return nil, redis.Nil
	}
	c.hits++
	return &u, nil
}

func (c *mapCache) Set(ctx context.Context, user *model.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[user.ID] = *user
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []model.FollowEvent
	failAt int
	calls  int
}

func (p *recordingPublisher) PublishFollowEvent(ctx context.Context, e model.FollowEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.failAt > 0 && p.calls == p.failAt {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, e)
	return nil
}

type fixture struct {
	svc       *Service
	repo      *repository.Repository
	store     *memory.Store
	cache     *mapCache
	publisher *recordingPublisher
	users     map[string]*model.User
}

// newFixture creates users user1..userN (ids 1..N).
func newFixture(t *testing.T, n int) *fixture {
	t.Helper()
	repo, store := memory.New()
	cache := newMapCache()
	publisher := &recordingPublisher{}

	svc := New(zap.NewNop(), repo, cache, publisher, config.OutboxConfig{Interval: time.Hour, BatchSize: 2})
	svc.User.(*userService).params = testParams

	f := &fixture{
		svc:       svc,
		repo:      repo,
		store:     store,
		cache:     cache,
		publisher: publisher,
		users:     make(map[string]*model.User),
	}
	for i := 1; i <= n; i++ {
		u := &model.User{Username: "user" + string(rune('0'+i)), Password: "x"}
		require.NoError(t, repo.User.Create(context.Background(), u))
		f.users[u.Username] = u
	}
	return f
}

func (f *fixture) user(id int64) *model.User {
	for _, u := range f.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func ids(users []*model.AnnotatedUser) []int64 {
	out := make([]int64, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}
