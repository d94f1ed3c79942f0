// Package memory is an in-process implementation of the repositories,
// used for local runs with storage=memory and as the store behind tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/repository"
)

type edge struct {
	user      int64
	following int64
}

type Store struct {
	mu      sync.Mutex
	nextID  int64
	users   map[int64]model.User
	follows map[edge]time.Time
	events  []model.FollowEvent
	lookups int
}

func NewStore() *Store {
	return &Store{
		users:   make(map[int64]model.User),
		follows: make(map[edge]time.Time),
	}
}

// New wires a fresh Store into a Repository.
func New() (*repository.Repository, *Store) {
	s := NewStore()
	return &repository.Repository{
		User:   userRepo{s},
		Follow: followRepo{s},
		Outbox: outboxRepo{s},
	}, s
}

// AddFollow inserts an edge without an outbox event, for test fixtures.
func (s *Store) AddFollow(userID, followingID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.follows[edge{userID, followingID}] = time.Now().UTC()
}

func (s *Store) HasFollow(userID, followingID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.follows[edge{userID, followingID}]
	return ok
}

// Lookups counts Incident calls.
func (s *Store) Lookups() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookups
}

func (s *Store) Events() []model.FollowEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, user *model.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, user.Username) {
			return repository.ErrUserExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

func (r userRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (r userRepo) FindByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	users := []*model.User{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, &u)
		}
	}
	sortUsers(users)
	return users, nil
}

func (r userRepo) List(ctx context.Context) ([]*model.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, &u)
	}
	sortUsers(users)
	return users, nil
}

func sortUsers(users []*model.User) {
	slices.SortFunc(users, func(a, b *model.User) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}

type followRepo struct{ s *Store }

func (r followRepo) Exists(ctx context.Context, userID, followingID int64) (bool, error) {
	return r.s.HasFollow(userID, followingID), nil
}

func (r followRepo) Create(ctx context.Context, userID, followingID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID == followingID {
		return repository.ErrSelfFollow
	}
	if _, ok := s.users[userID]; !ok {
		return repository.ErrUserNotFound
	}
	if _, ok := s.users[followingID]; !ok {
		return repository.ErrUserNotFound
	}
	e := edge{userID, followingID}
	if _, ok := s.follows[e]; ok {
		return repository.ErrFollowExists
	}
	s.follows[e] = time.Now().UTC()
	s.events = append(s.events, model.NewFollowEvent(model.FollowCreated, userID, followingID))
	return nil
}

func (r followRepo) Delete(ctx context.Context, userID, followingID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	e := edge{userID, followingID}
	if _, ok := s.follows[e]; !ok {
		return repository.ErrFollowNotFound
	}
	delete(s.follows, e)
	s.events = append(s.events, model.NewFollowEvent(model.FollowDeleted, userID, followingID))
	return nil
}

func (r followRepo) Incident(ctx context.Context, userID int64) ([]model.Follow, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lookups++
	var follows []model.Follow
	for e, at := range s.follows {
		if e.user == userID || e.following == userID {
			follows = append(follows, model.Follow{UserID: e.user, FollowingID: e.following, CreatedAt: at})
		}
	}
	return follows, nil
}

type outboxRepo struct{ s *Store }

func (r outboxRepo) Drain(ctx context.Context, limit int, publish func(model.FollowEvent) error) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	published := 0
	for i := range s.events {
		if published >= limit {
			break
		}
		e := &s.events[i]
		if e.PublishedAt != nil {
			continue
		}
		if err := publish(*e); err != nil {
			return published, err
		}
		now := time.Now().UTC()
		e.PublishedAt = &now
		published++
	}
	return published, nil
}
