package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/BloggingApp/friends-service/internal/auth"
	"github.com/BloggingApp/friends-service/internal/dto"
	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const maxUsernameLength = 150

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// userLookup resolves users by id through the cache. It is shared by all services.
type userLookup struct {
	logger *zap.Logger
	repo   repository.User
	cache  UserCache
}

func (l *userLookup) find(ctx context.Context, id int64) (*model.User, error) {
	if l.cache != nil {
		user, err := l.cache.Get(ctx, id)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, redis.Nil) {
			l.logger.Sugar().Warnf("failed to get user(%d) from redis: %s", id, err.Error())
		}
	}

	user, err := l.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.logger.Sugar().Errorf("failed to find user(%d): %s", id, err.Error())
		return nil, ErrInternal
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, user); err != nil {
			l.logger.Sugar().Warnf("failed to set user(%d) in redis cache: %s", id, err.Error())
		}
	}

	return user, nil
}

type userService struct {
	logger *zap.Logger
	repo   *repository.Repository
	users  *userLookup
	graph  Graph
	params *auth.Params
}

func newUserService(logger *zap.Logger, repo *repository.Repository, users *userLookup, graph Graph, params *auth.Params) User {
	return &userService{
		logger: logger,
		repo:   repo,
		users:  users,
		graph:  graph,
		params: params,
	}
}

func (s *userService) Create(ctx context.Context, input dto.CreateUser) (*model.AnnotatedUser, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(username) > maxUsernameLength || !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := auth.HashPassword(input.Password, s.params)
	if err != nil {
		s.logger.Sugar().Errorf("failed to hash password for user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	user := &model.User{
		Username: username,
		Password: hash,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrCannotCreateUser
		}
		s.logger.Sugar().Errorf("failed to create user(%s): %s", username, err.Error())
		return nil, ErrInternal
	}

	// Nobody follows a brand new user yet.
	return &model.AnnotatedUser{User: *user}, nil
}

func (s *userService) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return s.users.find(ctx, id)
}

func (s *userService) Get(ctx context.Context, id int64, viewer *model.User) (*model.AnnotatedUser, error) {
	user, err := s.users.find(ctx, id)
	if err != nil {
		return nil, err
	}

	annotated, err := s.graph.Annotate(ctx, []*model.User{user}, viewer)
	if err != nil {
		return nil, err
	}
	return annotated[0], nil
}

func (s *userService) List(ctx context.Context, viewer *model.User) ([]*model.AnnotatedUser, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to list users: %s", err.Error())
		return nil, ErrInternal
	}

	return s.graph.Annotate(ctx, users, viewer)
}
