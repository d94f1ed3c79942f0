package service

import (
	"context"

	"github.com/BloggingApp/friends-service/internal/graph"
	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/repository"
	"go.uber.org/zap"
)

type graphService struct {
	logger *zap.Logger
	repo   *repository.Repository
	users  *userLookup
}

func newGraphService(logger *zap.Logger, repo *repository.Repository, users *userLookup) *graphService {
	return &graphService{
		logger: logger,
		repo:   repo,
		users:  users,
	}
}

// Relations loads every edge incident to userID in one lookup.
func (s *graphService) Relations(ctx context.Context, userID int64) (graph.Relations, error) {
	edges, err := s.repo.Follow.Incident(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get user(%d)'s follows: %s", userID, err.Error())
		return graph.Relations{}, ErrInternal
	}
	return graph.FromEdges(userID, edges), nil
}

// Annotate sets the viewer flags for every user with a single edge lookup for the viewer.
func (s *graphService) Annotate(ctx context.Context, users []*model.User, viewer *model.User) ([]*model.AnnotatedUser, error) {
	if viewer == nil {
		return graph.Anonymous(users), nil
	}

	rel, err := s.Relations(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	return rel.Annotate(users), nil
}

func (s *graphService) Subscribers(ctx context.Context, userID int64, viewer *model.User) ([]*model.AnnotatedUser, error) {
	return s.view(ctx, userID, viewer, graph.Relations.Subscribers)
}

func (s *graphService) Subscriptions(ctx context.Context, userID int64, viewer *model.User) ([]*model.AnnotatedUser, error) {
	return s.view(ctx, userID, viewer, graph.Relations.Subscriptions)
}

func (s *graphService) Friends(ctx context.Context, userID int64, viewer *model.User) ([]*model.AnnotatedUser, error) {
	return s.view(ctx, userID, viewer, graph.Relations.Friends)
}

func (s *graphService) view(ctx context.Context, userID int64, viewer *model.User, pick func(graph.Relations) []int64) ([]*model.AnnotatedUser, error) {
	subject, err := s.users.find(ctx, userID)
	if err != nil {
		return nil, err
	}

	rel, err := s.Relations(ctx, subject.ID)
	if err != nil {
		return nil, err
	}

	users, err := s.repo.User.FindByIDs(ctx, pick(rel))
	if err != nil {
		s.logger.Sugar().Errorf("failed to load users related to user(%d): %s", subject.ID, err.Error())
		return nil, ErrInternal
	}

	// The subject's own edges already answer the viewer flags.
	if viewer != nil && viewer.ID == subject.ID {
		return rel.Annotate(users), nil
	}
	return s.Annotate(ctx, users, viewer)
}
