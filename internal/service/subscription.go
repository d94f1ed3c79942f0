package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/repository"
	"go.uber.org/zap"
)

type subscriptionService struct {
	logger *zap.Logger
	repo   *repository.Repository
	users  *userLookup
	graph  Graph
}

func newSubscriptionService(logger *zap.Logger, repo *repository.Repository, users *userLookup, graph Graph) Subscription {
	return &subscriptionService{
		logger: logger,
		repo:   repo,
		users:  users,
		graph:  graph,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, actor *model.User, targetID int64) (*model.AnnotatedUser, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	target, err := s.users.find(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if actor.ID == target.ID {
		return nil, ErrCannotSubscribeToYourself
	}

	exists, err := s.repo.Follow.Exists(ctx, actor.ID, target.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow(%d->%d): %s", actor.ID, target.ID, err.Error())
		return nil, ErrInternal
	}
	if exists {
		return nil, ErrCannotSubscribeTwice
	}

	// A concurrent subscribe may pass the check above; the store constraints decide.
	if err := s.repo.Follow.Create(ctx, actor.ID, target.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrFollowExists):
			return nil, ErrCannotSubscribeTwice
		case errors.Is(err, repository.ErrSelfFollow):
			return nil, ErrCannotSubscribeToYourself
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		s.logger.Sugar().Errorf("failed to create follow(%d->%d): %s", actor.ID, target.ID, err.Error())
		return nil, ErrInternal
	}

	annotated, err := s.graph.Annotate(ctx, []*model.User{target}, actor)
	if err != nil {
		return nil, err
	}
	return annotated[0], nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, actor *model.User, targetID int64) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	target, err := s.users.find(ctx, targetID)
	if err != nil {
		return err
	}

	exists, err := s.repo.Follow.Exists(ctx, actor.ID, target.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow(%d->%d): %s", actor.ID, target.ID, err.Error())
		return ErrInternal
	}
	if !exists {
		return ErrCannotUnsubscribe
	}

	if err := s.repo.Follow.Delete(ctx, actor.ID, target.ID); err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return ErrCannotUnsubscribe
		}
		s.logger.Sugar().Errorf("failed to delete follow(%d->%d): %s", actor.ID, target.ID, err.Error())
		return ErrInternal
	}

	return nil
}

// RemoveSubscriber lets owner drop subscriberID from their subscribers.
// Mutual follows are friends, not subscribers, and cannot be removed this way.
func (s *subscriptionService) RemoveSubscriber(ctx context.Context, requester *model.User, ownerID, subscriberID int64) error {
	if requester == nil {
		return ErrUnauthenticated
	}

	owner, err := s.users.find(ctx, ownerID)
	if err != nil {
		return err
	}
	subscriber, err := s.users.find(ctx, subscriberID)
	if err != nil {
		return err
	}
	if requester.ID != owner.ID {
		return ErrNotEnoughRights
	}

	rel, err := s.graph.Relations(ctx, owner.ID)
	if err != nil {
		return err
	}
	if !rel.IsSubscriber(subscriber.ID) {
		return errNotSubscriber(subscriber.Username, owner.Username)
	}

	if err := s.repo.Follow.Delete(ctx, subscriber.ID, owner.ID); err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return errNotSubscriber(subscriber.Username, owner.Username)
		}
		s.logger.Sugar().Errorf("failed to delete follow(%d->%d): %s", subscriber.ID, owner.ID, err.Error())
		return ErrInternal
	}

	return nil
}
