package service

import (
	"context"

	"github.com/BloggingApp/friends-service/internal/auth"
	"github.com/BloggingApp/friends-service/internal/config"
	"github.com/BloggingApp/friends-service/internal/dto"
	"github.com/BloggingApp/friends-service/internal/graph"
	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/repository"
	"go.uber.org/zap"
)

// UserCache is a read-through cache for user records. Get returns redis.Nil on a miss.
type UserCache interface {
	Get(ctx context.Context, id int64) (*model.User, error)
	Set(ctx context.Context, user *model.User) error
}

type EventPublisher interface {
	PublishFollowEvent(ctx context.Context, e model.FollowEvent) error
}

type User interface {
	Create(ctx context.Context, input dto.CreateUser) (*model.AnnotatedUser, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	Get(ctx context.Context, id int64, viewer *model.User) (*model.AnnotatedUser, error)
	List(ctx context.Context, viewer *model.User) ([]*model.AnnotatedUser, error)
}

// Graph answers relationship queries. A nil viewer is anonymous.
type Graph interface {
	Subscribers(ctx context.Context, userID int64, viewer *model.User) ([]*model.AnnotatedUser, error)
	Subscriptions(ctx context.Context, userID int64, viewer *model.User) ([]*model.AnnotatedUser, error)
	Friends(ctx context.Context, userID int64, viewer *model.User) ([]*model.AnnotatedUser, error)
	Annotate(ctx context.Context, users []*model.User, viewer *model.User) ([]*model.AnnotatedUser, error)
	Relations(ctx context.Context, userID int64) (graph.Relations, error)
}

type Subscription interface {
	Subscribe(ctx context.Context, actor *model.User, targetID int64) (*model.AnnotatedUser, error)
	Unsubscribe(ctx context.Context, actor *model.User, targetID int64) error
	RemoveSubscriber(ctx context.Context, requester *model.User, ownerID, subscriberID int64) error
}

type Outbox interface {
	Relay(ctx context.Context) (int, error)
	StartJobs() error
	StopJobs() error
}

type Service struct {
	User
	Graph
	Subscription
	Outbox
}

// New wires the services. cache may be nil to disable user caching.
func New(logger *zap.Logger, repo *repository.Repository, cache UserCache, publisher EventPublisher, outbox config.OutboxConfig) *Service {
	users := &userLookup{
		logger: logger,
		repo:   repo.User,
		cache:  cache,
	}
	graphService := newGraphService(logger, repo, users)

	return &Service{
		User:         newUserService(logger, repo, users, graphService, auth.DefaultParams),
		Graph:        graphService,
		Subscription: newSubscriptionService(logger, repo, users, graphService),
		Outbox:       newOutboxService(logger, repo, publisher, outbox),
	}
}
