package service

import (
	"context"
	"sync"

	"github.com/BloggingApp/friends-service/internal/config"
	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/repository"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

type outboxService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	publisher EventPublisher
	cfg       config.OutboxConfig

	mu        sync.Mutex
	scheduler gocron.Scheduler
}

func newOutboxService(logger *zap.Logger, repo *repository.Repository, publisher EventPublisher, cfg config.OutboxConfig) Outbox {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &outboxService{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Relay publishes one batch of pending follow events.
func (s *outboxService) Relay(ctx context.Context) (int, error) {
	n, err := s.repo.Outbox.Drain(ctx, s.cfg.BatchSize, func(e model.FollowEvent) error {
		return s.publisher.PublishFollowEvent(ctx, e)
	})
	if err != nil {
		s.logger.Sugar().Errorf("failed to relay follow events (%d published): %s", n, err.Error())
	}
	return n, err
}

func (s *outboxService) relayAll(ctx context.Context) {
	for {
		n, err := s.Relay(ctx)
		if err != nil || n < s.cfg.BatchSize {
			return
		}
	}
}

func (s *outboxService) StartJobs() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	if _, err := scheduler.NewJob(
		gocron.DurationJob(s.cfg.Interval),
		gocron.NewTask(func(ctx context.Context) {
			s.relayAll(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	scheduler.Start()
	s.scheduler = scheduler
	return nil
}

func (s *outboxService) StopJobs() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scheduler == nil {
		return nil
	}
	err := s.scheduler.Shutdown()
	s.scheduler = nil
	return err
}

type logPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher returns a publisher that only logs events, for runs without a broker.
func NewLogPublisher(logger *zap.Logger) EventPublisher {
	return &logPublisher{logger: logger}
}

func (p *logPublisher) PublishFollowEvent(ctx context.Context, e model.FollowEvent) error {
	p.logger.Info("follow event",
		zap.String("id", e.ID.String()),
		zap.String("type", e.Type),
		zap.Int64("user_id", e.UserID),
		zap.Int64("following_id", e.FollowingID),
	)
	return nil
}
