package postgres

import (
	"context"

	"github.com/BloggingApp/friends-service/internal/config"
	"github.com/BloggingApp/friends-service/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	return pgxpool.New(ctx, cfg.URL("postgres"))
}

func New(db *pgxpool.Pool) *repository.Repository {
	return &repository.Repository{
		User:   newUserRepo(db),
		Follow: newFollowRepo(db),
		Outbox: newOutboxRepo(db),
	}
}
