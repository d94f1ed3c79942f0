package postgres

import (
	"errors"

	"github.com/BloggingApp/friends-service/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	checkViolation      = "23514"
)

// translateFollowError maps follows table constraint violations to repository errors.
func translateFollowError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return repository.ErrFollowExists
	case checkViolation:
		return repository.ErrSelfFollow
	case foreignKeyViolation:
		return repository.ErrUserNotFound
	}
	return err
}

func translateUserError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrUserExists
	}
	return err
}
