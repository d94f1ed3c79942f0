package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/BloggingApp/friends-service/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateFollowError(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique", &pgconn.PgError{Code: uniqueViolation, ConstraintName: "unique_follow"}, repository.ErrFollowExists},
		{"check", &pgconn.PgError{Code: checkViolation}, repository.ErrSelfFollow},
		{"foreign key", &pgconn.PgError{Code: foreignKeyViolation}, repository.ErrUserNotFound},
		{"wrapped", fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolation}), repository.ErrFollowExists},
		{"other pg error", &pgconn.PgError{Code: "40001"}, nil},
		{"non pg error", other, other},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateFollowError(tt.err)
			if tt.want == nil && tt.err != nil {
				var pgErr *pgconn.PgError
				assert.True(t, errors.As(got, &pgErr))
				return
			}
			assert.ErrorIs(t, got, tt.want)
			if tt.want == nil {
				assert.NoError(t, got)
			}
		})
	}
}

func TestTranslateUserError(t *testing.T) {
	assert.ErrorIs(t, translateUserError(&pgconn.PgError{Code: uniqueViolation}), repository.ErrUserExists)
	assert.NoError(t, translateUserError(nil))
}
