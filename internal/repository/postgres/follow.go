package postgres

import (
	"context"

	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type followRepo struct {
	db *pgxpool.Pool
}

func newFollowRepo(db *pgxpool.Pool) repository.Follow {
	return &followRepo{
		db: db,
	}
}

func (r *followRepo) Exists(ctx context.Context, userID, followingID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND following_id = $2)",
		userID, followingID,
	).Scan(&exists)
	return exists, err
}

// Create inserts the edge and its follow.created event atomically.
// The unique and check constraints are the final arbiter for concurrent subscribes.
func (r *followRepo) Create(ctx context.Context, userID, followingID int64) error {
	event := model.NewFollowEvent(model.FollowCreated, userID, followingID)

	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "INSERT INTO follows(user_id, following_id) VALUES($1, $2)", userID, followingID); err != nil {
			return err
		}
		return insertEvent(ctx, tx, event)
	})
	return translateFollowError(err)
}

func (r *followRepo) Delete(ctx context.Context, userID, followingID int64) error {
	event := model.NewFollowEvent(model.FollowDeleted, userID, followingID)

	return pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, "DELETE FROM follows WHERE user_id = $1 AND following_id = $2", userID, followingID)
		if err != nil {
			return err
		}
		if ct.RowsAffected() == 0 {
			return repository.ErrFollowNotFound
		}
		return insertEvent(ctx, tx, event)
	})
}

func (r *followRepo) Incident(ctx context.Context, userID int64) ([]model.Follow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, following_id, created_at FROM follows
		WHERE user_id = $1 OR following_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var follows []model.Follow
	for rows.Next() {
		var f model.Follow
		if err := rows.Scan(&f.UserID, &f.FollowingID, &f.CreatedAt); err != nil {
			return nil, err
		}
		follows = append(follows, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return follows, nil
}
