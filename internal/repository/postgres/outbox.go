package postgres

import (
	"context"
	"fmt"

	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type outboxRepo struct {
	db *pgxpool.Pool
}

func newOutboxRepo(db *pgxpool.Pool) repository.Outbox {
	return &outboxRepo{
		db: db,
	}
}

func insertEvent(ctx context.Context, tx pgx.Tx, e model.FollowEvent) error {
	_, err := tx.Exec(
		ctx,
		"INSERT INTO follow_events(id, type, user_id, following_id, created_at) VALUES($1, $2, $3, $4, $5)",
		e.ID, e.Type, e.UserID, e.FollowingID, e.CreatedAt,
	)
	return err
}

// Drain locks pending rows with SKIP LOCKED so that several replicas can relay concurrently.
func (r *outboxRepo) Drain(ctx context.Context, limit int, publish func(model.FollowEvent) error) (int, error) {
	var (
		published  []string
		publishErr error
	)

	err := pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id, type, user_id, following_id, created_at
			FROM follow_events
			WHERE published_at IS NULL
			ORDER BY seq
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		`, limit)
		if err != nil {
			return err
		}

		var events []model.FollowEvent
		for rows.Next() {
			var e model.FollowEvent
			if err := rows.Scan(&e.ID, &e.Type, &e.UserID, &e.FollowingID, &e.CreatedAt); err != nil {
				rows.Close()
				return err
			}
			events = append(events, e)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		for _, e := range events {
			if err := publish(e); err != nil {
				publishErr = fmt.Errorf("failed to publish event(%s): %w", e.ID, err)
				break
			}
			published = append(published, e.ID.String())
		}

		if len(published) == 0 {
			return nil
		}
		_, err = tx.Exec(ctx, "UPDATE follow_events SET published_at = NOW() WHERE id = ANY($1::uuid[])", published)
		return err
	})
	if err != nil {
		return 0, err
	}

	return len(published), publishErr
}
