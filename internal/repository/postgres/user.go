package postgres

import (
	"context"
	"errors"

	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/BloggingApp/friends-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) repository.User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	err := r.db.QueryRow(
		ctx,
		"INSERT INTO users(username, password) VALUES($1, $2) RETURNING id, created_at",
		user.Username, user.Password,
	).Scan(&user.ID, &user.CreatedAt)
	return translateUserError(err)
}

func (r *userRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(ctx, "SELECT u.id, u.username, u.created_at FROM users u WHERE u.id = $1", id).Scan(
		&user.ID,
		&user.Username,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}

	rows, err := r.db.Query(ctx, "SELECT u.id, u.username, u.created_at FROM users u WHERE u.id = ANY($1) ORDER BY u.id", ids)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

func (r *userRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.Query(ctx, "SELECT u.id, u.username, u.created_at FROM users u ORDER BY u.id")
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

func scanUsers(rows pgx.Rows) ([]*model.User, error) {
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
