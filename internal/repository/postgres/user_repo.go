package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pavlem/postflow/internal/domain"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, username, email, created_at, updated_at FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT id, username, email, created_at, updated_at FROM users WHERE id = $1", id)
}

func (r *UserRepo) Create(ctx context.Context, username, email string) (*domain.User, error) {
	query := `
		INSERT INTO users (username, email)
		VALUES ($1, $2)
		RETURNING id, username, email, created_at, updated_at`

	return r.scanUser(ctx, query, username, email)
}

func (r *UserRepo) Update(ctx context.Context, id uuid.UUID, username, email string) (*domain.User, error) {
	query := `
		UPDATE users
		SET username = $1, email = $2, updated_at = now()
		WHERE id = $3
		RETURNING id, username, email, created_at, updated_at`

	return r.scanUser(ctx, query, username, email, id)
}

func (r *UserRepo) scanUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
