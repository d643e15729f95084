package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pavlem/postflow/internal/domain"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

func (r *PostRepo) GetAll(ctx context.Context) ([]domain.Post, error) {
	return r.scanPosts(ctx, "SELECT id, title, content, user_id, created_at, updated_at FROM posts")
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return r.scanPost(ctx, "SELECT id, title, content, user_id, created_at, updated_at FROM posts WHERE id = $1", id)
}

func (r *PostRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Post, error) {
	return r.scanPosts(ctx, "SELECT id, title, content, user_id, created_at, updated_at FROM posts WHERE user_id = $1", userID)
}

func (r *PostRepo) Create(ctx context.Context, title, content string, userID uuid.UUID) (*domain.Post, error) {
	query := `
		INSERT INTO posts (title, content, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, content, user_id, created_at, updated_at`

	return r.scanPost(ctx, query, title, content, userID)
}

// Update writes and reads back the row in one statement, so the returned
// record is exactly the post-update state.
func (r *PostRepo) Update(ctx context.Context, id uuid.UUID, title, content string, userID uuid.UUID) (*domain.Post, error) {
	query := `
		UPDATE posts
		SET title = $1, content = $2, user_id = $3, updated_at = now()
		WHERE id = $4
		RETURNING id, title, content, user_id, created_at, updated_at`

	return r.scanPost(ctx, query, title, content, userID, id)
}

func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}

func (r *PostRepo) scanPost(ctx context.Context, query string, args ...any) (*domain.Post, error) {
	var p domain.Post
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) scanPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
