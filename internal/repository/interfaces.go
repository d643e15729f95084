package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pavlem/postflow/internal/domain"
)

type UserRepository interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, username, email string) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, username, email string) (*domain.User, error)
}

type PostRepository interface {
	GetAll(ctx context.Context) ([]domain.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Post, error)
	Create(ctx context.Context, title, content string, userID uuid.UUID) (*domain.Post, error)
	Update(ctx context.Context, id uuid.UUID, title, content string, userID uuid.UUID) (*domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
