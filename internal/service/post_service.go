package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pavlem/postflow/internal/domain"
	"github.com/pavlem/postflow/internal/repository"
)

// PostPublisher emits a created post to the event stream. Implementations
// handle their own failures; a lost event never fails the request that
// produced it.
type PostPublisher interface {
	PublishPostCreated(ctx context.Context, post *domain.Post)
}

type PostService struct {
	postRepo  repository.PostRepository
	publisher PostPublisher
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// SetPublisher sets the stream publisher (optional dependency).
func (s *PostService) SetPublisher(p PostPublisher) {
	s.publisher = p
}

func (s *PostService) GetAll(ctx context.Context) ([]domain.Post, error) {
	return s.postRepo.GetAll(ctx)
}

func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID)
}

func (s *PostService) Create(ctx context.Context, title, content string, userID uuid.UUID) (*domain.Post, error) {
	post, err := s.postRepo.Create(ctx, title, content, userID)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishPostCreated(ctx, post)
	}

	return post, nil
}

func (s *PostService) Update(ctx context.Context, id uuid.UUID, title, content string, userID uuid.UUID) (*domain.Post, error) {
	return s.postRepo.Update(ctx, id, title, content, userID)
}

// Delete reads the row first and returns the pre-delete snapshot, or nil when
// the post does not exist (the store is left untouched).
func (s *PostService) Delete(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil || post == nil {
		return nil, err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	return post, nil
}
