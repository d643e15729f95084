package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pavlem/postflow/internal/cache"
	"github.com/pavlem/postflow/internal/domain"
	"github.com/pavlem/postflow/internal/repository"
)

const (
	userKeyPrefix = "user:"
	allUsersKey   = "allUsers"

	userTTL     = 10 * time.Second
	allUsersTTL = 15 * time.Second
)

func userKey(id uuid.UUID) string {
	return userKeyPrefix + id.String()
}

type UserService struct {
	userRepo repository.UserRepository
	cache    cache.Cache
}

func NewUserService(userRepo repository.UserRepository, cache cache.Cache) *UserService {
	return &UserService{
		userRepo: userRepo,
		cache:    cache,
	}
}

func (s *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	return readThrough(ctx, s.cache, allUsersKey, allUsersTTL, func(ctx context.Context) ([]domain.User, error) {
		return s.userRepo.GetAll(ctx)
	})
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return readThrough(ctx, s.cache, userKey(id), userTTL, func(ctx context.Context) (*domain.User, error) {
		return s.userRepo.GetByID(ctx, id)
	})
}

// Create inserts the user and returns the stored record. It leaves the cache
// alone, so a live allUsers entry keeps serving the old list until its TTL
// runs out.
func (s *UserService) Create(ctx context.Context, username, email string) (*domain.User, error) {
	return s.userRepo.Create(ctx, username, email)
}

// Update writes the row, then drops both cache keys so the next read goes to
// the store. The two invalidations are independent calls with no atomicity
// across them. Returns nil when no row matched; the cache is untouched in
// that case.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, username, email string) (*domain.User, error) {
	user, err := s.userRepo.Update(ctx, id, username, email)
	if err != nil || user == nil {
		return user, err
	}

	if err := s.cache.Delete(ctx, userKey(id)); err != nil {
		log.Printf("cache invalidate %s: %v", userKey(id), err)
	}
	if err := s.cache.Delete(ctx, allUsersKey); err != nil {
		log.Printf("cache invalidate %s: %v", allUsersKey, err)
	}

	return user, nil
}
