package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pavlem/postflow/internal/domain"
	"github.com/pavlem/postflow/internal/service"
	"github.com/pavlem/postflow/internal/transport/http/middleware"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type memCache struct {
	data map[string]string
}

func (c *memCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, ok := c.data[key]
	return val, ok, nil
}

func (c *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *memCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type memUserRepo struct {
	users       map[uuid.UUID]domain.User
	order       []uuid.UUID
	getAllCalls int
}

func (r *memUserRepo) add(username, email string) domain.User {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	u := domain.User{ID: uuid.New(), Username: username, Email: email, CreatedAt: now, UpdatedAt: now}
	r.users[u.ID] = u
	r.order = append(r.order, u.ID)
	return u
}

func (r *memUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	r.getAllCalls++
	var users []domain.User
	for _, id := range r.order {
		users = append(users, r.users[id])
	}
	return users, nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUserRepo) Create(ctx context.Context, username, email string) (*domain.User, error) {
	u := r.add(username, email)
	return &u, nil
}

func (r *memUserRepo) Update(ctx context.Context, id uuid.UUID, username, email string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.Username = username
	u.Email = email
	r.users[id] = u
	return &u, nil
}

type memPostRepo struct {
	posts map[uuid.UUID]domain.Post
	order []uuid.UUID
}

func (r *memPostRepo) add(title, content string, userID uuid.UUID) domain.Post {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	p := domain.Post{ID: uuid.New(), Title: title, Content: content, UserID: userID, CreatedAt: now, UpdatedAt: now}
	r.posts[p.ID] = p
	r.order = append(r.order, p.ID)
	return p
}

func (r *memPostRepo) GetAll(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	for _, id := range r.order {
		posts = append(posts, r.posts[id])
	}
	return posts, nil
}

func (r *memPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memPostRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Post, error) {
	var posts []domain.Post
	for _, id := range r.order {
		if r.posts[id].UserID == userID {
			posts = append(posts, r.posts[id])
		}
	}
	return posts, nil
}

func (r *memPostRepo) Create(ctx context.Context, title, content string, userID uuid.UUID) (*domain.Post, error) {
	p := r.add(title, content, userID)
	return &p, nil
}

func (r *memPostRepo) Update(ctx context.Context, id uuid.UUID, title, content string, userID uuid.UUID) (*domain.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	p.Title = title
	p.Content = content
	p.UserID = userID
	r.posts[id] = p
	return &p, nil
}

func (r *memPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.posts, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type testEnv struct {
	mux      *http.ServeMux
	userRepo *memUserRepo
	postRepo *memPostRepo
	cache    *memCache
}

// newTestEnv wires the handlers the same way cmd/server does, over in-memory
// dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := &memUserRepo{users: make(map[uuid.UUID]domain.User)}
	postRepo := &memPostRepo{posts: make(map[uuid.UUID]domain.Post)}
	c := &memCache{data: make(map[string]string)}

	authService := service.NewAuthService(testSecret)
	userService := service.NewUserService(userRepo, c)
	postService := service.NewPostService(postRepo)

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	postHandler := NewPostHandler(postService, userService)

	auth := middleware.Auth(testSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /users", userHandler.List)
	mux.HandleFunc("POST /users", userHandler.Create)
	mux.HandleFunc("PUT /users/{id}", userHandler.Update)
	mux.HandleFunc("GET /posts", postHandler.List)
	mux.HandleFunc("GET /posts/{userId}", postHandler.ListByUser)
	mux.Handle("POST /posts", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("DELETE /posts/{id}", auth(http.HandlerFunc(postHandler.Delete)))
	mux.Handle("PUT /posts/{id}", auth(http.HandlerFunc(postHandler.Update)))

	return &testEnv{mux: mux, userRepo: userRepo, postRepo: postRepo, cache: c}
}

func tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID.String(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}
