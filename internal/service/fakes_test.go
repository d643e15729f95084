package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pavlem/postflow/internal/domain"
)

// fakeCache is an in-memory Cache that records every write and delete.
type fakeCache struct {
	data    map[string]string
	ttls    map[string]time.Duration
	deletes []string
	getErr  error
	setErr  error
	delErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		data: make(map[string]string),
		ttls: make(map[string]time.Duration),
	}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	val, ok := c.data[key]
	return val, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.deletes = append(c.deletes, keys...)
	if c.delErr != nil {
		return c.delErr
	}
	for _, k := range keys {
		delete(c.data, k)
		delete(c.ttls, k)
	}
	return nil
}

type fakeUserRepo struct {
	users        map[uuid.UUID]domain.User
	order        []uuid.UUID
	getAllCalls  int
	getByIDCalls int
	err          error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *fakeUserRepo) add(username, email string) domain.User {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	u := domain.User{ID: uuid.New(), Username: username, Email: email, CreatedAt: now, UpdatedAt: now}
	r.users[u.ID] = u
	r.order = append(r.order, u.ID)
	return u
}

func (r *fakeUserRepo) GetAll(ctx context.Context) ([]domain.User, error) {
	r.getAllCalls++
	if r.err != nil {
		return nil, r.err
	}
	var users []domain.User
	for _, id := range r.order {
		users = append(users, r.users[id])
	}
	return users, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.getByIDCalls++
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, username, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u := r.add(username, email)
	return &u, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, id uuid.UUID, username, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.Username = username
	u.Email = email
	u.UpdatedAt = u.UpdatedAt.Add(time.Second)
	r.users[id] = u
	return &u, nil
}

type fakePostRepo struct {
	posts       map[uuid.UUID]domain.Post
	order       []uuid.UUID
	deleteCalls int
	err         error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]domain.Post)}
}

func (r *fakePostRepo) add(title, content string, userID uuid.UUID) domain.Post {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	p := domain.Post{ID: uuid.New(), Title: title, Content: content, UserID: userID, CreatedAt: now, UpdatedAt: now}
	r.posts[p.ID] = p
	r.order = append(r.order, p.ID)
	return p
}

func (r *fakePostRepo) GetAll(ctx context.Context) ([]domain.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	var posts []domain.Post
	for _, id := range r.order {
		posts = append(posts, r.posts[id])
	}
	return posts, nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakePostRepo) GetByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	var posts []domain.Post
	for _, id := range r.order {
		if r.posts[id].UserID == userID {
			posts = append(posts, r.posts[id])
		}
	}
	return posts, nil
}

func (r *fakePostRepo) Create(ctx context.Context, title, content string, userID uuid.UUID) (*domain.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	p := r.add(title, content, userID)
	return &p, nil
}

func (r *fakePostRepo) Update(ctx context.Context, id uuid.UUID, title, content string, userID uuid.UUID) (*domain.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	p.Title = title
	p.Content = content
	p.UserID = userID
	p.UpdatedAt = p.UpdatedAt.Add(time.Second)
	r.posts[id] = p
	return &p, nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleteCalls++
	if r.err != nil {
		return r.err
	}
	delete(r.posts, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type recordingPublisher struct {
	published []domain.Post
}

func (p *recordingPublisher) PublishPostCreated(ctx context.Context, post *domain.Post) {
	p.published = append(p.published, *post)
}
