// Package memory provides an in-memory implementation of the data storage
// interfaces defined in the internal/store package. It is used by tests and
// by local development setups that run without a database.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/fernwood/blog-api/internal/domain"
	"github.com/fernwood/blog-api/internal/store"
	"github.com/google/uuid"
)

// PostStore implements store.PostStore using in-memory storage.
// All operations are safe for concurrent use; writes to the same ID
// serialize on the store's mutex.
type PostStore struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]*domain.Post
}

// NewPostStore creates a new in-memory post store.
func NewPostStore() *PostStore {
	return &PostStore{
		posts: make(map[uuid.UUID]*domain.Post),
	}
}

// Ensure PostStore implements store.PostStore interface
var _ store.PostStore = (*PostStore)(nil)

// Create saves a new post. Returns validation errors from the domain Post
// if data is invalid, or store.ErrInvalidEntity if the ID already exists.
func (s *PostStore) Create(ctx context.Context, post *domain.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[post.ID]; exists {
		return store.ErrInvalidEntity
	}

	// Store a copy to avoid external modifications
	postCopy := *post
	s.posts[post.ID] = &postCopy
	return nil
}

// GetByID retrieves a post by ID. Returns store.ErrPostNotFound if the
// post does not exist.
func (s *PostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, exists := s.posts[id]
	if !exists {
		return nil, store.ErrPostNotFound
	}

	// Return a copy to prevent external modifications
	postCopy := *post
	return &postCopy, nil
}

// List returns all stored posts, newest first.
func (s *PostStore) List(ctx context.Context) ([]*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]*domain.Post, 0, len(s.posts))
	for _, post := range s.posts {
		postCopy := *post
		posts = append(posts, &postCopy)
	}

	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts, nil
}

// Update saves changes to an existing post. Returns store.ErrPostNotFound
// if the post does not exist, or validation errors if the data is invalid.
func (s *PostStore) Update(ctx context.Context, post *domain.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.posts[post.ID]
	if !exists {
		return store.ErrPostNotFound
	}

	postCopy := *post
	// CreatedAt is immutable regardless of what the caller passes in.
	postCopy.CreatedAt = existing.CreatedAt
	s.posts[post.ID] = &postCopy
	return nil
}

// Delete removes a post permanently. Returns store.ErrPostNotFound if the
// post does not exist.
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[id]; !exists {
		return store.ErrPostNotFound
	}

	delete(s.posts, id)
	return nil
}

// WithTx returns the store itself. The in-memory store has no transaction
// support; each operation is already atomic under the mutex.
func (s *PostStore) WithTx(tx *sql.Tx) store.PostStore {
	return s
}
