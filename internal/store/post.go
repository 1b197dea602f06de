package store

import (
	"context"
	"database/sql"

	"github.com/fernwood/blog-api/internal/domain"
	"github.com/google/uuid"
)

// PostStore defines the interface for blog post data persistence.
type PostStore interface {
	// Create saves a new post to the store.
	// It handles domain validation internally.
	// Returns validation errors from the domain Post if data is invalid.
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by its unique ID.
	// Returns ErrPostNotFound if the post does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// List retrieves all currently stored posts, newest first.
	// Returns an empty slice if the store is empty.
	List(ctx context.Context) ([]*domain.Post, error)

	// Update saves changes to an existing post.
	// Returns ErrPostNotFound if the post does not exist.
	// Returns validation errors if the post data is invalid.
	Update(ctx context.Context, post *domain.Post) error

	// Delete removes a post permanently.
	// Returns ErrPostNotFound if the post does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new PostStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) PostStore
}
