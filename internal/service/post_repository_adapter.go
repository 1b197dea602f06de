package service

import (
	"database/sql"

	"github.com/fernwood/blog-api/internal/store"
)

// PostRepositoryAdapter adapts a store.PostStore to the service-layer
// PostRepository interface, carrying the database handle alongside the
// store so the service can open transactions.
type PostRepositoryAdapter struct {
	store.PostStore
	db *sql.DB
}

// NewPostRepositoryAdapter creates a new adapter that implements
// PostRepository by delegating to a store.PostStore implementation.
// db may be nil for stores without a database connection (e.g. the
// in-memory store); in that case the service skips transactions.
func NewPostRepositoryAdapter(postStore store.PostStore, db *sql.DB) *PostRepositoryAdapter {
	return &PostRepositoryAdapter{
		PostStore: postStore,
		db:        db,
	}
}

// DB returns the underlying database connection, or nil.
func (a *PostRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// Ensure PostRepositoryAdapter implements service.PostRepository
var _ PostRepository = (*PostRepositoryAdapter)(nil)
