package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fernwood/blog-api/internal/domain"
	"github.com/fernwood/blog-api/internal/store"
	"github.com/google/uuid"
)

// PostRepository defines the repository interface for the service layer.
// This is aligned with store.PostStore to ensure proper separation of concerns.
type PostRepository interface {
	// Create saves a new post to the store
	Create(ctx context.Context, post *domain.Post) error

	// GetByID retrieves a post by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// List retrieves all currently stored posts, newest first
	List(ctx context.Context) ([]*domain.Post, error)

	// Update saves changes to an existing post
	Update(ctx context.Context, post *domain.Post) error

	// Delete removes a post permanently
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new repository instance that uses the provided transaction
	WithTx(tx *sql.Tx) store.PostStore

	// DB returns the underlying database connection, or nil for stores
	// without one (e.g. the in-memory store).
	DB() *sql.DB
}

// PostService provides blog post operations.
type PostService interface {
	// CreatePost creates and persists a new post.
	CreatePost(ctx context.Context, title, content, author string) (*domain.Post, error)

	// GetPost retrieves a post by its ID.
	GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// ListPosts retrieves all currently stored posts, newest first.
	ListPosts(ctx context.Context) ([]*domain.Post, error)

	// UpdatePost merges the supplied fields into the stored post, leaving
	// omitted fields untouched, and returns the updated post.
	UpdatePost(ctx context.Context, id uuid.UUID, patch domain.PostPatch) (*domain.Post, error)

	// DeletePost removes a post permanently.
	DeletePost(ctx context.Context, id uuid.UUID) error
}

// Common sentinel errors for PostService
var (
	// ErrPostNotFound indicates that the post does not exist
	ErrPostNotFound = errors.New("post not found")
)

// PostServiceError wraps errors from the post service with context.
type PostServiceError struct {
	// Operation is the operation that failed (e.g., "create_post", "update_post")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for PostServiceError.
func (e *PostServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("post service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("post service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PostServiceError) Unwrap() error {
	return e.Err
}

// NewPostServiceError creates a new PostServiceError.
// It returns known sentinel errors directly without wrapping, and passes
// domain validation errors through unchanged so the API layer can map
// them to a 400 response.
func NewPostServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrPostNotFound) || errors.Is(err, store.ErrPostNotFound) {
		return ErrPostNotFound
	}

	if domain.IsValidationError(err) {
		return err
	}

	return &PostServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	postRepo PostRepository
	logger   *slog.Logger
}

// NewPostService creates a new PostService.
// It returns an error if the repository dependency is nil.
func NewPostService(postRepo PostRepository, logger *slog.Logger) (PostService, error) {
	if postRepo == nil {
		return nil, &PostServiceError{
			Operation: "create_service",
			Message:   "postRepo cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &postServiceImpl{
		postRepo: postRepo,
		logger:   logger.With("component", "post_service"),
	}, nil
}

// CreatePost creates a new post and persists it.
func (s *postServiceImpl) CreatePost(
	ctx context.Context,
	title, content, author string,
) (*domain.Post, error) {
	post, err := domain.NewPost(title, content, author)
	if err != nil {
		s.logger.Warn("failed to create post object", "error", err)
		return nil, NewPostServiceError("create_post", "failed to create post object", err)
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.logger.Error("failed to save post",
			"error", err,
			"post_id", post.ID)
		return nil, NewPostServiceError("create_post", "failed to save post", err)
	}

	s.logger.Info("post created successfully", "post_id", post.ID)
	return post, nil
}

// GetPost retrieves a post by its ID.
func (s *postServiceImpl) GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error("failed to retrieve post",
			"error", err,
			"post_id", id)
		return nil, NewPostServiceError("get_post", "failed to retrieve post", err)
	}

	return post, nil
}

// ListPosts retrieves all posts, newest first.
func (s *postServiceImpl) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list posts", "error", err)
		return nil, NewPostServiceError("list_posts", "failed to list posts", err)
	}

	return posts, nil
}

// UpdatePost merges the patch into the stored post and persists the result.
// When the repository is backed by a database, the read-merge-write runs in
// a single transaction so concurrent patches to the same post serialize.
func (s *postServiceImpl) UpdatePost(
	ctx context.Context,
	id uuid.UUID,
	patch domain.PostPatch,
) (*domain.Post, error) {
	if patch.IsEmpty() {
		return nil, domain.NewValidationError("body", "no fields to update", domain.ErrEmptyPatch)
	}

	var updated *domain.Post

	applyPatch := func(ctx context.Context, repo store.PostStore) error {
		post, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := post.ApplyPatch(patch); err != nil {
			return err
		}

		if err := repo.Update(ctx, post); err != nil {
			return err
		}

		updated = post
		return nil
	}

	var err error
	if db := s.postRepo.DB(); db != nil {
		err = store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return applyPatch(ctx, s.postRepo.WithTx(tx))
		})
	} else {
		err = applyPatch(ctx, s.postRepo)
	}

	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		if domain.IsValidationError(err) {
			return nil, err
		}
		s.logger.Error("failed to update post",
			"error", err,
			"post_id", id)
		return nil, NewPostServiceError("update_post", "failed to update post", err)
	}

	s.logger.Info("post updated successfully", "post_id", id)
	return updated, nil
}

// DeletePost removes a post permanently.
func (s *postServiceImpl) DeletePost(ctx context.Context, id uuid.UUID) error {
	if err := s.postRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			return ErrPostNotFound
		}
		s.logger.Error("failed to delete post",
			"error", err,
			"post_id", id)
		return NewPostServiceError("delete_post", "failed to delete post", err)
	}

	s.logger.Info("post deleted successfully", "post_id", id)
	return nil
}
