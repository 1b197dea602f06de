package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fernwood/blog-api/internal/domain"
	"github.com/fernwood/blog-api/internal/platform/logger"
	"github.com/fernwood/blog-api/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const pgUniqueViolationCode = "23505"

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the PostStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// WithTx returns a new PostgresPostStore that runs its queries on the
// provided transaction instead of the original connection.
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.PostStore.Create
// It saves a new post to the database, handling domain validation.
// Returns validation errors from the domain Post if data is invalid.
// Returns store.ErrInvalidEntity if the ID already exists (unique violation).
func (s *PostgresPostStore) Create(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during create",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	query := `
		INSERT INTO posts (id, title, content, author, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		post.ID,
		post.Title,
		post.Content,
		post.Author,
		post.CreatedAt,
		post.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			log.Warn("unique violation during post creation",
				slog.String("error", err.Error()),
				slog.String("post_id", post.ID.String()))
			return fmt.Errorf("%w: post with ID %s already exists",
				store.ErrInvalidEntity, post.ID)
		}

		log.Error("failed to create post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	log.Info("post created successfully",
		slog.String("post_id", post.ID.String()),
		slog.String("author", post.Author))
	return nil
}

// GetByID implements store.PostStore.GetByID
// It retrieves a post by its unique ID.
// Returns store.ErrPostNotFound if the post does not exist.
func (s *PostgresPostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving post by ID", slog.String("post_id", id.String()))

	query := `
		SELECT id, title, content, author, created_at, updated_at
		FROM posts
		WHERE id = $1
	`

	var post domain.Post

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Author,
		&post.CreatedAt,
		&post.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found", slog.String("post_id", id.String()))
			return nil, store.ErrPostNotFound
		}
		log.Error("failed to get post by ID",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return nil, err
	}

	log.Debug("post retrieved successfully", slog.String("post_id", id.String()))
	return &post, nil
}

// List implements store.PostStore.List
// It retrieves all currently stored posts, newest first.
// Returns an empty slice if the store is empty.
func (s *PostgresPostStore) List(ctx context.Context) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing posts")

	query := `
		SELECT id, title, content, author, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query posts",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		err := rows.Close()
		if err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var posts []*domain.Post
	for rows.Next() {
		var post domain.Post

		err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.Author,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan post row",
				slog.String("error", err.Error()))
			return nil, err
		}

		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no posts found
	if posts == nil {
		posts = []*domain.Post{}
	}

	log.Debug("listed posts", slog.Int("count", len(posts)))
	return posts, nil
}

// Update implements store.PostStore.Update
// It saves changes to an existing post. CreatedAt is never written.
// Returns store.ErrPostNotFound if the post does not exist.
// Returns validation errors if the post data is invalid.
func (s *PostgresPostStore) Update(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Warn("post validation failed during update",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	query := `
		UPDATE posts
		SET title = $1, content = $2, author = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		post.Title,
		post.Content,
		post.Author,
		post.UpdatedAt,
		post.ID,
	)

	if err != nil {
		log.Error("failed to update post",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("post_id", post.ID.String()))
		return err
	}

	// If no rows were affected, the post didn't exist
	if rowsAffected == 0 {
		log.Debug("post not found for update",
			slog.String("post_id", post.ID.String()))
		return store.ErrPostNotFound
	}

	log.Info("post updated successfully",
		slog.String("post_id", post.ID.String()))
	return nil
}

// Delete implements store.PostStore.Delete
// It removes a post permanently.
// Returns store.ErrPostNotFound if the post does not exist.
func (s *PostgresPostStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("deleting post", slog.String("post_id", id.String()))

	query := `
		DELETE FROM posts
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("post not found for delete",
			slog.String("post_id", id.String()))
		return store.ErrPostNotFound
	}

	log.Info("post deleted successfully", slog.String("post_id", id.String()))
	return nil
}
