package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fernwood/blog-api/internal/config"
	"github.com/fernwood/blog-api/internal/platform/postgres"
	"github.com/fernwood/blog-api/internal/service"
)

// application holds the wired dependencies of the running server.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	db          *sql.DB
	postService service.PostService
}

// newApplication wires the store, repository and service layers together
// on top of the given database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	postStore := postgres.NewPostgresPostStore(db, logger)
	postRepo := service.NewPostRepositoryAdapter(postStore, db)

	postService, err := service.NewPostService(postRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		postService: postService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
