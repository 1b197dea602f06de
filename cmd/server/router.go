package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fernwood/blog-api/internal/api"
	apiMiddleware "github.com/fernwood/blog-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	postHandler := api.NewPostHandler(app.postService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/posts", postHandler.ListPosts)
		r.Post("/posts", postHandler.CreatePost)
		r.Get("/posts/{id}", postHandler.GetPost)
		r.Put("/posts/{id}", postHandler.UpdatePost)
		r.Delete("/posts/{id}", postHandler.DeletePost)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
