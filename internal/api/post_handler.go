package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fernwood/blog-api/internal/api/shared"
	"github.com/fernwood/blog-api/internal/domain"
	"github.com/fernwood/blog-api/internal/platform/logger"
	"github.com/fernwood/blog-api/internal/service"
)

// CreatePostRequest represents the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1"`
	Content string `json:"content" validate:"required,min=1"`
	Author  string `json:"author" validate:"required,min=1"`
}

// UpdatePostRequest represents the request body for updating a post.
// All fields are optional; omitted fields are left untouched.
type UpdatePostRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1"`
	Content *string `json:"content" validate:"omitempty,min=1"`
	Author  *string `json:"author" validate:"omitempty,min=1"`
}

// PostResponse represents the response data for a post
type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postService service.PostService
	logger      *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService service.PostService, logger *slog.Logger) *PostHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostHandler{
		postService: postService,
		logger:      logger.With(slog.String("component", "post_handler")),
	}
}

// ListPosts handles GET /api/posts requests.
// It returns all currently stored posts as a JSON array, newest first.
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	posts, err := h.postService.ListPosts(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list posts")
		return
	}

	response := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, postToResponse(post))
	}

	log.Debug("listed posts", slog.Int("count", len(response)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreatePost handles POST /api/posts requests.
// It validates the request body, creates the post, and returns the full
// serialized record with status 201.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	post, err := h.postService.CreatePost(r.Context(), req.Title, req.Content, req.Author)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("post created", slog.String("post_id", post.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, postToResponse(post))
}

// GetPost handles GET /api/posts/{id} requests.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid post ID in path", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	post, err := h.postService.GetPost(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// UpdatePost handles PUT /api/posts/{id} requests.
// It merges the supplied fields into the stored post, leaving omitted
// fields untouched, and returns the updated record.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid post ID in path", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdatePostRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	patch := domain.PostPatch{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	}

	post, err := h.postService.UpdatePost(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("post updated", slog.String("post_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, postToResponse(post))
}

// DeletePost handles DELETE /api/posts/{id} requests.
// On success it returns 204 with an empty body.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		log.Warn("invalid post ID in path", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.postService.DeletePost(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("post deleted", slog.String("post_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// postToResponse converts a domain.Post to a PostResponse
func postToResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID.String(),
		Title:     post.Title,
		Content:   post.Content,
		Author:    post.Author,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
