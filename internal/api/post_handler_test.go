package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fernwood/blog-api/internal/api"
	apiMiddleware "github.com/fernwood/blog-api/internal/api/middleware"
	"github.com/fernwood/blog-api/internal/platform/memory"
	"github.com/fernwood/blog-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer builds the post routes on a chi router backed by the
// in-memory store, mirroring the production router setup.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := service.NewPostRepositoryAdapter(memory.NewPostStore(), nil)
	svc, err := service.NewPostService(repo, nil)
	require.NoError(t, err)

	handler := api.NewPostHandler(svc, nil)

	r := chi.NewRouter()
	r.Use(apiMiddleware.Trace)
	r.Route("/api", func(r chi.Router) {
		r.Get("/posts", handler.ListPosts)
		r.Post("/posts", handler.CreatePost)
		r.Get("/posts/{id}", handler.GetPost)
		r.Put("/posts/{id}", handler.UpdatePost)
		r.Delete("/posts/{id}", handler.DeletePost)
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func doJSON(
	t *testing.T,
	method, url string,
	body interface{},
) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, buf.Bytes()
}

func createPost(t *testing.T, serverURL, title, content, author string) api.PostResponse {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, serverURL+"/api/posts", map[string]string{
		"title":   title,
		"content": content,
		"author":  author,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created api.PostResponse
	require.NoError(t, json.Unmarshal(body, &created))
	return created
}

func TestPostAPI_Create(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	t.Run("returns_201_with_fresh_id", func(t *testing.T) {
		created := createPost(t, server.URL, "A", "B", "C D")

		assert.NotEmpty(t, created.ID)
		_, err := uuid.Parse(created.ID)
		assert.NoError(t, err)
		assert.Equal(t, "A", created.Title)
		assert.Equal(t, "B", created.Content)
		assert.Equal(t, "C D", created.Author)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("missing_required_field_returns_400", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodPost, server.URL+"/api/posts", map[string]string{
			"title":  "A",
			"author": "C D",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, string(body), "Content")
	})

	t.Run("malformed_body_returns_400", func(t *testing.T) {
		req, err := http.NewRequest(
			http.MethodPost,
			server.URL+"/api/posts",
			bytes.NewReader([]byte("{not json")),
		)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPostAPI_List(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	t.Run("empty_collection_returns_empty_array", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, server.URL+"/api/posts", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, "[]", string(body))
	})

	t.Run("contains_exactly_the_created_record", func(t *testing.T) {
		created := createPost(t, server.URL, "A", "B", "C D")

		resp, body := doJSON(t, http.MethodGet, server.URL+"/api/posts", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var posts []api.PostResponse
		require.NoError(t, json.Unmarshal(body, &posts))
		require.Len(t, posts, 1)
		assert.Equal(t, created.ID, posts[0].ID)
		assert.Equal(t, "A", posts[0].Title)
		assert.Equal(t, "B", posts[0].Content)
		assert.Equal(t, "C D", posts[0].Author)
	})
}

func TestPostAPI_Get(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	created := createPost(t, server.URL, "A", "B", "C D")

	t.Run("round_trip_preserves_fields", func(t *testing.T) {
		resp, body := doJSON(t, http.MethodGet, server.URL+"/api/posts/"+created.ID, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got api.PostResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.Content, got.Content)
		assert.Equal(t, created.Author, got.Author)
	})

	t.Run("unknown_id_returns_404", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/posts/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed_id_returns_400", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/posts/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPostAPI_Update(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	t.Run("partial_update_leaves_unspecified_fields_unchanged", func(t *testing.T) {
		created := createPost(t, server.URL, "title", "content", "author")

		resp, body := doJSON(t, http.MethodPut, server.URL+"/api/posts/"+created.ID,
			map[string]string{"title": "new title"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated api.PostResponse
		require.NoError(t, json.Unmarshal(body, &updated))
		assert.Equal(t, "new title", updated.Title)
		assert.Equal(t, "content", updated.Content)
		assert.Equal(t, "author", updated.Author)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("unknown_id_returns_404", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodPut, server.URL+"/api/posts/"+uuid.NewString(),
			map[string]string{"title": "x"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("empty_patch_returns_400", func(t *testing.T) {
		created := createPost(t, server.URL, "t", "c", "a")

		resp, _ := doJSON(t, http.MethodPut, server.URL+"/api/posts/"+created.ID,
			map[string]string{})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("blank_field_returns_400", func(t *testing.T) {
		created := createPost(t, server.URL, "t", "c", "a")

		resp, _ := doJSON(t, http.MethodPut, server.URL+"/api/posts/"+created.ID,
			map[string]string{"title": ""})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestPostAPI_Delete(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	t.Run("delete_then_fetch_returns_404", func(t *testing.T) {
		created := createPost(t, server.URL, "A", "B", "C D")

		resp, body := doJSON(t, http.MethodDelete, server.URL+"/api/posts/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		assert.Empty(t, body)

		resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/posts/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unknown_id_returns_404", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodDelete, server.URL+"/api/posts/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
