package service_test

import (
	"context"
	"testing"

	"github.com/fernwood/blog-api/internal/domain"
	"github.com/fernwood/blog-api/internal/platform/memory"
	"github.com/fernwood/blog-api/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

// newTestService builds a PostService backed by the in-memory store.
func newTestService(t *testing.T) service.PostService {
	t.Helper()

	repo := service.NewPostRepositoryAdapter(memory.NewPostStore(), nil)
	svc, err := service.NewPostService(repo, nil)
	require.NoError(t, err)
	return svc
}

func TestNewPostService_NilRepo(t *testing.T) {
	t.Parallel()

	_, err := service.NewPostService(nil, nil)
	assert.Error(t, err)
}

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	t.Run("creates_and_persists", func(t *testing.T) {
		post, err := svc.CreatePost(ctx, "A", "B", "C D")
		require.NoError(t, err)
		require.NotNil(t, post)
		assert.NotEqual(t, uuid.Nil, post.ID)

		got, err := svc.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "A", got.Title)
		assert.Equal(t, "B", got.Content)
		assert.Equal(t, "C D", got.Author)
	})

	t.Run("rejects_missing_fields", func(t *testing.T) {
		_, err := svc.CreatePost(ctx, "", "B", "C D")
		assert.ErrorIs(t, err, domain.ErrEmptyPostTitle)

		_, err = svc.CreatePost(ctx, "A", "", "C D")
		assert.ErrorIs(t, err, domain.ErrEmptyPostContent)

		_, err = svc.CreatePost(ctx, "A", "B", "")
		assert.ErrorIs(t, err, domain.ErrEmptyPostAuthor)
	})
}

func TestPostService_GetPost_NotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.GetPost(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrPostNotFound)
}

func TestPostService_ListPosts(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)

	created, err := svc.CreatePost(ctx, "A", "B", "C D")
	require.NoError(t, err)

	posts, err = svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, created.ID, posts[0].ID)
	assert.Equal(t, "A", posts[0].Title)
}

func TestPostService_UpdatePost(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, "title", "content", "author")
	require.NoError(t, err)

	t.Run("partial_update_changes_only_specified_fields", func(t *testing.T) {
		updated, err := svc.UpdatePost(ctx, created.ID, domain.PostPatch{
			Content: strPtr("new content"),
		})
		require.NoError(t, err)

		assert.Equal(t, "title", updated.Title)
		assert.Equal(t, "new content", updated.Content)
		assert.Equal(t, "author", updated.Author)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)

		got, err := svc.GetPost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "new content", got.Content)
		assert.Equal(t, "title", got.Title)
	})

	t.Run("unknown_id_returns_not_found", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, uuid.New(), domain.PostPatch{Title: strPtr("x")})
		assert.ErrorIs(t, err, service.ErrPostNotFound)
	})

	t.Run("empty_patch_is_a_validation_error", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, created.ID, domain.PostPatch{})
		assert.ErrorIs(t, err, domain.ErrEmptyPatch)
	})

	t.Run("blank_field_is_a_validation_error", func(t *testing.T) {
		_, err := svc.UpdatePost(ctx, created.ID, domain.PostPatch{Title: strPtr("")})
		assert.ErrorIs(t, err, domain.ErrEmptyPostTitle)

		// The stored record is unchanged after the failed update
		got, err := svc.GetPost(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "title", got.Title)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, "A", "B", "C D")
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, created.ID))

	_, err = svc.GetPost(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrPostNotFound)

	err = svc.DeletePost(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrPostNotFound)
}
