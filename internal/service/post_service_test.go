package service

import (
	"context"
	"strings"
	"testing"

	"comunidad/internal/models"
	"comunidad/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   CreatePostInput
	}{
		{"missing user", CreatePostInput{Content: "hola"}},
		{"blank content", CreatePostInput{UserID: 1, Content: "   "}},
		{"content too long", CreatePostInput{UserID: 1, Content: strings.Repeat("x", maxContentLen+1)}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := noopPostRepo()
			_, err := NewPostService(repo).CreatePost(context.Background(), tt.in)
			assertValidationError(t, err)
			assert.Zero(t, repo.calls)
		})
	}
}

func TestPostService_CreatePost_TrimsContent(t *testing.T) {
	t.Parallel()
	repo := noopPostRepo()
	var saved *models.Post
	repo.createFn = func(_ context.Context, p *models.Post) error {
		saved = p
		return nil
	}

	post, err := NewPostService(repo).CreatePost(context.Background(), CreatePostInput{UserID: 2, Content: "  buenas  "})
	require.NoError(t, err)
	assert.Same(t, saved, post)
	assert.Equal(t, "buenas", post.Content)
	assert.Equal(t, uint(2), post.UserID)
}

func TestPostService_DeletePost(t *testing.T) {
	t.Parallel()

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		_, err := NewPostService(repo).DeletePost(context.Background(), 0)
		assertValidationError(t, err)
		assert.Zero(t, repo.calls)
	})

	t.Run("not found passes through", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.deleteCascadeFn = func(_ context.Context, id uint) (*repository.CascadeResult, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		_, err := NewPostService(repo).DeletePost(context.Background(), 12)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.deleteCascadeFn = func(_ context.Context, _ uint) (*repository.CascadeResult, error) {
			return nil, models.NewInternalError(errStore)
		}
		_, err := NewPostService(repo).DeletePost(context.Background(), 12)
		assertAppErrorCode(t, err, models.CodeInternal)
	})

	t.Run("success returns cascade result", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.deleteCascadeFn = func(_ context.Context, id uint) (*repository.CascadeResult, error) {
			return &repository.CascadeResult{PostID: id, FavoritesRemoved: 2, RepliesRemoved: 1, AffectedUserIDs: []uint{4, 5}}, nil
		}
		result, err := NewPostService(repo).DeletePost(context.Background(), 12)
		require.NoError(t, err)
		assert.Equal(t, uint(12), result.PostID)
		assert.Equal(t, []uint{4, 5}, result.AffectedUserIDs)
	})
}

func TestReplyService_CreateReply(t *testing.T) {
	t.Parallel()

	t.Run("unknown post", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		replies := noopReplyRepo()

		_, err := NewReplyService(replies, posts).CreateReply(context.Background(), CreateReplyInput{PostID: 9, UserID: 1, Content: "hola"})
		assertAppErrorCode(t, err, models.CodeNotFound)
		assert.Zero(t, replies.calls)
	})

	t.Run("missing content", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		_, err := NewReplyService(noopReplyRepo(), posts).CreateReply(context.Background(), CreateReplyInput{PostID: 9, UserID: 1})
		assertValidationError(t, err)
		assert.Zero(t, posts.calls)
	})

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		replies := noopReplyRepo()
		reply, err := NewReplyService(replies, noopPostRepo()).CreateReply(context.Background(), CreateReplyInput{PostID: 9, UserID: 1, Content: " gracias "})
		require.NoError(t, err)
		assert.Equal(t, "gracias", reply.Content)
		assert.Equal(t, 1, replies.calls)
	})
}

func TestReplyService_ListReplies_UnknownPost(t *testing.T) {
	t.Parallel()
	posts := noopPostRepo()
	posts.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
	replies := noopReplyRepo()

	_, err := NewReplyService(replies, posts).ListReplies(context.Background(), 3)
	assertAppErrorCode(t, err, models.CodeNotFound)
	assert.Zero(t, replies.calls)
}
