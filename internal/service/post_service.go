package service

import (
	"context"
	"strings"

	"comunidad/internal/models"
	"comunidad/internal/observability"
	"comunidad/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

const maxContentLen = 10000

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID  uint
	Content string
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if in.UserID == 0 {
		return nil, models.NewValidationError("userId is required")
	}
	if content == "" {
		return nil, models.NewValidationError("content is required")
	}
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("content too long (max 10000 characters)")
	}

	post := &models.Post{UserID: in.UserID, Content: content}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	if id == 0 {
		return nil, models.NewValidationError("postId is required")
	}
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes a post together with its favorites and replies. A missing
// post is reported as NOT_FOUND and nothing is removed.
func (s *PostService) DeletePost(ctx context.Context, postID uint) (*repository.CascadeResult, error) {
	if postID == 0 {
		return nil, models.NewValidationError("postId is required")
	}

	span, ctx := observability.NewSpan(ctx, "PostService.DeletePost",
		attribute.Int64("post.id", int64(postID)))
	defer span.End()

	result, err := s.postRepo.DeleteCascade(ctx, postID)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			observability.PostCascadeDeletes.WithLabelValues(observability.ResultNotFound).Inc()
		} else {
			observability.PostCascadeDeletes.WithLabelValues(observability.ResultError).Inc()
			span.SetError(err)
		}
		return nil, err
	}

	observability.PostCascadeDeletes.WithLabelValues(observability.ResultDeleted).Inc()
	span.AddAttributes(
		attribute.Int64("cascade.favorites_removed", result.FavoritesRemoved),
		attribute.Int64("cascade.replies_removed", result.RepliesRemoved),
	)
	return result, nil
}
