package service

import (
	"context"

	"comunidad/internal/models"
	"comunidad/internal/observability"
	"comunidad/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
}

type ToggleFavoriteInput struct {
	UserID uint
	PostID uint
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo}
}

// ToggleFavorite inverts the (user, post) favorite and reports whether it now
// exists. Both ids are checked before the store is touched.
func (s *FavoriteService) ToggleFavorite(ctx context.Context, in ToggleFavoriteInput) (bool, error) {
	if in.UserID == 0 || in.PostID == 0 {
		return false, models.NewValidationError("userId and postId are required")
	}

	span, ctx := observability.NewSpan(ctx, "FavoriteService.ToggleFavorite",
		attribute.Int64("user.id", int64(in.UserID)),
		attribute.Int64("post.id", int64(in.PostID)),
	)
	defer span.End()

	added, err := s.favoriteRepo.Toggle(ctx, in.UserID, in.PostID)
	if err != nil {
		observability.FavoriteToggles.WithLabelValues(observability.ResultError).Inc()
		span.SetError(err)
		return false, err
	}

	result := observability.ResultRemoved
	if added {
		result = observability.ResultAdded
	}
	observability.FavoriteToggles.WithLabelValues(result).Inc()
	span.AddAttributes(attribute.String("favorite.result", result))
	return added, nil
}

func (s *FavoriteService) ListFavorites(ctx context.Context, userID uint) ([]*models.Post, error) {
	if userID == 0 {
		return nil, models.NewValidationError("userId is required")
	}
	return s.favoriteRepo.ListByUser(ctx, userID)
}
