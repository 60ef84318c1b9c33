package repository

import (
	"context"
	"log/slog"

	"comunidad/internal/cache"
	"comunidad/internal/middleware"
	"comunidad/internal/models"
	"comunidad/internal/observability"

	"gorm.io/gorm"
)

// ReplyRepository defines interface for forum reply operations
type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	ListByPost(ctx context.Context, postID uint) ([]*models.Reply, error)
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new ReplyRepository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

// Create inserts the reply and drops every cached view of its post whose reply
// count just changed: the post itself and the favorites lists holding it.
func (r *replyRepository) Create(ctx context.Context, reply *models.Reply) error {
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return writeError(err, "Reply")
	}
	cache.InvalidatePost(ctx, reply.PostID)
	r.invalidateFavoritedBy(ctx, reply.PostID)
	return nil
}

func (r *replyRepository) invalidateFavoritedBy(ctx context.Context, postID uint) {
	if cache.GetClient() == nil {
		return
	}
	var userIDs []uint
	done := observability.TrackQuery("select", "favorites")
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("post_id = ?", postID).Pluck("user_id", &userIDs).Error
	done()
	if err != nil {
		// Cached lists still expire on FavoritesTTL.
		middleware.Logger.WarnContext(ctx, "favorites lookup for cache invalidation failed",
			slog.Uint64("post_id", uint64(postID)),
			slog.String("error", err.Error()),
		)
		return
	}
	cache.InvalidateFavorites(ctx, userIDs...)
}

func (r *replyRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Reply, error) {
	var replies []*models.Reply
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Order("id asc").
		Find(&replies).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return replies, nil
}
