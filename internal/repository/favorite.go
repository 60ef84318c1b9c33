package repository

import (
	"context"
	"fmt"

	"comunidad/internal/cache"
	"comunidad/internal/models"
	"comunidad/internal/observability"

	"gorm.io/gorm"
)

// FavoriteRepository defines persistence operations for post favorites.
type FavoriteRepository interface {
	Toggle(ctx context.Context, userID, postID uint) (added bool, err error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Post, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle removes the (user, post) favorite when it exists and inserts it
// otherwise. The check and the write share one transaction.
func (r *favoriteRepository) Toggle(ctx context.Context, userID, postID uint) (bool, error) {
	var added bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		done := observability.TrackQuery("count", "favorites")
		err := tx.Model(&models.Favorite{}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Count(&count).Error
		done()
		if err != nil {
			return fmt.Errorf("check favorite: %w", err)
		}

		if count > 0 {
			done = observability.TrackQuery("delete", "favorites")
			defer done()
			return tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Favorite{}).Error
		}

		done = observability.TrackQuery("insert", "favorites")
		defer done()
		if err := tx.Create(&models.Favorite{UserID: userID, PostID: postID}).Error; err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, writeError(err, "Favorite")
	}

	cache.InvalidateFavorites(ctx, userID)
	return added, nil
}

// ListByUser returns the posts a user favorited, most recently favorited first.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	posts := make([]*models.Post, 0)
	err := cache.Aside(ctx, cache.UserFavoritesKey(userID), &posts, cache.FavoritesTTL, func() error {
		var favorites []models.Favorite
		if err := r.db.WithContext(ctx).
			Preload("Post", selectRepliesCount).
			Preload("Post.User").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&favorites).Error; err != nil {
			return err
		}
		for i := range favorites {
			if favorites[i].Post != nil {
				posts = append(posts, favorites[i].Post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
