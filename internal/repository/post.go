package repository

import (
	"context"
	"errors"
	"fmt"

	"comunidad/internal/cache"
	"comunidad/internal/models"
	"comunidad/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines the interface for forum post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	DeleteCascade(ctx context.Context, id uint) (*CascadeResult, error)
}

// CascadeResult describes what a cascading post deletion removed.
type CascadeResult struct {
	PostID           uint
	FavoritesRemoved int64
	RepliesRemoved   int64
	// AffectedUserIDs lists users whose favorite of the post was removed.
	AffectedUserIDs []uint
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return writeError(err, "Post")
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
		return r.withDetails(r.db.WithContext(ctx)).First(&post, id).Error
	})
	if err != nil {
		return nil, readError(err, "Post", id)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.Aside(ctx, cache.PostsListKey, &posts, cache.ListTTL, func() error {
		return r.withDetails(r.db.WithContext(ctx)).
			Order("posts.created_at DESC").
			Order("posts.id DESC").
			Find(&posts).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// DeleteCascade removes the post's favorites, then its replies, then the post,
// inside one transaction. A dependent delete is skipped when its existence
// check finds no rows. A missing post rolls everything back and returns a
// NOT_FOUND AppError.
func (r *postRepository) DeleteCascade(ctx context.Context, id uint) (*CascadeResult, error) {
	result := &CascadeResult{PostID: id}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		removed, users, err := deletePostFavorites(tx, id)
		if err != nil {
			return err
		}
		result.FavoritesRemoved = removed
		result.AffectedUserIDs = users

		if result.RepliesRemoved, err = deletePostReplies(tx, id); err != nil {
			return err
		}

		done := observability.TrackQuery("delete", "posts")
		res := tx.Delete(&models.Post{}, id)
		done()
		if res.Error != nil {
			return fmt.Errorf("delete post: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Post", id)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, id)
	cache.InvalidateFavorites(ctx, result.AffectedUserIDs...)
	return result, nil
}

func deletePostFavorites(tx *gorm.DB, postID uint) (int64, []uint, error) {
	var userIDs []uint
	done := observability.TrackQuery("select", "favorites")
	err := tx.Model(&models.Favorite{}).Where("post_id = ?", postID).Pluck("user_id", &userIDs).Error
	done()
	if err != nil {
		return 0, nil, fmt.Errorf("check favorites: %w", err)
	}
	if len(userIDs) == 0 {
		return 0, nil, nil
	}

	done = observability.TrackQuery("delete", "favorites")
	res := tx.Where("post_id = ?", postID).Delete(&models.Favorite{})
	done()
	if res.Error != nil {
		return 0, nil, fmt.Errorf("delete favorites: %w", res.Error)
	}
	return res.RowsAffected, userIDs, nil
}

func deletePostReplies(tx *gorm.DB, postID uint) (int64, error) {
	var count int64
	done := observability.TrackQuery("count", "replies")
	err := tx.Model(&models.Reply{}).Where("post_id = ?", postID).Count(&count).Error
	done()
	if err != nil {
		return 0, fmt.Errorf("check replies: %w", err)
	}
	if count == 0 {
		return 0, nil
	}

	done = observability.TrackQuery("delete", "replies")
	res := tx.Where("post_id = ?", postID).Delete(&models.Reply{})
	done()
	if res.Error != nil {
		return 0, fmt.Errorf("delete replies: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *postRepository) withDetails(db *gorm.DB) *gorm.DB {
	return selectRepliesCount(db.Model(&models.Post{})).Preload("User")
}

// selectRepliesCount fills Post.RepliesCount. Every query that returns posts
// to clients goes through it, preloads included.
func selectRepliesCount(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, (SELECT COUNT(*) FROM replies WHERE replies.post_id = posts.id) AS replies_count")
}
