package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix          = "post:%d"
	UserFavoritesKeyPrefix = "user:%d:favorites"
	PostsListKey           = "posts:list"
)

const (
	PostTTL      = 30 * time.Minute
	FavoritesTTL = 10 * time.Minute
	ListTTL      = 1 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func UserFavoritesKey(userID uint) string {
	return fmt.Sprintf(UserFavoritesKeyPrefix, userID)
}

// Invalidate drops the given keys. Failures are counted by the metrics hook and
// otherwise ignored; entries expire on their TTL.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID), PostsListKey)
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostsListKey)
}

// InvalidateFavorites drops the cached favorites list of every given user.
func InvalidateFavorites(ctx context.Context, userIDs ...uint) {
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, UserFavoritesKey(id))
	}
	Invalidate(ctx, keys...)
}
