package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	BlogKeyPrefix        = "blog:%d"
	BlogLikeCountPrefix  = "blog:%d:likes"
	MatchmakingKeyPrefix = "matchmaking:%d"
	DestinationKey       = "destination:random"
)

const (
	UserTTL        = 5 * time.Minute
	BlogTTL        = 30 * time.Minute
	LikeCountTTL   = 2 * time.Minute
	MatchmakingTTL = 10 * time.Minute
	DestinationTTL = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func BlogKey(blogID uint) string {
	return fmt.Sprintf(BlogKeyPrefix, blogID)
}

func BlogLikeCountKey(blogID uint) string {
	return fmt.Sprintf(BlogLikeCountPrefix, blogID)
}

func MatchmakingKey(userID uint) string {
	return fmt.Sprintf(MatchmakingKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateBlog drops the blog body and its like counter together,
// likes render inside the blog payload.
func InvalidateBlog(ctx context.Context, blogID uint) {
	Invalidate(ctx, BlogKey(blogID))
	Invalidate(ctx, BlogLikeCountKey(blogID))
}

func InvalidateMatchmaking(ctx context.Context, userID uint) {
	Invalidate(ctx, MatchmakingKey(userID))
}
