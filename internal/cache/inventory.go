package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	NovelKeyPrefix  = "novel:%d"
	ReviewKeyPrefix = "review:%d"
	TagsKey         = "tags:suggestions"
)

const (
	UserTTL  = 5 * time.Minute
	NovelTTL = 5 * time.Minute
	TagsTTL  = 15 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func NovelKey(novelID uint) string {
	return fmt.Sprintf(NovelKeyPrefix, novelID)
}

func ReviewKey(reviewID uint) string {
	return fmt.Sprintf(ReviewKeyPrefix, reviewID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateNovel(ctx context.Context, novelID uint) {
	Invalidate(ctx, NovelKey(novelID))
}
