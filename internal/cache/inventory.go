package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix       = "user:%d"
	PoemKeyPrefix       = "poem:%d"
	PoetSlugKeyPrefix   = "poet:%s"
	PublishedCountKey   = "poems:published:count"
	SearchKeyPrefix     = "search:%s:%d:%d"
)

const (
	UserTTL           = 5 * time.Minute
	PoemTTL           = 30 * time.Minute
	PoetTTL           = 10 * time.Minute
	PublishedCountTTL = 1 * time.Minute
	SearchTTL         = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PoemKey(poemID uint) string {
	return fmt.Sprintf(PoemKeyPrefix, poemID)
}

func PoetSlugKey(slug string) string {
	return fmt.Sprintf(PoetSlugKeyPrefix, slug)
}

func SearchKey(query string, limit, offset int) string {
	return fmt.Sprintf(SearchKeyPrefix, query, limit, offset)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePoem(ctx context.Context, poemID uint) {
	Invalidate(ctx, PoemKey(poemID))
}

// InvalidatePublishedCount drops the cached published-poem count after a
// status transition so feed pagination picks up the new total promptly.
func InvalidatePublishedCount(ctx context.Context) {
	Invalidate(ctx, PublishedCountKey)
}
