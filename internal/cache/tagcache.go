package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"novelshelf/internal/observability"
)

// TagFetcher loads the distinct genre and tag names from the source of truth.
type TagFetcher func(ctx context.Context) ([]string, error)

// TagCache serves the tag/genre suggestion list used by catalog filters and
// submission forms. The list lives in Redis under TagsKey with TagsTTL; callers
// that mutate tags (submission approval, novel edits) call Invalidate so the
// next read refreshes from the database.
type TagCache struct {
	fetch TagFetcher

	mu       sync.Mutex
	fallback []string // last good list, used while Redis is down
}

func NewTagCache(fetch TagFetcher) *TagCache {
	return &TagCache{fetch: fetch}
}

// Tags returns the current suggestion list, refreshing from the database on a
// cache miss.
func (t *TagCache) Tags(ctx context.Context) ([]string, error) {
	if client != nil {
		s, err := client.Get(ctx, TagsKey).Result()
		if err == nil {
			var tags []string
			if err := json.Unmarshal([]byte(s), &tags); err == nil {
				return tags, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			// Redis unavailable, serve the last good list if we have one
			t.mu.Lock()
			fallback := t.fallback
			t.mu.Unlock()
			if fallback != nil {
				return fallback, nil
			}
		}
	}
	return t.refresh(ctx, "miss")
}

// Invalidate drops the cached list. The next Tags call refreshes it.
func (t *TagCache) Invalidate(ctx context.Context) {
	if client == nil {
		return
	}
	if err := client.Del(ctx, TagsKey).Err(); err != nil {
		observability.RecordErrorInContext(ctx, err)
	}
}

// Refresh rebuilds the cached list immediately instead of waiting for the
// next miss. Used after submission approval so new tags show up right away.
func (t *TagCache) Refresh(ctx context.Context) error {
	_, err := t.refresh(ctx, "mutation")
	return err
}

func (t *TagCache) refresh(ctx context.Context, trigger string) ([]string, error) {
	tags, err := t.fetch(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(tags)

	t.mu.Lock()
	t.fallback = tags
	t.mu.Unlock()

	if client != nil {
		if b, err := json.Marshal(tags); err == nil {
			if err := client.Set(ctx, TagsKey, b, TagsTTL).Err(); err != nil {
				observability.RecordErrorInContext(ctx, err)
			}
		}
	}
	observability.TagCacheRefreshes.WithLabelValues(trigger).Inc()
	return tags, nil
}

// StartPeriodicRefresh refreshes the list every interval until ctx is done.
func (t *TagCache) StartPeriodicRefresh(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := t.refresh(ctx, "periodic"); err != nil {
					observability.RecordErrorInContext(ctx, err)
				}
			}
		}
	}()
}
