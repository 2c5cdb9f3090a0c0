package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestTagCacheMissFetchesAndCaches(t *testing.T) {
	mr := setupMiniredis(t)

	calls := 0
	tc := NewTagCache(func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"xianxia", "isekai", "cultivation"}, nil
	})

	tags, err := tc.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cultivation", "isekai", "xianxia"}, tags)
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists(TagsKey))

	// Second read is served from Redis.
	tags, err = tc.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cultivation", "isekai", "xianxia"}, tags)
	assert.Equal(t, 1, calls)
}

func TestTagCacheInvalidate(t *testing.T) {
	mr := setupMiniredis(t)

	calls := 0
	tc := NewTagCache(func(ctx context.Context) ([]string, error) {
		calls++
		if calls == 1 {
			return []string{"isekai"}, nil
		}
		return []string{"isekai", "litrpg"}, nil
	})

	_, err := tc.Tags(context.Background())
	require.NoError(t, err)

	tc.Invalidate(context.Background())
	assert.False(t, mr.Exists(TagsKey))

	tags, err := tc.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"isekai", "litrpg"}, tags)
	assert.Equal(t, 2, calls)
}

func TestTagCacheRefreshOnMutation(t *testing.T) {
	setupMiniredis(t)

	lists := [][]string{{"isekai"}, {"isekai", "regression"}}
	calls := 0
	tc := NewTagCache(func(ctx context.Context) ([]string, error) {
		out := lists[calls]
		calls++
		return out, nil
	})

	_, err := tc.Tags(context.Background())
	require.NoError(t, err)

	require.NoError(t, tc.Refresh(context.Background()))

	tags, err := tc.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"isekai", "regression"}, tags)
}

func TestTagCacheTTLExpiry(t *testing.T) {
	mr := setupMiniredis(t)

	calls := 0
	tc := NewTagCache(func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"wuxia"}, nil
	})

	_, err := tc.Tags(context.Background())
	require.NoError(t, err)

	mr.FastForward(TagsTTL + time.Second)

	_, err = tc.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestTagCacheFallbackWhenRedisDown(t *testing.T) {
	mr := setupMiniredis(t)

	tc := NewTagCache(func(ctx context.Context) ([]string, error) {
		return []string{"wuxia"}, nil
	})

	_, err := tc.Tags(context.Background())
	require.NoError(t, err)

	mr.Close()

	tags, err := tc.Tags(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"wuxia"}, tags)
}

func TestTagCacheFetchError(t *testing.T) {
	setupMiniredis(t)

	wantErr := errors.New("db down")
	tc := NewTagCache(func(ctx context.Context) ([]string, error) {
		return nil, wantErr
	})

	_, err := tc.Tags(context.Background())
	assert.ErrorIs(t, err, wantErr)
}
