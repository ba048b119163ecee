package cache

import (
	"context"
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

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func TestGetJSONMiss(t *testing.T) {
	setupMiniredis(t)

	var dest cachedUser
	found, err := GetJSON(context.Background(), UserKey(42), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSetThenGetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	err := SetJSON(ctx, UserKey(1), cachedUser{ID: 1, Username: "alice"}, UserTTL)
	require.NoError(t, err)

	var dest cachedUser
	found, err := GetJSON(ctx, UserKey(1), &dest)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "alice", dest.Username)
}

func TestCacheAsideFetchesOnMissAndPopulates(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var dest cachedUser
	fetch := func() error {
		fetches++
		dest = cachedUser{ID: 7, Username: "bob"}
		return nil
	}

	require.NoError(t, CacheAside(ctx, UserKey(7), &dest, time.Minute, fetch))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "bob", dest.Username)

	// Second call must be served from cache.
	dest = cachedUser{}
	require.NoError(t, CacheAside(ctx, UserKey(7), &dest, time.Minute, fetch))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "bob", dest.Username)
}

func TestInvalidateUser(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(3), cachedUser{ID: 3, Username: "carol"}, UserTTL))
	require.True(t, mr.Exists(UserKey(3)))

	InvalidateUser(ctx, 3)
	assert.False(t, mr.Exists(UserKey(3)))
}

func TestHelpersNoopWithoutClient(t *testing.T) {
	SetClient(nil)

	var dest cachedUser
	found, err := GetJSON(context.Background(), UserKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(context.Background(), UserKey(1), dest, time.Minute))
}
