package favorite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/registry/internal/testutils"
)

// fixedClock 每次调用前进一秒，保证收藏时间严格递增
func fixedClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestStore_MarkAndPage(t *testing.T) {
	rdb, _ := testutils.SetupTestRedis(t)
	store := NewStore(rdb)
	store.now = fixedClock()
	ctx := context.Background()

	for _, id := range []uint{10, 20, 30} {
		require.NoError(t, store.Mark(ctx, 1, id))
	}

	count, err := store.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// 最近收藏的排在前面
	ids, err := store.Page(ctx, 1, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{30, 20}, ids)

	ids, err = store.Page(ctx, 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{10}, ids)

	ids, err = store.Page(ctx, 1, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, ids)

	faverCount, err := store.FaverCount(ctx, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, faverCount)
}

func TestStore_MarkIsIdempotent(t *testing.T) {
	rdb, _ := testutils.SetupTestRedis(t)
	store := NewStore(rdb)
	ctx := context.Background()

	require.NoError(t, store.Mark(ctx, 1, 10))
	require.NoError(t, store.Mark(ctx, 1, 10))

	count, err := store.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	fav, err := store.IsFavorite(ctx, 1, 10)
	require.NoError(t, err)
	assert.True(t, fav)
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	rdb, _ := testutils.SetupTestRedis(t)
	store := NewStore(rdb)
	ctx := context.Background()

	require.NoError(t, store.Mark(ctx, 1, 10))

	for i := 0; i < 2; i++ {
		require.NoError(t, store.Remove(ctx, 1, 10))

		count, err := store.Count(ctx, 1)
		require.NoError(t, err)
		assert.Zero(t, count)

		favers, err := store.FaverCount(ctx, 10)
		require.NoError(t, err)
		assert.Zero(t, favers)
	}

	fav, err := store.IsFavorite(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestStore_FaverCounts(t *testing.T) {
	rdb, _ := testutils.SetupTestRedis(t)
	store := NewStore(rdb)
	ctx := context.Background()

	require.NoError(t, store.Mark(ctx, 1, 10))
	require.NoError(t, store.Mark(ctx, 2, 10))
	require.NoError(t, store.Mark(ctx, 2, 20))

	counts, err := store.FaverCounts(ctx, []uint{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, map[uint]int{10: 2, 20: 1, 30: 0}, counts)

	empty, err := store.FaverCounts(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStore_Unavailable(t *testing.T) {
	rdb, mr := testutils.SetupTestRedis(t)
	store := NewStore(rdb)
	ctx := context.Background()
	mr.Close()

	assert.ErrorIs(t, store.Ping(ctx), ErrStoreUnavailable)

	_, err := store.Count(ctx, 1)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	assert.ErrorIs(t, store.Mark(ctx, 1, 10), ErrStoreUnavailable)
	assert.ErrorIs(t, store.Remove(ctx, 1, 10), ErrStoreUnavailable)

	_, err = store.FaverCounts(ctx, []uint{10})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
