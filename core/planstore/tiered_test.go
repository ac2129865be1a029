package planstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTieredStoreRefillsCacheFromDurable(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryStore(4, 0)
	durable := newSQLiteStore(t)
	s := NewTieredStore(cache, durable)

	// Seed the durable tier only.
	require.NoError(t, durable.Put(ctx, storedPlan("p1")))
	require.Equal(t, 0, cache.Len())

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, 1, cache.Len(), "miss must refill the cache")
}

func TestTieredStorePutWritesBothTiers(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryStore(4, 0)
	durable := newSQLiteStore(t)
	s := NewTieredStore(cache, durable)

	require.NoError(t, s.Put(ctx, storedPlan("p1")))

	_, err := cache.Get(ctx, "p1")
	assert.NoError(t, err)
	_, err = durable.Get(ctx, "p1")
	assert.NoError(t, err)
}

func TestTieredStoreDelete(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryStore(4, 0)
	durable := newSQLiteStore(t)
	s := NewTieredStore(cache, durable)

	require.NoError(t, s.Put(ctx, storedPlan("p1")))
	require.NoError(t, s.Delete(ctx, "p1"))
	_, err := s.Get(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Cache-only residency still deletes cleanly.
	require.NoError(t, cache.Put(ctx, storedPlan("p2")))
	assert.NoError(t, s.Delete(ctx, "p2"))

	assert.ErrorIs(t, s.Delete(ctx, "p3"), ErrNotFound)
}

func TestTieredStoreCacheOnly(t *testing.T) {
	ctx := context.Background()
	s := NewTieredStore(NewMemoryStore(4, 0), nil)

	require.NoError(t, s.Put(ctx, storedPlan("p1")))
	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Close())
}
