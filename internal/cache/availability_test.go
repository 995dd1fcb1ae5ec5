package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
)

func newTestCache(t *testing.T) (*RedisAvailabilityCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := NewRedisClient(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisAvailabilityCache(client, 30*time.Second), mr
}

func sampleSlots() []domain.Slot {
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return []domain.Slot{
		{Start: base, DurationMin: 60},
		{Start: base.Add(time.Hour), DurationMin: 60},
	}
}

func TestRedisAvailabilityCache(t *testing.T) {
	ctx := context.Background()
	const date = "2026-03-02"

	t.Run("MissThenHit", func(t *testing.T) {
		c, _ := newTestCache(t)

		_, ok := c.Get(ctx, 1, date, 1)
		assert.False(t, ok)

		slots := sampleSlots()
		c.Set(ctx, 1, date, 1, slots)

		got, ok := c.Get(ctx, 1, date, 1)
		require.True(t, ok)
		require.Len(t, got, 2)
		assert.True(t, slots[0].Start.Equal(got[0].Start))
		assert.Equal(t, 60, got[0].DurationMin)
	})

	t.Run("EmptyListIsCached", func(t *testing.T) {
		c, _ := newTestCache(t)

		c.Set(ctx, 1, date, 1, []domain.Slot{})

		got, ok := c.Get(ctx, 1, date, 1)
		require.True(t, ok)
		assert.Empty(t, got)
	})

	t.Run("KeysAreScopedByService", func(t *testing.T) {
		c, _ := newTestCache(t)

		c.Set(ctx, 1, date, 1, sampleSlots())

		_, ok := c.Get(ctx, 1, date, 2)
		assert.False(t, ok)
	})

	t.Run("InvalidateClearsAllServicesOfTheDay", func(t *testing.T) {
		c, _ := newTestCache(t)

		c.Set(ctx, 1, date, 1, sampleSlots())
		c.Set(ctx, 1, date, 2, sampleSlots())
		c.Set(ctx, 2, date, 1, sampleSlots())

		c.Invalidate(ctx, 1, date)

		_, ok := c.Get(ctx, 1, date, 1)
		assert.False(t, ok)
		_, ok = c.Get(ctx, 1, date, 2)
		assert.False(t, ok)

		// Outro barbeiro não é afetado.
		_, ok = c.Get(ctx, 2, date, 1)
		assert.True(t, ok)
	})

	t.Run("EntriesExpire", func(t *testing.T) {
		c, mr := newTestCache(t)

		c.Set(ctx, 1, date, 1, sampleSlots())
		mr.FastForward(31 * time.Second)

		_, ok := c.Get(ctx, 1, date, 1)
		assert.False(t, ok)
	})

	t.Run("CorruptPayloadIsAMiss", func(t *testing.T) {
		c, mr := newTestCache(t)

		require.NoError(t, mr.Set("availability:1:2026-03-02:1", "not-json"))

		_, ok := c.Get(ctx, 1, date, 1)
		assert.False(t, ok)
	})
}

func TestNoopAvailabilityCache(t *testing.T) {
	ctx := context.Background()
	c := NewNoopAvailabilityCache()

	c.Set(ctx, 1, "2026-03-02", 1, sampleSlots())
	_, ok := c.Get(ctx, 1, "2026-03-02", 1)
	assert.False(t, ok)
}
