package cache_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/busboard/internal/cache"
	"github.com/campusboard/busboard/internal/domain"
)

func TestScheduleCache_SetGet(t *testing.T) {
	c := cache.NewScheduleCache(time.Minute)
	entries := []domain.ScheduleEntry{{ID: uuid.New()}}

	_, ok := c.Get()
	assert.False(t, ok, "empty cache must miss")

	c.Set(c.Generation(), entries)
	got, ok := c.Get()

	require.True(t, ok)
	assert.Equal(t, entries, got)
}

func TestScheduleCache_ReturnsCopy(t *testing.T) {
	c := cache.NewScheduleCache(time.Minute)
	c.Set(c.Generation(), []domain.ScheduleEntry{{Status: "On Time"}})

	got, _ := c.Get()
	got[0].Status = "mutated"

	again, _ := c.Get()
	assert.Equal(t, "On Time", again[0].Status)
}

func TestScheduleCache_Invalidate(t *testing.T) {
	c := cache.NewScheduleCache(time.Minute)
	c.Set(c.Generation(), []domain.ScheduleEntry{{ID: uuid.New()}})

	c.Invalidate()

	_, ok := c.Get()
	assert.False(t, ok)
}

func TestScheduleCache_Expires(t *testing.T) {
	c := cache.NewScheduleCache(10 * time.Millisecond)
	c.Set(c.Generation(), []domain.ScheduleEntry{{ID: uuid.New()}})

	assert.Eventually(t, func() bool {
		_, ok := c.Get()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestScheduleCache_Disabled(t *testing.T) {
	c := cache.NewScheduleCache(0)

	c.Set(c.Generation(), []domain.ScheduleEntry{{ID: uuid.New()}})
	_, ok := c.Get()
	c.Invalidate()

	assert.Nil(t, c)
	assert.False(t, ok)
}

func TestScheduleCache_SetAfterInvalidateIsDropped(t *testing.T) {
	c := cache.NewScheduleCache(time.Minute)

	gen := c.Generation()
	// a write commits while the listing for gen is still being read
	c.Invalidate()
	stored := c.Set(gen, []domain.ScheduleEntry{{Status: "stale"}})

	assert.False(t, stored)
	_, ok := c.Get()
	assert.False(t, ok, "a listing from before the write must not be cached")

	assert.True(t, c.Set(c.Generation(), []domain.ScheduleEntry{{Status: "fresh"}}))
	got, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "fresh", got[0].Status)
}
