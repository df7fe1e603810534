// Package cache memoises the full schedule listing between writes.
package cache

import (
	"sync"
	"time"

	"github.com/bluele/gcache"

	"github.com/campusboard/busboard/internal/domain"
)

const scheduleKey = "schedule"

// ScheduleCache holds the most recent full listing for at most ttl.
// A nil *ScheduleCache is valid and never hits.
//
// Every Invalidate starts a new generation. A listing read during an older
// generation is never stored, so a read racing a write cannot repopulate the
// cache with rows the write already replaced.
type ScheduleCache struct {
	c gcache.Cache

	mu  sync.Mutex
	gen uint64
}

// NewScheduleCache returns a cache whose entries expire after ttl.
// A non-positive ttl disables caching and returns nil.
func NewScheduleCache(ttl time.Duration) *ScheduleCache {
	if ttl <= 0 {
		return nil
	}
	return &ScheduleCache{
		c: gcache.New(1).LRU().Expiration(ttl).Build(),
	}
}

// Get returns a copy of the cached listing.
func (s *ScheduleCache) Get() ([]domain.ScheduleEntry, bool) {
	if s == nil {
		return nil, false
	}
	v, err := s.c.Get(scheduleKey)
	if err != nil {
		return nil, false
	}
	entries, ok := v.([]domain.ScheduleEntry)
	if !ok {
		return nil, false
	}
	return append([]domain.ScheduleEntry(nil), entries...), true
}

// Generation returns the current generation. Take it before reading the
// listing from storage and hand it back to Set.
func (s *ScheduleCache) Generation() uint64 {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Set stores a copy of entries read during generation gen. It reports false
// and stores nothing when an Invalidate happened since gen was taken.
func (s *ScheduleCache) Set(gen uint64, entries []domain.ScheduleEntry) bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	_ = s.c.Set(scheduleKey, append([]domain.ScheduleEntry{}, entries...))
	return true
}

// Invalidate drops the cached listing and starts a new generation.
// Every schedule write calls it after committing.
func (s *ScheduleCache) Invalidate() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.c.Purge()
}
