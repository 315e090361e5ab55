// Package store caches built dashboard views in memory so a location
// can be served its last good view while a rebuild is in flight or
// failing.
package store

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/weatherboard/weatherboard/internal/common"
	"github.com/weatherboard/weatherboard/internal/dashboard"
)

// ErrNotFound is returned when no view is cached for a location.
var ErrNotFound = errors.New("no cached view for location")

// Key canonicalizes a coordinate pair for indexing. Coordinates are
// rounded to four decimals (~11 m) so nearby requests share a cache
// slot.
func Key(lat, lon float64) string {
	return strconv.FormatFloat(common.RoundTo(lat, 4), 'f', -1, 64) + ":" +
		strconv.FormatFloat(common.RoundTo(lon, 4), 'f', -1, 64)
}

type history struct {
	views []*dashboard.View
}

// MemoryStore is a concurrency-safe in-memory view cache with
// retention by count and by age.
type MemoryStore struct {
	mu sync.RWMutex

	data map[string]*history

	maxHistory int           // max views kept per location (0 = unlimited)
	maxAge     time.Duration // max view age (0 = unlimited)
}

// NewMemoryStore creates a MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*history),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// Save appends a view for its location and enforces retention.
func (s *MemoryStore) Save(view *dashboard.View) {
	key := Key(view.Lat, view.Lon)

	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.data[key]
	if !ok {
		h = &history{}
		s.data[key] = h
	}

	h.views = append(h.views, view)

	if s.maxHistory > 0 && len(h.views) > s.maxHistory {
		over := len(h.views) - s.maxHistory
		h.views = h.views[over:]
	}

	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(h.views); i++ {
			if !h.views[i].GeneratedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 && i < len(h.views) {
			h.views = h.views[i:]
		}
	}
}

// Latest returns the most recent cached view for a coordinate pair.
func (s *MemoryStore) Latest(lat, lon float64) (*dashboard.View, error) {
	key := Key(lat, lon)

	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.data[key]
	if !ok || len(h.views) == 0 {
		return nil, ErrNotFound
	}

	latest := h.views[len(h.views)-1]
	if s.maxAge > 0 && time.Since(latest.GeneratedAt) > s.maxAge {
		return nil, ErrNotFound
	}
	return latest, nil
}
