package search

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry hands out typeahead sessions and retires idle ones. Each
// session owns its Controller and with it the pending debounce timer.
type Registry struct {
	geocoder Geocoder
	delay    time.Duration
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	controller *Controller
	lastSeen   time.Time
}

// NewRegistry creates a Registry. Sessions idle longer than ttl are
// pruned lazily on access.
func NewRegistry(geocoder Geocoder, delay, ttl time.Duration) *Registry {
	return &Registry{
		geocoder: geocoder,
		delay:    delay,
		ttl:      ttl,
		sessions: make(map[string]*session),
	}
}

// Create opens a new session and returns its id.
func (r *Registry) Create() string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked(time.Now())
	r.sessions[id] = &session{
		controller: NewController(r.geocoder, r.delay),
		lastSeen:   time.Now(),
	}
	return id
}

// Get returns the controller for a session id, refreshing its idle
// deadline.
func (r *Registry) Get(id string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.pruneLocked(now)

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = now
	return s.controller, true
}

func (r *Registry) pruneLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, s := range r.sessions {
		if now.Sub(s.lastSeen) > r.ttl {
			s.controller.debounce.Cancel()
			delete(r.sessions, id)
		}
	}
}
