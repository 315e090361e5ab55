package dashboard

import (
	"errors"
	"sync"
)

// State is one of the three mutually exclusive visual states of a
// dashboard: exactly one is active at any time.
type State int

const (
	StateLoading State = iota
	StateContent
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateContent:
		return "content"
	default:
		return "error"
	}
}

// ErrInvalidTransition is returned for transitions outside the
// loading -> {content, error} table.
var ErrInvalidTransition = errors.New("invalid state transition")

// Status tracks the visual state of one dashboard across render
// cycles. A new cycle re-enters loading via Begin; Finish settles it
// into content or error.
type Status struct {
	mu    sync.Mutex
	state State
}

// NewStatus creates a Status in the loading state.
func NewStatus() *Status {
	return &Status{state: StateLoading}
}

// State returns the currently active state.
func (s *Status) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin starts a new render cycle, entering loading from any state.
func (s *Status) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateLoading
}

// Finish settles the current cycle: content on nil error, error
// otherwise. Finishing a cycle that is not loading is rejected.
func (s *Status) Finish(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading {
		return ErrInvalidTransition
	}
	if err != nil {
		s.state = StateError
	} else {
		s.state = StateContent
	}
	return nil
}
