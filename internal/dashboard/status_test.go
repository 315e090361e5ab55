package dashboard

import (
	"errors"
	"testing"
)

func TestStatusLifecycle(t *testing.T) {
	s := NewStatus()
	if s.State() != StateLoading {
		t.Fatalf("new status should be loading, got %v", s.State())
	}

	if err := s.Finish(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State() != StateContent {
		t.Fatalf("expected content, got %v", s.State())
	}

	// Exactly one state is active; settling twice is rejected.
	if err := s.Finish(nil); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	s.Begin()
	if s.State() != StateLoading {
		t.Fatalf("Begin should re-enter loading, got %v", s.State())
	}

	if err := s.Finish(errors.New("boom")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.State() != StateError {
		t.Fatalf("expected error state, got %v", s.State())
	}
}

func TestStateStrings(t *testing.T) {
	if StateLoading.String() != "loading" ||
		StateContent.String() != "content" ||
		StateError.String() != "error" {
		t.Fatal("unexpected state names")
	}
}
