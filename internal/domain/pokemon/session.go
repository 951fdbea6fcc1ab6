package pokemon

import (
	"context"
	"errors"
	"sync"
)

// Snapshot is a consistent view of a Session for rendering.
type Snapshot struct {
	Collection Collection
	Cursor     PageCursor
	State      LoadState
}

// Session holds one viewer's accumulated collection, page cursor and load
// state. Only one load runs at a time; a second request while Loading is
// rejected with ErrLoadInProgress instead of being queued or cancelling the
// first.
type Session struct {
	acc *Accumulator

	mu         sync.Mutex
	collection Collection
	cursor     PageCursor
	state      LoadState
	loaded     bool
}

// NewSession creates an idle session positioned at offset 0.
func NewSession(acc *Accumulator) *Session {
	return &Session{acc: acc}
}

// Snapshot returns the current collection, cursor and state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Collection: s.collection, Cursor: s.cursor, State: s.state}
}

// State returns the current load state.
func (s *Session) State() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Loaded reports whether at least one load has been attempted.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Load loads the page at the current cursor.
func (s *Session) Load(ctx context.Context) error {
	return s.load(ctx, loadCurrent)
}

// LoadMore advances the cursor by one page and loads that page. The cursor
// stays advanced even if the load fails.
func (s *Session) LoadMore(ctx context.Context) error {
	return s.load(ctx, loadNext)
}

// EnsureLoaded performs the initial load unless a load was already attempted
// or is running.
func (s *Session) EnsureLoaded(ctx context.Context) error {
	err := s.load(ctx, loadInitial)
	if errors.Is(err, ErrLoadInProgress) {
		return nil
	}
	return err
}

type loadMode int

const (
	loadCurrent loadMode = iota
	loadNext
	loadInitial
)

func (s *Session) load(ctx context.Context, mode loadMode) error {
	s.mu.Lock()
	if s.state == Loading {
		s.mu.Unlock()
		return ErrLoadInProgress
	}
	if mode == loadInitial && s.loaded {
		s.mu.Unlock()
		return nil
	}
	if mode == loadNext {
		s.cursor = s.cursor.Next()
	}
	s.state = Loading
	s.loaded = true
	cursor := s.cursor
	prev := s.collection
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state = Idle
		s.mu.Unlock()
	}()

	next, err := s.acc.LoadPage(ctx, cursor, prev)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.collection = next
	s.mu.Unlock()
	return nil
}
