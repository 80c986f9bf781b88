package memory

import (
	"context"
	"sync"

	"github.com/aretw0/rehearse/pkg/domain"
)

// Store implements ports.CursorStore in memory.
// It also records every saved value, which makes it handy for dry runs and tests.
// Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	cursor  int
	saved   bool
	history []int
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{}
}

// NewStoreAt creates a store that already holds cursor.
func NewStoreAt(cursor int) *Store {
	return &Store{cursor: cursor, saved: true}
}

// Save records the cursor.
func (s *Store) Save(ctx context.Context, cursor int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor = cursor
	s.saved = true
	s.history = append(s.history, cursor)
	return nil
}

// Load returns the last saved cursor.
func (s *Store) Load(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return 0, domain.ErrCursorNotFound
	}
	return s.cursor, nil
}

// History returns a copy of every value passed to Save, oldest first.
func (s *Store) History() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, len(s.history))
	copy(out, s.history)
	return out
}
