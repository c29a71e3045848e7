package server

import (
	"sync"

	"scopegate/internal/state"
)

// ConvStore keeps conversations in memory for the lifetime of the
// process. Each entry carries its own lock: turns within one
// conversation are strictly serialized, turns across conversations run
// in parallel with no coordination.
type ConvStore struct {
	mu      sync.Mutex
	entries map[string]*convEntry
}

type convEntry struct {
	mu   sync.Mutex
	conv *state.Conversation
}

// NewConvStore creates an empty store.
func NewConvStore() *ConvStore {
	return &ConvStore{entries: make(map[string]*convEntry)}
}

// acquire returns the entry for id, creating it if absent. The caller
// locks the entry for the duration of the turn.
func (s *ConvStore) acquire(id string) *convEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		e = &convEntry{conv: &state.Conversation{}}
		s.entries[id] = e
	}
	return e
}

// Len reports the number of tracked conversations.
func (s *ConvStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
