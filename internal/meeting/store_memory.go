package meeting

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"meetsched/pkg/platform/sentinel"
)

// InMemoryStore holds all meetings. Records are indexed by id for lookup and
// kept in an insertion-ordered slice for scans.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Meeting
	ordered []*Meeting
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[uuid.UUID]*Meeting)}
}

// CreateIfSlotAvailable inserts m unless one of its participants already has
// an overlapping meeting. The availability scan and the insert run under one
// write lock, so two concurrent calls for overlapping participant sets can
// never both observe a free slot and both insert. Returns
// sentinel.ErrConflict when the slot is taken.
func (s *InMemoryStore) CreateIfSlotAvailable(_ context.Context, m *Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !IsSlotAvailable(m.Participants(), m.Start, s.ordered) {
		return sentinel.ErrConflict
	}
	s.insertLocked(m)
	return nil
}

// Insert adds a meeting without an availability check. Callers that need the
// non-overlap invariant must use CreateIfSlotAvailable instead.
func (s *InMemoryStore) Insert(_ context.Context, m *Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertLocked(m)
	return nil
}

func (s *InMemoryStore) insertLocked(m *Meeting) {
	s.byID[m.ID] = m
	s.ordered = append(s.ordered, m)
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.byID[id]; ok {
		return m, nil
	}
	return nil, sentinel.ErrNotFound
}

// List returns an insertion-ordered snapshot, independent of later inserts.
func (s *InMemoryStore) List(_ context.Context) ([]*Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Meeting{}, s.ordered...), nil
}
