package person

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"meetsched/pkg/platform/sentinel"
)

// InMemoryStore is the registry's only storage. Persons are indexed by both
// id and normalized email; the email index carries the uniqueness invariant.
type InMemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]*Person
	byID    map[uuid.UUID]*Person
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byEmail: make(map[string]*Person),
		byID:    make(map[uuid.UUID]*Person),
	}
}

// CreateIfEmailAvailable inserts p unless its email is already registered.
// The existence check and the insert happen under one write lock, so two
// concurrent calls with the same email can never both succeed. Returns
// sentinel.ErrAlreadyUsed when the email is taken.
func (s *InMemoryStore) CreateIfEmailAvailable(_ context.Context, p *Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[p.Email]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.byEmail[p.Email] = p
	s.byID[p.ID] = p
	return nil
}

// FindByEmail looks up a person by any spelling of their email.
func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.byEmail[NormalizeEmail(email)]; ok {
		return p, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) FindByID(_ context.Context, id uuid.UUID) (*Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, sentinel.ErrNotFound
}

// EmailExists reports whether the normalized email is registered. Blank
// input is never registered.
func (s *InMemoryStore) EmailExists(_ context.Context, email string) (bool, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[normalized]
	return ok, nil
}

// List returns a snapshot of all registered persons. The returned slice is
// independent of later registrations; order is not significant.
func (s *InMemoryStore) List(_ context.Context) ([]*Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Person, 0, len(s.byEmail))
	for _, p := range s.byEmail {
		out = append(out, p)
	}
	return out, nil
}
