package person

import (
	"strings"

	"github.com/google/uuid"

	dErrors "meetsched/pkg/domain-errors"
)

// Person is a registered participant.
//
// Invariants:
//   - Name is non-blank (trimmed at construction)
//   - Email is non-blank, stored normalized (trimmed, lower-cased)
//   - At most one Person per normalized email, enforced by the store
//
// Persons are immutable after creation; the registry never updates or
// deletes them, so handing out pointers is safe.
type Person struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// NormalizeEmail applies the canonical form used as the uniqueness key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// New validates and constructs a Person with a normalized email.
func New(id uuid.UUID, name, email string) (*Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "name cannot be empty")
	}
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "email cannot be empty")
	}
	return &Person{ID: id, Name: name, Email: normalized}, nil
}

// Is reports whether two persons are the same participant. Identity is the
// person ID or the normalized email; either match suffices.
func (p *Person) Is(other *Person) bool {
	if p == nil || other == nil {
		return false
	}
	return p.ID == other.ID || p.Email == other.Email
}
