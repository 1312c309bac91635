package meeting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"meetsched/internal/person"
	dErrors "meetsched/pkg/domain-errors"
)

// SlotDuration is the fixed length of every meeting. Duration is not a
// caller-settable attribute; End is always Start + SlotDuration.
const SlotDuration = time.Hour

// Meeting is an immutable scheduled meeting.
//
// Invariants:
//   - Title is non-blank (trimmed at construction)
//   - Start falls exactly on an hour boundary
//   - End = Start + SlotDuration
//   - Attendees is non-empty with duplicates collapsed by person identity
//   - For any two meetings sharing a participant, the [Start, End) intervals
//     do not overlap (enforced by the store's conditional insert)
//
// A meeting holds non-owning references to persons owned by the registry.
type Meeting struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Start     time.Time        `json:"start_time"`
	End       time.Time        `json:"end_time"`
	Organizer *person.Person   `json:"organizer"`
	Attendees []*person.Person `json:"attendees"`
}

// HourAligned reports whether t has zero minute, second and sub-second
// components.
func HourAligned(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// New validates and constructs a Meeting.
func New(id uuid.UUID, title string, start time.Time, organizer *person.Person, attendees []*person.Person) (*Meeting, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "title cannot be empty")
	}
	if start.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "start time is required")
	}
	if !HourAligned(start) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "meeting can only start at the hour mark")
	}
	if organizer == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "organizer is required")
	}
	if len(attendees) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "at least one attendee is required")
	}
	// Dedup by the same identity rule Person.Is applies, so two records for
	// the same mailbox collapse even when their ids differ.
	deduped := make([]*person.Person, 0, len(attendees))
	for _, a := range attendees {
		if !lo.ContainsBy(deduped, func(p *person.Person) bool { return p.Is(a) }) {
			deduped = append(deduped, a)
		}
	}
	attendees = deduped
	return &Meeting{
		ID:        id,
		Title:     title,
		Start:     start,
		End:       start.Add(SlotDuration),
		Organizer: organizer,
		Attendees: attendees,
	}, nil
}

// Participants returns the attendees plus the organizer. The organizer
// counts as a participant for conflict purposes even when not listed as an
// attendee.
func (m *Meeting) Participants() []*person.Person {
	out := make([]*person.Person, 0, len(m.Attendees)+1)
	out = append(out, m.Attendees...)
	if !lo.ContainsBy(out, func(p *person.Person) bool { return p.Is(m.Organizer) }) {
		out = append(out, m.Organizer)
	}
	return out
}

// Involves reports whether p is the organizer or an attendee.
func (m *Meeting) Involves(p *person.Person) bool {
	if m.Organizer.Is(p) {
		return true
	}
	return lo.ContainsBy(m.Attendees, func(a *person.Person) bool { return a.Is(p) })
}
