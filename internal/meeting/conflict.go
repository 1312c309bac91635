package meeting

import (
	"time"

	"meetsched/internal/person"
)

// Conflict detection is pure: it operates on a snapshot of meetings and has
// no knowledge of storage or locking. The store runs these predicates under
// its own lock when a consistent view is required.

// InvolvesAny reports whether the meeting's organizer or any attendee
// matches any person in the given set.
func InvolvesAny(m *Meeting, persons []*person.Person) bool {
	for _, p := range persons {
		if m.Involves(p) {
			return true
		}
	}
	return false
}

// IsSlotAvailable reports whether the one-hour slot starting at start is
// free for every given person. A slot conflicts with a meeting m iff
// start < m.End && m.Start < start+1h; the intervals are half-open, so a
// slot touching a meeting boundary is free and back-to-back meetings are
// allowed. An empty person set or zero start is never available.
func IsSlotAvailable(persons []*person.Person, start time.Time, meetings []*Meeting) bool {
	if len(persons) == 0 || start.IsZero() {
		return false
	}
	end := start.Add(SlotDuration)
	for _, m := range meetings {
		if !InvolvesAny(m, persons) {
			continue
		}
		if start.Before(m.End) && m.Start.Before(end) {
			return false
		}
	}
	return true
}
