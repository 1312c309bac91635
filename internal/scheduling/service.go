// Package scheduling composes the person registry and the meeting store into
// the scheduling façade: meeting creation under the non-overlap rule, per-
// person upcoming meetings, and free-slot suggestion. It is the only package
// the transport layer talks to for meetings.
package scheduling

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"meetsched/internal/meeting"
	schedmetrics "meetsched/internal/meeting/metrics"
	"meetsched/internal/person"
	dErrors "meetsched/pkg/domain-errors"
	"meetsched/pkg/platform/sentinel"
	"meetsched/pkg/requestcontext"
)

// PersonDirectory is the slice of the person registry the scheduler needs.
type PersonDirectory interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

// MeetingStore abstracts meeting storage. CreateIfSlotAvailable must run its
// availability check and insert as one atomic step.
type MeetingStore interface {
	CreateIfSlotAvailable(ctx context.Context, m *meeting.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*meeting.Meeting, error)
	List(ctx context.Context) ([]*meeting.Meeting, error)
}

// Service orchestrates meeting scheduling.
type Service struct {
	persons  PersonDirectory
	meetings MeetingStore
	metrics  *schedmetrics.Metrics
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithMetrics attaches prometheus metrics to the service.
func WithMetrics(m *schedmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(persons PersonDirectory, meetings MeetingStore, opts ...Option) *Service {
	s := &Service{persons: persons, meetings: meetings}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMeeting validates the request, confirms every participant exists in
// the registry, and inserts the meeting if the slot is free for all of them.
// The availability check and the insert are one atomic step inside the
// store, so concurrent requests for colliding slots cannot both succeed.
func (s *Service) CreateMeeting(ctx context.Context, title string, start time.Time, organizer *person.Person, attendees []*person.Person) (*meeting.Meeting, error) {
	m, err := meeting.New(uuid.New(), title, start, organizer, attendees)
	if err != nil {
		return nil, err
	}

	for _, p := range m.Participants() {
		exists, err := s.persons.EmailExists(ctx, p.Email)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify participant")
		}
		if !exists {
			return nil, dErrors.Newf(dErrors.CodeUnknownParticipant, "person with email %s does not exist in the system", p.Email)
		}
	}

	if err := s.meetings.CreateIfSlotAvailable(ctx, m); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			if s.metrics != nil {
				s.metrics.IncrementSchedulingConflicts()
			}
			return nil, dErrors.Newf(dErrors.CodeConflict, "one or more participants have a scheduling conflict at %s", start.Format(time.RFC3339))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create meeting")
	}

	if s.metrics != nil {
		s.metrics.IncrementMeetingsCreated()
	}
	return m, nil
}

// UpcomingMeetingsFor returns the meetings starting strictly after the
// request-scoped now in which p is organizer or attendee, ascending by start
// time. A nil person has no meetings.
func (s *Service) UpcomingMeetingsFor(ctx context.Context, p *person.Person) ([]*meeting.Meeting, error) {
	if p == nil {
		return []*meeting.Meeting{}, nil
	}
	all, err := s.meetings.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list meetings")
	}
	now := requestcontext.Now(ctx)
	upcoming := lo.Filter(all, func(m *meeting.Meeting, _ int) bool {
		return m.Start.After(now) && m.Involves(p)
	})
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].Start.Before(upcoming[j].Start) })
	return upcoming, nil
}

// SuggestSlots enumerates free hour-aligned slots for the participants
// inside [searchStart, searchEnd). The first candidate is searchStart
// truncated to the hour, advanced one hour when searchStart was not already
// aligned, so no slot before the requested window is ever suggested. The
// scan is a deterministic hourly walk; it stops when the window is exhausted
// or maxSuggestions slots were found. A non-positive maxSuggestions admits
// no slots.
func (s *Service) SuggestSlots(ctx context.Context, participants []*person.Person, searchStart, searchEnd time.Time, maxSuggestions int) ([]time.Time, error) {
	if len(participants) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "at least one person is required")
	}
	if searchStart.IsZero() || searchEnd.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "search start and end are required")
	}
	if searchStart.After(searchEnd) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "search start must be before search end")
	}
	if maxSuggestions <= 0 {
		return []time.Time{}, nil
	}

	began := time.Now()
	// One snapshot for the whole scan: each availability check observes a
	// consistent view and the suggestions are mutually consistent.
	snapshot, err := s.meetings.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list meetings")
	}

	candidate := truncateToHour(searchStart)
	if !candidate.Equal(searchStart) {
		candidate = candidate.Add(meeting.SlotDuration)
	}

	suggestions := make([]time.Time, 0, maxSuggestions)
	for candidate.Before(searchEnd) && len(suggestions) < maxSuggestions {
		if meeting.IsSlotAvailable(participants, candidate, snapshot) {
			suggestions = append(suggestions, candidate)
		}
		candidate = candidate.Add(meeting.SlotDuration)
	}

	if s.metrics != nil {
		s.metrics.ObserveSuggestSlots(began)
	}
	return suggestions, nil
}

// GetAllMeetings returns a snapshot of every stored meeting.
func (s *Service) GetAllMeetings(ctx context.Context) ([]*meeting.Meeting, error) {
	return s.meetings.List(ctx)
}

// FindMeetingByID resolves a meeting by its opaque id.
func (s *Service) FindMeetingByID(ctx context.Context, id uuid.UUID) (*meeting.Meeting, error) {
	m, err := s.meetings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "meeting with id %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find meeting")
	}
	return m, nil
}

// truncateToHour zeroes the minute, second and sub-second components while
// preserving the wall-clock date and zone.
func truncateToHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}
