package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"meetsched/internal/meeting"
	"meetsched/internal/person"
	dErrors "meetsched/pkg/domain-errors"
	"meetsched/pkg/requestcontext"
)

// defaultMaxSuggestions bounds the slot search when the caller does not ask
// for a specific count.
const defaultMaxSuggestions = 5

// SchedulingService defines the scheduling operations the meeting endpoints
// need.
type SchedulingService interface {
	CreateMeeting(ctx context.Context, title string, start time.Time, organizer *person.Person, attendees []*person.Person) (*meeting.Meeting, error)
	UpcomingMeetingsFor(ctx context.Context, p *person.Person) ([]*meeting.Meeting, error)
	SuggestSlots(ctx context.Context, participants []*person.Person, searchStart, searchEnd time.Time, maxSuggestions int) ([]time.Time, error)
	GetAllMeetings(ctx context.Context) ([]*meeting.Meeting, error)
	FindMeetingByID(ctx context.Context, id uuid.UUID) (*meeting.Meeting, error)
}

// MeetingHandler handles the /api/meetings endpoints. Requests reference
// participants by email; the handler resolves them against the registry
// before delegating to the scheduler.
type MeetingHandler struct {
	logger    *slog.Logger
	scheduler SchedulingService
	persons   PersonService
}

func NewMeetingHandler(scheduler SchedulingService, persons PersonService, logger *slog.Logger) *MeetingHandler {
	return &MeetingHandler{logger: logger, scheduler: scheduler, persons: persons}
}

// Register mounts the meeting routes on the given router.
func (h *MeetingHandler) Register(r chi.Router) {
	r.Post("/meetings", h.handleCreateMeeting)
	r.Get("/meetings", h.handleListMeetings)
	r.Get("/meetings/suggest-slots", h.handleSuggestSlots)
	r.Get("/meetings/schedule/{uuid}", h.handleGetPersonSchedule)
	r.Get("/meetings/{id}", h.handleGetMeeting)
}

type createMeetingRequest struct {
	Title          string    `json:"title" validate:"required"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	OrganizerEmail string    `json:"organizer_email" validate:"required,email"`
	AttendeeEmails []string  `json:"attendee_emails" validate:"required,min=1,dive,email"`
}

type meetingResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	OrganizerEmail string    `json:"organizer_email"`
	AttendeeEmails []string  `json:"attendee_emails"`
}

func toMeetingResponse(m *meeting.Meeting) meetingResponse {
	return meetingResponse{
		ID:             m.ID.String(),
		Title:          m.Title,
		StartTime:      m.Start,
		EndTime:        m.End,
		OrganizerEmail: m.Organizer.Email,
		AttendeeEmails: lo.Map(m.Attendees, func(p *person.Person, _ int) string { return p.Email }),
	}
}

func (h *MeetingHandler) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "title, start_time, organizer_email and at least one attendee email are required"))
		return
	}

	organizer, err := h.persons.FindByEmail(ctx, req.OrganizerEmail)
	if err != nil {
		writeError(w, dErrors.Newf(dErrors.CodeUnknownParticipant, "organizer with email %s not found", req.OrganizerEmail))
		return
	}
	attendees, err := h.resolvePersons(ctx, req.AttendeeEmails)
	if err != nil {
		writeError(w, err)
		return
	}

	m, err := h.scheduler.CreateMeeting(ctx, req.Title, req.StartTime, organizer, attendees)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to create meeting",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "meeting created",
		"request_id", requestcontext.RequestID(ctx),
		"meeting_id", m.ID.String(),
		"start_time", m.Start,
	)
	writeJSON(w, http.StatusCreated, toMeetingResponse(m))
}

func (h *MeetingHandler) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.scheduler.GetAllMeetings(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(meetings, func(m *meeting.Meeting, _ int) meetingResponse {
		return toMeetingResponse(m)
	}))
}

func (h *MeetingHandler) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid meeting id"))
		return
	}
	m, err := h.scheduler.FindMeetingByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMeetingResponse(m))
}

// handleGetPersonSchedule returns the upcoming meetings for one person,
// ascending by start time.
func (h *MeetingHandler) handleGetPersonSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid person id"))
		return
	}
	p, err := h.persons.FindByID(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	upcoming, err := h.scheduler.UpcomingMeetingsFor(ctx, p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(upcoming, func(m *meeting.Meeting, _ int) meetingResponse {
		return toMeetingResponse(m)
	}))
}

// handleSuggestSlots scans [start, end) for hour-aligned slots free for all
// requested participants. Query: emails (repeated), start, end (RFC 3339),
// max (optional, default 5).
func (h *MeetingHandler) handleSuggestSlots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	emails := q["emails"]
	if len(emails) == 0 {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "at least one emails parameter is required"))
		return
	}
	participants, err := h.resolvePersons(ctx, emails)
	if err != nil {
		writeError(w, err)
		return
	}

	start, err := parseTimeParam(q.Get("start"))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "start must be an RFC 3339 timestamp"))
		return
	}
	end, err := parseTimeParam(q.Get("end"))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "end must be an RFC 3339 timestamp"))
		return
	}

	maxSuggestions := defaultMaxSuggestions
	if raw := q.Get("max"); raw != "" {
		maxSuggestions, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, dErrors.New(dErrors.CodeInvalidInput, "max must be an integer"))
			return
		}
	}

	slots, err := h.scheduler.SuggestSlots(ctx, participants, start, end, maxSuggestions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// resolvePersons maps emails to registered persons, failing on the first
// unknown one the way the registry check in the scheduler does.
func (h *MeetingHandler) resolvePersons(ctx context.Context, emails []string) ([]*person.Person, error) {
	persons := make([]*person.Person, 0, len(emails))
	for _, email := range emails {
		p, err := h.persons.FindByEmail(ctx, email)
		if err != nil {
			return nil, dErrors.Newf(dErrors.CodeUnknownParticipant, "person with email %s not found", email)
		}
		persons = append(persons, p)
	}
	return persons, nil
}

func parseTimeParam(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}
