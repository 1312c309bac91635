package httptransport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetsched/internal/meeting"
	"meetsched/internal/person"
	"meetsched/internal/platform/metrics"
	"meetsched/internal/scheduling"
)

// Registered once; promauto panics on duplicate registration with the
// default registry.
var testMetrics = metrics.New()

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	personService := person.NewService(person.NewInMemoryStore())
	scheduler := scheduling.NewService(personService, meeting.NewInMemoryStore())
	return NewRouter(logger, testMetrics,
		NewPersonHandler(personService, logger),
		NewMeetingHandler(scheduler, personService, logger),
	)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createPerson(t *testing.T, router http.Handler, name, email string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/persons", map[string]string{
		"name": name, "email": email,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["id"]
}

func TestCreatePersonEndpoint(t *testing.T) {
	router := newTestRouter()

	t.Run("created", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/persons", map[string]string{
			"name": "Alice", "email": "Alice@Example.com",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice@example.com", resp["email"])
		assert.NotEmpty(t, resp["id"])
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/persons", map[string]string{
			"name": "Other Alice", "email": "ALICE@example.com",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/persons", map[string]string{
			"name": "Bob", "email": "not-an-email",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown person is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/persons/00000000-0000-0000-0000-000000000001", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreateMeetingEndpoint(t *testing.T) {
	router := newTestRouter()
	createPerson(t, router, "Alice", "a@x.com")
	createPerson(t, router, "Bob", "b@x.com")

	start := time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)

	t.Run("created with one hour duration", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/meetings", map[string]any{
			"title":           "Planning",
			"start_time":      start,
			"organizer_email": "a@x.com",
			"attendee_emails": []string{"b@x.com"},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var resp meetingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, start, resp.StartTime.UTC())
		assert.Equal(t, start.Add(time.Hour), resp.EndTime.UTC())
		assert.Equal(t, []string{"b@x.com"}, resp.AttendeeEmails)
	})

	t.Run("conflicting slot is 409", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/meetings", map[string]any{
			"title":           "Clash",
			"start_time":      start,
			"organizer_email": "b@x.com",
			"attendee_emails": []string{"a@x.com"},
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("off hour start is 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/meetings", map[string]any{
			"title":           "Late",
			"start_time":      start.Add(30 * time.Minute),
			"organizer_email": "a@x.com",
			"attendee_emails": []string{"b@x.com"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown attendee is 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/meetings", map[string]any{
			"title":           "Ghost",
			"start_time":      start.Add(5 * time.Hour),
			"organizer_email": "a@x.com",
			"attendee_emails": []string{"ghost@x.com"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "ghost@x.com")
	})

	t.Run("unknown meeting id is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/meetings/00000000-0000-0000-0000-000000000002", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSuggestSlotsEndpoint(t *testing.T) {
	router := newTestRouter()
	createPerson(t, router, "Alice", "a@x.com")
	createPerson(t, router, "Bob", "b@x.com")

	windowStart := time.Date(2030, 3, 4, 9, 0, 0, 0, time.UTC)
	windowEnd := windowStart.Add(4 * time.Hour)

	// Book 10:00 for alice so the scan skips it.
	rec := doJSON(t, router, http.MethodPost, "/api/meetings", map[string]any{
		"title":           "Busy",
		"start_time":      windowStart.Add(time.Hour),
		"organizer_email": "a@x.com",
		"attendee_emails": []string{"b@x.com"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	t.Run("skips the booked hour", func(t *testing.T) {
		q := url.Values{}
		q.Add("emails", "a@x.com")
		q.Set("start", windowStart.Format(time.RFC3339))
		q.Set("end", windowEnd.Format(time.RFC3339))
		q.Set("max", "3")

		req := httptest.NewRequest(http.MethodGet, "/api/meetings/suggest-slots?"+q.Encode(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

		var slots []time.Time
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &slots))
		require.Len(t, slots, 3)
		assert.Equal(t, windowStart, slots[0].UTC())
		assert.Equal(t, windowStart.Add(2*time.Hour), slots[1].UTC())
		assert.Equal(t, windowStart.Add(3*time.Hour), slots[2].UTC())
	})

	t.Run("negative max yields an empty list", func(t *testing.T) {
		q := url.Values{}
		q.Add("emails", "a@x.com")
		q.Set("start", windowStart.Format(time.RFC3339))
		q.Set("end", windowEnd.Format(time.RFC3339))
		q.Set("max", "-1")

		req := httptest.NewRequest(http.MethodGet, "/api/meetings/suggest-slots?"+q.Encode(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

		var slots []time.Time
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &slots))
		assert.Empty(t, slots)
	})

	t.Run("missing emails is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/api/meetings/suggest-slots?start=%s&end=%s",
				url.QueryEscape(windowStart.Format(time.RFC3339)),
				url.QueryEscape(windowEnd.Format(time.RFC3339))), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("bad timestamp is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/meetings/suggest-slots?emails=a@x.com&start=tomorrow&end=later", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestPersonScheduleEndpoint(t *testing.T) {
	router := newTestRouter()
	aliceID := createPerson(t, router, "Alice", "a@x.com")
	createPerson(t, router, "Bob", "b@x.com")

	// Far enough in the future to stay "upcoming" for the real clock.
	start := time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)
	rec := doJSON(t, router, http.MethodPost, "/api/meetings", map[string]any{
		"title":           "Future",
		"start_time":      start,
		"organizer_email": "a@x.com",
		"attendee_emails": []string{"b@x.com"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	t.Run("upcoming meetings for person", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/meetings/schedule/"+aliceID, nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusOK, recorder.Code)

		var resp []meetingResponse
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "Future", resp[0].Title)
	})

	t.Run("unknown person is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/meetings/schedule/00000000-0000-0000-0000-000000000003", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
