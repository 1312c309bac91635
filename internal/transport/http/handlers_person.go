package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"meetsched/internal/person"
	dErrors "meetsched/pkg/domain-errors"
	"meetsched/pkg/requestcontext"
)

var validate = validator.New()

// PersonService defines the registry operations the person endpoints need.
type PersonService interface {
	CreatePerson(ctx context.Context, name, email string) (*person.Person, error)
	FindByEmail(ctx context.Context, email string) (*person.Person, error)
	FindByID(ctx context.Context, id uuid.UUID) (*person.Person, error)
	ListPersons(ctx context.Context) ([]*person.Person, error)
}

// PersonHandler handles the /api/persons endpoints.
type PersonHandler struct {
	logger  *slog.Logger
	persons PersonService
}

func NewPersonHandler(persons PersonService, logger *slog.Logger) *PersonHandler {
	return &PersonHandler{logger: logger, persons: persons}
}

// Register mounts the person routes on the given router.
func (h *PersonHandler) Register(r chi.Router) {
	r.Post("/persons", h.handleCreatePerson)
	r.Get("/persons", h.handleListPersons)
	r.Get("/persons/{id}", h.handleGetPerson)
}

type createPersonRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type personResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func toPersonResponse(p *person.Person) personResponse {
	return personResponse{ID: p.ID.String(), Name: p.Name, Email: p.Email}
}

func (h *PersonHandler) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createPersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid request body"))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "name and a valid email are required"))
		return
	}

	p, err := h.persons.CreatePerson(ctx, req.Name, req.Email)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to create person",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "person created",
		"request_id", requestcontext.RequestID(ctx),
		"person_id", p.ID.String(),
	)
	writeJSON(w, http.StatusCreated, toPersonResponse(p))
}

func (h *PersonHandler) handleListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.persons.ListPersons(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(persons, func(p *person.Person, _ int) personResponse {
		return toPersonResponse(p)
	}))
}

func (h *PersonHandler) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid person id"))
		return
	}
	p, err := h.persons.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonResponse(p))
}
