package person

import (
	"context"
	"errors"

	"github.com/google/uuid"

	personmetrics "meetsched/internal/person/metrics"
	dErrors "meetsched/pkg/domain-errors"
	"meetsched/pkg/platform/sentinel"
)

// Store abstracts the registry storage so the service can be tested against
// isolated instances.
type Store interface {
	CreateIfEmailAvailable(ctx context.Context, p *Person) error
	FindByEmail(ctx context.Context, email string) (*Person, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Person, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]*Person, error)
}

// Service owns participant identity and uniqueness.
type Service struct {
	store   Store
	metrics *personmetrics.Metrics
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithMetrics attaches prometheus metrics to the service.
func WithMetrics(m *personmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePerson registers a new participant. The duplicate-email check and
// the insert are a single atomic step inside the store, so concurrent
// registrations of the same email cannot both succeed.
func (s *Service) CreatePerson(ctx context.Context, name, email string) (*Person, error) {
	p, err := New(uuid.New(), name, email)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateIfEmailAvailable(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.Newf(dErrors.CodeAlreadyExists, "person with email %s already exists", p.Email)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create person")
	}
	if s.metrics != nil {
		s.metrics.IncrementPersonsCreated()
	}
	return p, nil
}

// FindByEmail resolves a person by any spelling of their email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*Person, error) {
	if NormalizeEmail(email) == "" {
		return nil, dErrors.New(dErrors.CodeNotFound, "person not found")
	}
	p, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "person with email %s not found", NormalizeEmail(email))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find person")
	}
	return p, nil
}

// FindByID resolves a person by their opaque id.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*Person, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "person with id %s not found", id)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to find person")
	}
	return p, nil
}

// EmailExists reports whether the normalized email is registered.
func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.store.EmailExists(ctx, email)
}

// ListPersons returns a snapshot of all registered persons.
func (s *Service) ListPersons(ctx context.Context) ([]*Person, error) {
	return s.store.List(ctx)
}
