package moderation

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"crease/internal/registration/models"
	"crease/internal/registration/store"
	dErrors "crease/pkg/domain-errors"
)

var (
	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crease_moderation_transitions_total",
		Help: "Status transitions applied by admins, labeled by target status.",
	}, []string{"status"})

	listingsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crease_moderation_listings_total",
		Help: "Admin dashboard listing requests served.",
	})
)

// Listing is a filtered view over the registration snapshot plus the
// whole-snapshot tallies the dashboard shows regardless of filter.
type Listing struct {
	Records []*models.Registration
	Counts  StatusCounts
}

// Service exposes the admin review operations.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a moderation service over the registration store.
func New(st store.Store, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, errors.New("moderation: store is required")
	}
	s := &Service{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// List returns the filtered snapshot for the dashboard. Counts always cover
// the full snapshot so the tally cards do not change as the admin types.
func (s *Service) List(ctx context.Context, query string, status models.StatusFilter) (*Listing, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeStore, "listing registrations failed")
	}

	listingsTotal.Inc()
	return &Listing{
		Records: Filter(records, query, status),
		Counts:  Counts(records),
	}, nil
}

// SetStatus applies a moderation decision to one registration. Re-applying
// the current status succeeds without complaint; concurrent decisions on the
// same record resolve last-write-wins at the store.
func (s *Service) SetStatus(ctx context.Context, id string, status models.Status) error {
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "registration not found")
		}
		return dErrors.Wrap(err, dErrors.CodeStore, "updating registration status failed")
	}

	transitionsTotal.WithLabelValues(string(status)).Inc()
	s.logger.InfoContext(ctx, "registration status updated",
		slog.String("registration_id", id),
		slog.String("status", string(status)))
	return nil
}
