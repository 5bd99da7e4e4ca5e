// Package service orchestrates the two-phase submission workflow: a proof
// image is uploaded first, then a registration record referencing the
// resulting URL is persisted. Abandonment between the phases leaves an
// orphaned upload behind; that is accepted and not compensated.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"crease/internal/platform/config"
	"crease/internal/registration/metrics"
	"crease/internal/registration/models"
	"crease/internal/registration/store"
	dErrors "crease/pkg/domain-errors"
	"crease/pkg/requestcontext"
)

// Uploader sends proof images to the external object store.
type Uploader interface {
	Upload(ctx context.Context, fileBytes []byte, fileName string) (string, error)
	GenerateFileName() string
}

// Service runs the submission workflow against the registration store.
type Service struct {
	store         store.Store
	uploader      Uploader
	logger        *slog.Logger
	metrics       *metrics.Metrics
	insertTimeout time.Duration
	notify        config.Notify
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics enables prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithInsertTimeout overrides the store insert deadline.
func WithInsertTimeout(d time.Duration) Option {
	return func(s *Service) { s.insertTimeout = d }
}

// WithNotify configures the post-submission message handoff.
func WithNotify(n config.Notify) Option {
	return func(s *Service) { s.notify = n }
}

// New constructs the submission service.
func New(st store.Store, uploader Uploader, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, fmt.Errorf("registration store is required")
	}
	if uploader == nil {
		return nil, fmt.Errorf("proof uploader is required")
	}
	s := &Service{
		store:         st,
		uploader:      uploader,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		insertTimeout: 15 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// UploadProof is phase one of the submission: it pushes the image to the
// object store and returns the durable URL the client holds until submit.
// Re-selecting a file on the client simply calls this again; the previous
// URL is abandoned, never reused.
func (s *Service) UploadProof(ctx context.Context, fileBytes []byte) (string, error) {
	if len(fileBytes) == 0 {
		return "", dErrors.New(dErrors.CodeBadRequest, "proof image is empty")
	}

	fileName := s.uploader.GenerateFileName()
	url, err := s.uploader.Upload(ctx, fileBytes, fileName)
	if err != nil {
		s.countUpload("error")
		s.logger.WarnContext(ctx, "proof upload failed",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return "", err
	}

	s.countUpload("ok")
	return url, nil
}

// Submit is phase two: it validates the fields and persists the record.
// The insert runs under a hard deadline; past it the operation is reported
// as failed even though the write may still land remotely, so a retry can
// produce a duplicate record. That race is tolerated, not prevented.
func (s *Service) Submit(ctx context.Context, req *models.SubmitRequest) (*models.Registration, string, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		s.countFailure("validating")
		return nil, "", err
	}

	insertCtx, cancel := context.WithTimeout(ctx, s.insertTimeout)
	defer cancel()

	start := time.Now()
	record, err := s.store.Insert(insertCtx, req.Submission())
	if s.metrics != nil {
		s.metrics.InsertDurationSeconds.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		s.countFailure("persisting")
		s.logger.ErrorContext(ctx, "registration insert failed",
			"error", err,
			"team", req.TeamName,
			"request_id", requestcontext.RequestID(ctx),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, "", dErrors.Wrap(err, dErrors.CodeTimeout,
				fmt.Sprintf("registration timed out after %s; it may still have been recorded", s.insertTimeout))
		}
		// The underlying failure is surfaced verbatim so the user sees
		// what the operator would see.
		return nil, "", dErrors.Wrap(err, dErrors.CodeStore, err.Error())
	}

	if s.metrics != nil {
		s.metrics.RegistrationsCreatedTotal.Inc()
	}
	s.logger.InfoContext(ctx, "registration created",
		"id", record.ID,
		"team", record.TeamName,
		"request_id", requestcontext.RequestID(ctx),
	)

	return record, BuildWhatsAppURL(s.notify.WhatsAppNumber, record), nil
}

func (s *Service) countUpload(outcome string) {
	if s.metrics != nil {
		s.metrics.ProofUploadsTotal.WithLabelValues(outcome).Inc()
	}
}

func (s *Service) countFailure(stage string) {
	if s.metrics != nil {
		s.metrics.SubmissionFailuresTotal.WithLabelValues(stage).Inc()
	}
}
