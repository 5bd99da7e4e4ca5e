// Package admission implements the daily registration cap check. The check is
// advisory: it is not transactional with inserts, so two registrants passing
// the check concurrently can both register. It gates UX, not the store.
package admission

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"crease/internal/platform/config"
	"crease/internal/registration/models"
	dErrors "crease/pkg/domain-errors"
	"crease/pkg/requestcontext"
)

var admissionChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "crease_admission_checks_total",
	Help: "Total number of daily-cap admission checks by result",
}, []string{"result"})

// Source supplies the registration snapshot the policy counts against.
type Source interface {
	ListAll(ctx context.Context) ([]*models.Registration, error)
}

// Decision is the outcome of an admission check.
type Decision struct {
	Open      bool
	Remaining int
}

// Policy computes whether new registrations are currently allowed.
type Policy struct {
	source   Source
	dailyCap int
	loc      *time.Location
	group    singleflight.Group
}

// New builds a Policy for the configured cap and reference timezone.
func New(source Source, cfg config.Admission) (*Policy, error) {
	if source == nil {
		return nil, fmt.Errorf("admission source is required")
	}
	if cfg.DailyCap <= 0 {
		return nil, fmt.Errorf("daily cap must be positive, got %d", cfg.DailyCap)
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load admission timezone %q: %w", cfg.Timezone, err)
	}
	return &Policy{source: source, dailyCap: cfg.DailyCap, loc: loc}, nil
}

// Check counts today's registrations against the daily cap.
// Concurrent checks for the same calendar day are collapsed into a single
// store read; the count is still racy with respect to concurrent inserts.
func (p *Policy) Check(ctx context.Context) (Decision, error) {
	now := requestcontext.Now(ctx).In(p.loc)
	key := "daily-count:" + now.Format("2006-01-02")

	v, err, _ := p.group.Do(key, func() (any, error) {
		return p.countDay(ctx, now)
	})
	if err != nil {
		admissionChecksTotal.WithLabelValues("error").Inc()
		return Decision{}, dErrors.Wrap(err, dErrors.CodePolicy, "admission check failed")
	}

	count := v.(int)
	decision := Decision{Open: count < p.dailyCap}
	if decision.Open {
		decision.Remaining = p.dailyCap - count
		admissionChecksTotal.WithLabelValues("open").Inc()
	} else {
		admissionChecksTotal.WithLabelValues("closed").Inc()
	}
	return decision, nil
}

// IsOpen is a convenience wrapper over Check.
func (p *Policy) IsOpen(ctx context.Context) (bool, error) {
	decision, err := p.Check(ctx)
	if err != nil {
		return false, err
	}
	return decision.Open, nil
}

func (p *Policy) countDay(ctx context.Context, day time.Time) (int, error) {
	records, err := p.source.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("count daily registrations: %w", err)
	}

	y, m, d := day.Date()
	count := 0
	for _, r := range records {
		ry, rm, rd := r.RegisteredAt.In(p.loc).Date()
		if ry == y && rm == m && rd == d {
			count++
		}
	}
	return count, nil
}
