// Package metrics provides Prometheus metrics for the registration pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the registration pipeline metrics.
type Metrics struct {
	RegistrationsCreatedTotal prometheus.Counter     // Successfully persisted registrations
	SubmissionFailuresTotal   *prometheus.CounterVec // Failed submission attempts by stage
	ProofUploadsTotal         *prometheus.CounterVec // Proof upload attempts by outcome
	InsertDurationSeconds     prometheus.Histogram   // Store insert latency, bucketed up to the 15s timeout
}

// New creates a new Metrics instance with all metrics registered.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "crease_registrations_created_total",
			Help: "Total number of registrations persisted",
		}),

		SubmissionFailuresTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crease_submission_failures_total",
			Help: "Total number of failed submission attempts by stage",
		}, []string{"stage"}),

		ProofUploadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "crease_proof_uploads_total",
			Help: "Total number of payment-proof upload attempts by outcome",
		}, []string{"outcome"}),

		InsertDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "crease_registration_insert_duration_seconds",
			Help:    "Duration of registration store inserts",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15},
		}),
	}
}
