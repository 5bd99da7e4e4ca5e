// Package http assembles the service router: public registration routes,
// token-guarded admin routes, and operational endpoints.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crease/internal/admin"
	"crease/internal/moderation"
	"crease/internal/platform/health"
	registration "crease/internal/registration/handler"
	"crease/pkg/platform/middleware/request"
)

const (
	// maxJSONBodyBytes bounds JSON request bodies.
	maxJSONBodyBytes = 64 << 10

	// maxUploadBodyBytes clears a 5MB proof image plus multipart framing.
	maxUploadBodyBytes = 6 << 20
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Registration *registration.Handler
	Moderation   *moderation.Handler
	AdminAuth    *admin.Handler
	AdminAuthSvc *admin.Service
	Health       *health.Handler
}

// NewRouter builds the chi router with the standard middleware chain.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(logger))
	r.Use(request.Latency)
	r.Use(request.Timeout(30 * time.Second))

	// The proof upload route carries a multipart image; everything else is
	// small JSON. The global cap clears the upload, JSON routes get a tight one.
	r.Use(request.BodyLimit(maxUploadBodyBytes))

	r.Route("/api/v1", func(r chi.Router) {
		h.Registration.Register(r)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(request.BodyLimit(maxJSONBodyBytes))
		h.AdminAuth.Register(r)

		r.Group(func(r chi.Router) {
			r.Use(h.AdminAuthSvc.RequireSession)
			h.Moderation.Register(r)
		})
	})

	h.Health.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
