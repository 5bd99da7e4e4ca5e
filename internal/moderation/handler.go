package moderation

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crease/internal/registration/models"
	dErrors "crease/pkg/domain-errors"
	"crease/pkg/platform/httputil"
	"crease/pkg/requestcontext"
)

// ReviewService defines the moderation operations used by the admin handlers.
type ReviewService interface {
	List(ctx context.Context, query string, status models.StatusFilter) (*Listing, error)
	SetStatus(ctx context.Context, id string, status models.Status) error
}

// ListResponse is the admin dashboard payload: the filtered rows plus
// whole-snapshot tallies.
type ListResponse struct {
	Registrations []models.RegistrationView `json:"registrations"`
	Counts        StatusCounts              `json:"counts"`
}

// Handler exposes the admin review endpoints.
type Handler struct {
	service ReviewService
	logger  *slog.Logger
}

// NewHandler creates the admin moderation handler.
func NewHandler(service ReviewService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the moderation routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/registrations", h.HandleList)
	r.Put("/registrations/{id}/status", h.HandleUpdateStatus)
}

// HandleList serves GET /registrations?q=&status=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status, err := models.ParseStatusFilter(r.URL.Query().Get("status"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid status filter"))
		return
	}

	listing, err := h.service.List(ctx, r.URL.Query().Get("q"), status)
	if err != nil {
		h.logger.ErrorContext(ctx, "listing registrations failed",
			slog.String("request_id", requestcontext.RequestID(ctx)),
			slog.String("error", err.Error()))
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ListResponse{
		Registrations: models.ToViews(listing.Records),
		Counts:        listing.Counts,
	})
}

// HandleUpdateStatus serves PUT /registrations/{id}/status.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id := chi.URLParam(r, "id")
	if id == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "registration id is required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.UpdateStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	status, _ := models.ParseStatus(req.Status)
	if err := h.service.SetStatus(ctx, id, status); err != nil {
		h.logger.ErrorContext(ctx, "status update failed",
			slog.String("request_id", requestID),
			slog.String("registration_id", id),
			slog.String("error", err.Error()))
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"id":     id,
		"status": req.Status,
	})
}
