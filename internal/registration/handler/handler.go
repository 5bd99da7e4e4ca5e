package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crease/internal/admission"
	"crease/internal/proofs/imagekit"
	"crease/internal/registration/models"
	dErrors "crease/pkg/domain-errors"
	"crease/pkg/platform/httputil"
	"crease/pkg/requestcontext"
)

// maxProofBytes caps proof uploads at the size advertised on the form.
const maxProofBytes = 5 << 20

// SubmissionService defines the workflow operations used by the public handlers.
type SubmissionService interface {
	UploadProof(ctx context.Context, fileBytes []byte) (string, error)
	Submit(ctx context.Context, req *models.SubmitRequest) (*models.Registration, string, error)
}

// AdmissionPolicy reports whether new registrations are currently allowed.
type AdmissionPolicy interface {
	Check(ctx context.Context) (admission.Decision, error)
}

// CredentialIssuer mints signed upload credentials for direct-to-CDN uploads.
type CredentialIssuer interface {
	IssueCredential() (imagekit.Credential, error)
}

// Handler exposes the public registration endpoints.
type Handler struct {
	service     SubmissionService
	policy      AdmissionPolicy
	credentials CredentialIssuer
	logger      *slog.Logger
}

// New creates the public registration handler.
func New(service SubmissionService, policy AdmissionPolicy, credentials CredentialIssuer, logger *slog.Logger) *Handler {
	return &Handler{
		service:     service,
		policy:      policy,
		credentials: credentials,
		logger:      logger,
	}
}

// Register mounts the public routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admission", h.HandleAdmission)
	r.Get("/uploads/credential", h.HandleUploadCredential)
	r.Post("/uploads/proof", h.HandleProofUpload)
	r.Post("/registrations", h.HandleSubmit)
}

// AdmissionResponse reports the daily-cap state to the form.
type AdmissionResponse struct {
	Open      bool   `json:"open"`
	Remaining int    `json:"remaining"`
	Error     string `json:"error,omitempty"`
}

// HandleAdmission handles GET /admission. The check is advisory; when it
// cannot complete the response fails closed so the form blocks and offers a
// retry rather than inviting a submission that may be over cap.
func (h *Handler) HandleAdmission(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	decision, err := h.policy.Check(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "admission check unavailable",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteJSON(w, http.StatusOK, AdmissionResponse{
			Open:  false,
			Error: string(dErrors.CodePolicy),
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, AdmissionResponse{
		Open:      decision.Open,
		Remaining: decision.Remaining,
	})
}

// HandleUploadCredential handles GET /uploads/credential. Any caller can mint
// a credential; there is no auth check here by design.
func (h *Handler) HandleUploadCredential(w http.ResponseWriter, r *http.Request) {
	cred, err := h.credentials.IssueCredential()
	if err != nil {
		h.logger.ErrorContext(r.Context(), "credential issuance failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, cred)
}

// ProofUploadResponse carries the durable URL for an uploaded proof image.
type ProofUploadResponse struct {
	URL string `json:"url"`
}

// HandleProofUpload handles POST /uploads/proof (multipart, field "file").
func (h *Handler) HandleProofUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxProofBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "proof image file is required"))
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "proof image exceeds 5MB"))
			return
		}
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "read proof image"))
		return
	}

	url, err := h.service.UploadProof(ctx, fileBytes)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ProofUploadResponse{URL: url})
}

// HandleSubmit handles POST /registrations.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeJSON[models.SubmitRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	record, notifyURL, err := h.service.Submit(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	view := models.ToView(record)
	httputil.WriteJSON(w, http.StatusCreated, models.SubmitResponse{
		ID:              view.ID,
		Status:          view.Status,
		RegisteredAt:    view.RegisteredAt,
		NotificationURL: notifyURL,
	})
}
