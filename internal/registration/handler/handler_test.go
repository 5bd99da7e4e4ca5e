package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"crease/internal/admission"
	"crease/internal/proofs/imagekit"
	"crease/internal/registration/models"
	dErrors "crease/pkg/domain-errors"
	"crease/pkg/platform/httputil"
)

type stubService struct {
	uploadURL string
	uploadErr error
	record    *models.Registration
	notifyURL string
	submitErr error
	submitted *models.SubmitRequest
}

func (s *stubService) UploadProof(_ context.Context, _ []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	return s.uploadURL, nil
}

func (s *stubService) Submit(_ context.Context, req *models.SubmitRequest) (*models.Registration, string, error) {
	s.submitted = req
	if s.submitErr != nil {
		return nil, "", s.submitErr
	}
	return s.record, s.notifyURL, nil
}

type stubPolicy struct {
	decision admission.Decision
	err      error
}

func (p *stubPolicy) Check(_ context.Context) (admission.Decision, error) {
	if p.err != nil {
		return admission.Decision{}, p.err
	}
	return p.decision, nil
}

type stubIssuer struct {
	cred imagekit.Credential
	err  error
}

func (i *stubIssuer) IssueCredential() (imagekit.Credential, error) {
	if i.err != nil {
		return imagekit.Credential{}, i.err
	}
	return i.cred, nil
}

type HandlerSuite struct {
	suite.Suite
	service *stubService
	policy  *stubPolicy
	issuer  *stubIssuer
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = &stubService{
		uploadURL: "https://ik.example.com/tournament-payments/payment_1.png",
		record: &models.Registration{
			ID:           "reg-1",
			TeamName:     "Chakde Blasters",
			Status:       models.StatusPending,
			RegisteredAt: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
		},
		notifyURL: "https://wa.me/919870094898?text=hello",
	}
	s.policy = &stubPolicy{decision: admission.Decision{Open: true, Remaining: 2}}
	s.issuer = &stubIssuer{cred: imagekit.Credential{Token: "tok", Expire: 1756368000, Signature: "sig"}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.service, s.policy, s.issuer, logger)
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) TestAdmissionOpen() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admission", nil))

	s.Equal(http.StatusOK, rec.Code)
	var resp AdmissionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.True(resp.Open)
	s.Equal(2, resp.Remaining)
	s.Empty(resp.Error)
}

func (s *HandlerSuite) TestAdmissionFailsClosed() {
	s.policy.err = dErrors.New(dErrors.CodePolicy, "count query failed")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admission", nil))

	s.Equal(http.StatusOK, rec.Code)
	var resp AdmissionResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.False(resp.Open, "an unavailable policy must fail closed")
	s.Equal("policy_unavailable", resp.Error)
}

func (s *HandlerSuite) TestUploadCredential() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/credential", nil))

	s.Equal(http.StatusOK, rec.Code)
	var cred imagekit.Credential
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &cred))
	s.Equal("tok", cred.Token)
	s.Equal(int64(1756368000), cred.Expire)
	s.Equal("sig", cred.Signature)
}

func (s *HandlerSuite) TestProofUpload() {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", "proof.png")
	s.Require().NoError(err)
	_, _ = part.Write([]byte("png-bytes"))
	s.Require().NoError(form.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploads/proof", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	var resp ProofUploadResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(s.service.uploadURL, resp.URL)
}

func (s *HandlerSuite) TestProofUploadMissingFile() {
	req := httptest.NewRequest(http.MethodPost, "/uploads/proof", strings.NewReader("not-a-form"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestProofUploadRemoteFailure() {
	s.service.uploadErr = dErrors.New(dErrors.CodeUpload, "upload rejected (502)")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, _ := form.CreateFormFile("file", "proof.png")
	_, _ = part.Write([]byte("png"))
	_ = form.Close()

	req := httptest.NewRequest(http.MethodPost, "/uploads/proof", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadGateway, rec.Code)
	var resp httputil.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("upload_failed", resp.Error)
}

func (s *HandlerSuite) TestSubmitCreated() {
	payload := `{
		"teamName": "Chakde Blasters",
		"leaderName": "Rohit Sharma",
		"leaderContact": "+91 98700 00000",
		"location": "Mumbai",
		"date": "2026-09-12",
		"paymentProof": "https://ik.example.com/tournament-payments/payment_1.png",
		"termsAccepted": true
	}`

	req := httptest.NewRequest(http.MethodPost, "/registrations", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusCreated, rec.Code)
	var resp models.SubmitResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("reg-1", resp.ID)
	s.Equal("pending", resp.Status)
	s.Equal(s.service.notifyURL, resp.NotificationURL)
	s.Require().NotNil(s.service.submitted)
	s.Equal("Chakde Blasters", s.service.submitted.TeamName)
}

func (s *HandlerSuite) TestSubmitValidationErrorsReachClient() {
	s.service.submitErr = dErrors.NewValidation(map[string]string{
		"termsAccepted": "You must agree to the terms",
	})

	req := httptest.NewRequest(http.MethodPost, "/registrations", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	var resp httputil.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("validation_failed", resp.Error)
	s.Equal("You must agree to the terms", resp.Fields["termsAccepted"])
}

func (s *HandlerSuite) TestSubmitMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/registrations", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Nil(s.service.submitted)
}
