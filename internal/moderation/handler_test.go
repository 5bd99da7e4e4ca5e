package moderation

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"crease/internal/registration/models"
	dErrors "crease/pkg/domain-errors"
	"crease/pkg/platform/httputil"
)

type stubReview struct {
	listing *Listing
	listErr error
	setErr  error

	listedQuery  string
	listedFilter models.StatusFilter
	setID        string
	setStatus    models.Status
}

func (s *stubReview) List(_ context.Context, query string, status models.StatusFilter) (*Listing, error) {
	s.listedQuery = query
	s.listedFilter = status
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.listing, nil
}

func (s *stubReview) SetStatus(_ context.Context, id string, status models.Status) error {
	s.setID = id
	s.setStatus = status
	return s.setErr
}

type HandlerSuite struct {
	suite.Suite
	service *stubReview
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.service = &stubReview{
		listing: &Listing{
			Records: []*models.Registration{{
				ID:           "reg-1",
				TeamName:     "Thunder Strikers",
				Status:       models.StatusPending,
				RegisteredAt: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
			}},
			Counts: StatusCounts{Total: 1, Pending: 1},
		},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(s.service, logger)
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) TestListReturnsRecordsAndCounts() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registrations?q=thunder&status=pending", nil))

	s.Equal(http.StatusOK, rec.Code)

	var resp ListResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Require().Len(resp.Registrations, 1)
	s.Equal("reg-1", resp.Registrations[0].ID)
	s.Equal(StatusCounts{Total: 1, Pending: 1}, resp.Counts)

	s.Equal("thunder", s.service.listedQuery)
	s.False(s.service.listedFilter.Matches(models.StatusVerified))
	s.True(s.service.listedFilter.Matches(models.StatusPending))
}

func (s *HandlerSuite) TestListDefaultsToAllStatuses() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registrations", nil))

	s.Equal(http.StatusOK, rec.Code)
	s.True(s.service.listedFilter.Matches(models.StatusPending))
	s.True(s.service.listedFilter.Matches(models.StatusRejected))
}

func (s *HandlerSuite) TestListRejectsUnknownStatusFilter() {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registrations?status=bogus", nil))

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestListStoreFailure() {
	s.service.listErr = dErrors.New(dErrors.CodeStore, "listing registrations failed")

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/registrations", nil))

	s.Equal(http.StatusBadGateway, rec.Code)

	var resp httputil.ErrorResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal(string(dErrors.CodeStore), resp.Error)
}

func (s *HandlerSuite) TestUpdateStatusApplied() {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/registrations/reg-1/status", strings.NewReader(`{"status":"verified"}`))
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("reg-1", s.service.setID)
	s.Equal(models.StatusVerified, s.service.setStatus)

	var resp map[string]string
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&resp))
	s.Equal("verified", resp["status"])
}

func (s *HandlerSuite) TestUpdateStatusRejectsUnknownStatus() {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/registrations/reg-1/status", strings.NewReader(`{"status":"approved"}`))
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Empty(s.service.setID)
}

func (s *HandlerSuite) TestUpdateStatusMalformedBody() {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/registrations/reg-1/status", strings.NewReader("{"))
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestUpdateStatusNotFound() {
	s.service.setErr = dErrors.New(dErrors.CodeNotFound, "registration not found")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/registrations/missing/status", strings.NewReader(`{"status":"rejected"}`))
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusNotFound, rec.Code)
}
