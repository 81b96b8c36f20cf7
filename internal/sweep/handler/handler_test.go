package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"privsweep/internal/report/store"
	"privsweep/internal/sweep/models"
	dErrors "privsweep/pkg/domain-errors"
)

// stubService records the batches it was asked to sweep and replays a canned
// result, keeping these tests focused on HTTP concerns.
type stubService struct {
	gotAccounts []models.AccountRecord
	gotDryRun   bool
	result      *models.RunResult
	err         error
}

func (s *stubService) Sweep(_ context.Context, accounts []models.AccountRecord, dryRun bool) (*models.RunResult, error) {
	s.gotAccounts = accounts
	s.gotDryRun = dryRun
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type HandlerSuite struct {
	suite.Suite
	router  http.Handler
	service *stubService
	runs    *store.InMemoryStore
}

func (s *HandlerSuite) SetupTest() {
	s.service = &stubService{
		result: &models.RunResult{RunID: "run-1", Success: true},
	}
	s.runs = store.NewInMemoryStore()

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h, err := New(s.service, s.runs, logger)
	require.NoError(s.T(), err)

	r := chi.NewRouter()
	h.Register(r)
	s.router = r
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func TestNew(t *testing.T) {
	t.Run("requires service", func(t *testing.T) {
		_, err := New(nil, store.NewInMemoryStore(), nil)
		require.Error(t, err)
	})

	t.Run("requires run store", func(t *testing.T) {
		_, err := New(&stubService{}, nil, nil)
		require.Error(t, err)
	})
}

// =============================================================================
// POST /v1/runs
// =============================================================================

func (s *HandlerSuite) TestStartRun_JSONBody() {
	payload := startRunRequest{
		Accounts: []models.AccountRecord{
			{PrincipalName: "admin.jsmith@corp.example", SAMAccountName: "admin.jsmith"},
		},
		DryRun: true,
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/v1/runs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.True(s.T(), s.service.gotDryRun)
	require.Len(s.T(), s.service.gotAccounts, 1)
	assert.Equal(s.T(), "admin.jsmith", s.service.gotAccounts[0].SAMAccountName)

	var resp models.RunResult
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(s.T(), "run-1", resp.RunID)
}

func (s *HandlerSuite) TestStartRun_CSVBody() {
	csv := "UserPrincipalName,SAMAccountName,Enabled\n" +
		"admin.jsmith@corp.example,admin.jsmith,TRUE\n"
	req := httptest.NewRequest(http.MethodPost, "/v1/runs?dry_run=true", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.True(s.T(), s.service.gotDryRun)
	require.Len(s.T(), s.service.gotAccounts, 1)
	assert.Equal(s.T(), "admin.jsmith@corp.example", s.service.gotAccounts[0].PrincipalName)
}

func (s *HandlerSuite) TestStartRun_InvalidJSON() {
	req := httptest.NewRequest(http.MethodPost, "/v1/runs",
		bytes.NewReader([]byte("not valid json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code,
		"expected 400 for invalid JSON")
}

func (s *HandlerSuite) TestStartRun_EmptyBatch() {
	body, _ := json.Marshal(startRunRequest{})
	req := httptest.NewRequest(http.MethodPost, "/v1/runs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestStartRun_LockConflict() {
	s.service.err = dErrors.New(dErrors.CodeConflict, "a sweep is already running for tenant default")

	body, _ := json.Marshal(startRunRequest{
		Accounts: []models.AccountRecord{{PrincipalName: "a@corp.example"}},
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/runs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusConflict, rec.Code)
}

// =============================================================================
// GET /v1/runs and GET /v1/runs/{runID}
// =============================================================================

func (s *HandlerSuite) TestListRuns() {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := s.runs.Save(context.Background(), &models.RunResult{
			RunID:     fmt.Sprintf("run-%d", i),
			Success:   true,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(s.T(), err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/runs?limit=2", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	var resp struct {
		Runs []runListing `json:"runs"`
	}
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(s.T(), resp.Runs, 2)
	assert.Equal(s.T(), "run-2", resp.Runs[0].RunID, "most recent first")
}

func (s *HandlerSuite) TestListRuns_InvalidLimit() {
	req := httptest.NewRequest(http.MethodGet, "/v1/runs?limit=zero", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestGetRun() {
	err := s.runs.Save(context.Background(), &models.RunResult{
		RunID:   "run-42",
		Success: true,
		Results: []models.ResultEntry{
			{PrincipalName: "admin.jsmith@corp.example", Status: models.StatusCompleted},
		},
	})
	require.NoError(s.T(), err)

	req := httptest.NewRequest(http.MethodGet, "/v1/runs/run-42", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	var resp models.RunResult
	require.NoError(s.T(), json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(s.T(), "run-42", resp.RunID)
	require.Len(s.T(), resp.Results, 1)
}

func (s *HandlerSuite) TestGetRun_NotFound() {
	req := httptest.NewRequest(http.MethodGet, "/v1/runs/ghost", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
}

// =============================================================================
// Auth and health
// =============================================================================

func (s *HandlerSuite) TestAdminToken() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	h, err := New(s.service, s.runs, logger, WithAdminToken("sekrit"))
	require.NoError(s.T(), err)
	r := chi.NewRouter()
	h.Register(r)

	s.Run("rejects missing token", func() {
		req := httptest.NewRequest(http.MethodGet, "/v1/runs", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(s.T(), http.StatusUnauthorized, rec.Code)
	})

	s.Run("accepts matching token", func() {
		req := httptest.NewRequest(http.MethodGet, "/v1/runs", nil)
		req.Header.Set("Authorization", "Bearer sekrit")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(s.T(), http.StatusOK, rec.Code)
	})

	s.Run("health stays open", func() {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(s.T(), http.StatusOK, rec.Code)
	})
}

func (s *HandlerSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)

	assert.Equal(s.T(), http.StatusOK, rec.Code)
}
