package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hera_backend/database"
	"hera_backend/internal/algorithms"
	"hera_backend/internal/banking"
	"hera_backend/internal/config"
	"hera_backend/internal/handlers"
	"hera_backend/internal/jobs"
	"hera_backend/internal/models"
	"hera_backend/internal/repositories"
	"hera_backend/internal/services"
	"hera_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct{ err error }

func (r stubRunner) Start(context.Context, string, string) error { return r.err }

type testEnv struct {
	router   *gin.Engine
	analyses repositories.AnalysisRepository
}

func newTestEnv(t *testing.T, runner stubRunner) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(context.Background(), config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	analysisRepo := repositories.NewAnalysisRepository(db)
	resolver := algorithms.DefaultMerchantResolver()
	companySvc := services.NewCompanyService(analysisRepo, jobs.NewMemoryStore(time.Hour), runner)

	base := handlers.NewBaseHandler(validator.New())
	router := gin.New()
	api := router.Group("/api")
	company := handlers.NewCompanyHandler(base, companySvc)
	company.RegisterRoutes(api)
	company.RegisterAnalyzeRoutes(api)
	handlers.NewPortfolioHandler(base, services.NewPortfolioService(analysisRepo)).RegisterRoutes(api)
	handlers.NewCommunityHandler(base, services.NewCommunityService(repositories.NewCommunityRepository(db))).RegisterRoutes(api)
	handlers.NewResolveHandler(base, services.NewResolveService(nil, resolver, analysisRepo)).RegisterRoutes(api)
	handlers.NewPlaidHandler(base, services.NewPlaidService(banking.NewPlaidClient(config.PlaidConfig{}))).RegisterRoutes(api)

	return &testEnv{router: router, analyses: analysisRepo}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) saveAnalysis(t *testing.T, ticker string, score float64) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, e.analyses.SaveAnalysis(context.Background(), &models.CompanyAnalysis{
		ID:                  ticker + "-1",
		CompanyTicker:       ticker,
		CompanyName:         ticker + " Inc",
		AccountabilityScore: score,
		Summary:             "summary",
		AnalyzedAt:          now.Add(-time.Hour),
		ExpiresAt:           now.Add(time.Hour),
	}))
}

func TestCompanyHandler_GetCompany(t *testing.T) {
	env := newTestEnv(t, stubRunner{})
	env.saveAnalysis(t, "ACME", 4)

	w := env.do(t, http.MethodGet, "/api/companies/acme", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		CompanyTicker       string  `json:"company_ticker"`
		AccountabilityScore float64 `json:"accountability_score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ACME", resp.CompanyTicker)
	assert.Equal(t, 4.0, resp.AccountabilityScore)

	w = env.do(t, http.MethodGet, "/api/companies/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Not analyzed")
}

func TestCompanyHandler_TriggerAndPoll(t *testing.T) {
	env := newTestEnv(t, stubRunner{})

	for _, path := range []string{"/api/analyze/tsla", "/api/companies/analyze/tsla"} {
		w := env.do(t, http.MethodPost, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		var resp struct {
			JobID  string `json:"jobId"`
			Ticker string `json:"ticker"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "TSLA", resp.Ticker)
		assert.NotEmpty(t, resp.JobID)
	}

	w := env.do(t, http.MethodGet, "/api/analyze/TSLA/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"processing"}`, w.Body.String())
}

func TestCompanyHandler_RunnerFailureSurfacesInStatus(t *testing.T) {
	env := newTestEnv(t, stubRunner{err: errors.New("python3 not found")})

	w := env.do(t, http.MethodPost, "/api/analyze/XOM", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/analyze/XOM/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"error","error":"python3 not found"}`, w.Body.String())
}

func TestPortfolioHandler_Scan(t *testing.T) {
	env := newTestEnv(t, stubRunner{})
	env.saveAnalysis(t, "BAD", 2)
	env.saveAnalysis(t, "GOOD", 9)

	w := env.do(t, http.MethodPost, "/api/portfolio/scan", map[string]any{"tickers": []string{"bad", "good", "new"}})
	require.Equal(t, http.StatusOK, w.Code)
	var result algorithms.ScanResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Flagged)
	assert.Equal(t, 1, result.Clean)
	assert.Equal(t, 1, result.NotAnalyzed)

	w = env.do(t, http.MethodPost, "/api/portfolio/scan", map[string]any{"tickers": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/portfolio/scan", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommunityHandler_RecordAndList(t *testing.T) {
	env := newTestEnv(t, stubRunner{})

	w := env.do(t, http.MethodPost, "/api/community/action", map[string]string{
		"user_name":      "Sam",
		"action_type":    "divested",
		"company_ticker": "ACME",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/community/action", map[string]string{"user_name": "Sam"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/community/activity", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var activity []struct {
		UserName      string `json:"user_name"`
		CompanyTicker string `json:"company_ticker"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &activity))
	require.Len(t, activity, 1)
	assert.Equal(t, "Sam", activity[0].UserName)
}

func TestResolveHandler_Local(t *testing.T) {
	env := newTestEnv(t, stubRunner{})

	w := env.do(t, http.MethodPost, "/api/resolve", map[string]any{"inputs": []string{"Starbucks", "zzqq unknown shop"}})
	require.Equal(t, http.StatusOK, w.Code)
	var results []struct {
		Input  string  `json:"input"`
		Ticker *string `json:"ticker"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 2)
	require.NotNil(t, results[0].Ticker)
	assert.Equal(t, "SBUX", *results[0].Ticker)
	assert.Nil(t, results[1].Ticker)

	w = env.do(t, http.MethodPost, "/api/resolve", map[string]any{"inputs": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaidHandler_Unconfigured(t *testing.T) {
	env := newTestEnv(t, stubRunner{})

	w := env.do(t, http.MethodGet, "/api/plaid/link-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/plaid/exchange-token", map[string]string{"public_token": "public-sandbox-1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Plaid not configured")
}
