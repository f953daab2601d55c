package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hera_backend/internal/jobs"
	"hera_backend/internal/models"
	"hera_backend/internal/repositories"
	"hera_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompanyFixture(t *testing.T) (CompanyService, repositories.AnalysisRepository, *jobs.MemoryStore, *fakeRunner) {
	t.Helper()
	repo := repositories.NewAnalysisRepository(setupDB(t))
	store := jobs.NewMemoryStore(time.Hour)
	runner := &fakeRunner{}
	return NewCompanyService(repo, store, runner), repo, store, runner
}

func TestCompanyServiceGetCompany(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newCompanyFixture(t)

	_, err := svc.GetCompany(ctx, "AAPL")
	assert.ErrorIs(t, err, apperrors.ErrAnalysisNotFound)

	require.NoError(t, repo.SaveCompany(ctx, &models.Company{
		Ticker:    "AAPL",
		Name:      "Apple Inc.",
		Industry:  ptr("Technology"),
		MarketCap: ptr(3e12),
	}))
	saveAnalysis(t, repo, "AAPL", 6.5, "medium")

	resp, err := svc.GetCompany(ctx, " aapl ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", resp.CompanyTicker)
	assert.Equal(t, 6.5, resp.AccountabilityScore)
	assert.Equal(t, Disclaimer, resp.Disclaimer)
	require.NotNil(t, resp.Industry)
	assert.Equal(t, "Technology", *resp.Industry)
	assert.JSONEq(t, `{"severity":"medium","response_quality":0,"transparency":0,"speed":"","current_status":"","pattern_analysis":""}`, string(resp.ScoreBreakdown))
}

func TestCompanyServiceGetCompanyWithoutReferenceData(t *testing.T) {
	ctx := context.Background()
	svc, repo, _, _ := newCompanyFixture(t)
	saveAnalysis(t, repo, "TSLA", 3, "")

	resp, err := svc.GetCompany(ctx, "TSLA")
	require.NoError(t, err)
	assert.Nil(t, resp.Industry)
	assert.Nil(t, resp.MarketCap)
	assert.Nil(t, resp.Issues)
}

func TestCompanyServiceTriggerAnalysis(t *testing.T) {
	ctx := context.Background()
	svc, _, _, runner := newCompanyFixture(t)

	resp, err := svc.TriggerAnalysis(ctx, "nvda")
	require.NoError(t, err)
	assert.Equal(t, "NVDA", resp.Ticker)
	assert.True(t, strings.HasPrefix(resp.JobID, "NVDA-"))
	assert.Equal(t, []string{"NVDA"}, runner.calls())

	status := svc.GetAnalysisStatus(ctx, "NVDA")
	assert.Equal(t, "processing", status.Status)
	assert.Nil(t, status.Result)
	assert.Empty(t, status.Error)
}

func TestCompanyServiceTriggerRunnerFailure(t *testing.T) {
	ctx := context.Background()
	svc, _, _, runner := newCompanyFixture(t)
	runner.err = errors.New("python3 not found")

	resp, err := svc.TriggerAnalysis(ctx, "UBER")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.JobID)

	status := svc.GetAnalysisStatus(ctx, "UBER")
	assert.Equal(t, "error", status.Status)
	assert.Equal(t, "python3 not found", status.Error)
}

func TestCompanyServiceStatus(t *testing.T) {
	ctx := context.Background()
	svc, repo, store, _ := newCompanyFixture(t)
	now := time.Now().UTC()

	t.Run("unknown ticker is processing", func(t *testing.T) {
		assert.Equal(t, "processing", svc.GetAnalysisStatus(ctx, "ZZZZ").Status)
	})

	t.Run("error without message gets a fallback", func(t *testing.T) {
		require.NoError(t, store.Start(ctx, "ATVI", "ATVI-1", now))
		require.NoError(t, store.Finish(ctx, "ATVI", "ATVI-1", models.JobStatusError, ""))

		status := svc.GetAnalysisStatus(ctx, "ATVI")
		assert.Equal(t, "error", status.Status)
		assert.Equal(t, "Analysis failed", status.Error)
	})

	t.Run("stored analysis wins", func(t *testing.T) {
		require.NoError(t, store.Start(ctx, "MSFT", "MSFT-1", now))
		require.NoError(t, store.Finish(ctx, "MSFT", "MSFT-1", models.JobStatusComplete, ""))
		saveAnalysis(t, repo, "MSFT", 8, "low")

		status := svc.GetAnalysisStatus(ctx, "msft")
		assert.Equal(t, "complete", status.Status)
		require.NotNil(t, status.Result)
		assert.Equal(t, "MSFT", status.Result.CompanyTicker)
	})
}

func TestCompanyServiceAlternativesNeverFail(t *testing.T) {
	svc, _, _, _ := newCompanyFixture(t)

	alts := svc.GetAlternatives(context.Background(), "NOPE")
	assert.NotNil(t, alts)
	assert.Empty(t, alts)
}

func TestPortfolioServiceScan(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewAnalysisRepository(setupDB(t))
	svc := NewPortfolioService(repo)

	_, err := svc.Scan(ctx, []string{" ", ""})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)

	saveAnalysis(t, repo, "AAPL", 3, "high")
	saveAnalysis(t, repo, "MSFT", 9, "low")

	res, err := svc.Scan(ctx, []string{"aapl", "MSFT", "AAPL", "XYZ"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Flagged)
	assert.Equal(t, 1, res.Clean)
	assert.Equal(t, 1, res.NotAnalyzed)
}
