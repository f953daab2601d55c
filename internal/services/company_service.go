package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"hera_backend/internal/jobs"
	"hera_backend/internal/logger"
	"hera_backend/internal/models"
	"hera_backend/internal/repositories"
	"hera_backend/internal/services/dto"
	"hera_backend/internal/workers"
	"hera_backend/pkg/apperrors"

	"golang.org/x/sync/singleflight"
)

// Disclaimer accompanies every analysis served to clients.
const Disclaimer = "This analysis is AI-generated from public sources including SEC filings, court records, news articles, and EEOC press releases. It is not legal or financial advice. Data may be incomplete or contain inaccuracies. Always verify information independently before making investment decisions."

const (
	maxAlternatives = 5

	statusFallbackMessage = "Analysis failed"
	statusUnreadMessage   = "Analysis completed but failed to read results"
)

type CompanyService interface {
	GetCompany(ctx context.Context, ticker string) (*dto.CompanyAnalysisResponse, error)
	TriggerAnalysis(ctx context.Context, ticker string) (*dto.AnalyzeResponse, error)
	GetAnalysisStatus(ctx context.Context, ticker string) *dto.AnalysisStatusResponse
	GetAlternatives(ctx context.Context, ticker string) []repositories.AlternativeCompany
}

type companyService struct {
	analysisRepo repositories.AnalysisRepository
	jobs         jobs.Store
	runner       workers.AnalysisRunner
	triggers     singleflight.Group
	now          func() time.Time
}

func NewCompanyService(
	analysisRepo repositories.AnalysisRepository,
	jobStore jobs.Store,
	runner workers.AnalysisRunner,
) CompanyService {
	return &companyService{
		analysisRepo: analysisRepo,
		jobs:         jobStore,
		runner:       runner,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

func (s *companyService) GetCompany(ctx context.Context, ticker string) (*dto.CompanyAnalysisResponse, error) {
	ticker = normalizeTicker(ticker)

	analysis, err := s.analysisRepo.FindLatestByTicker(ctx, ticker)
	if err != nil {
		if errors.Is(err, repositories.ErrAnalysisNotFound) {
			return nil, apperrors.ErrAnalysisNotFound
		}
		return nil, apperrors.NewDatabaseError(err, "analysis")
	}
	return s.formatAnalysis(ctx, analysis), nil
}

// formatAnalysis joins the company's reference data. A missing company row
// only leaves industry and market cap empty.
func (s *companyService) formatAnalysis(ctx context.Context, a *models.CompanyAnalysis) *dto.CompanyAnalysisResponse {
	resp := &dto.CompanyAnalysisResponse{
		ID:                  a.ID,
		CompanyTicker:       a.CompanyTicker,
		CompanyName:         a.CompanyName,
		AccountabilityScore: a.AccountabilityScore,
		Summary:             a.Summary,
		Issues:              rawJSON(a.Issues),
		Response:            rawJSON(a.Response),
		Timeline:            rawJSON(a.Timeline),
		ScoreBreakdown:      rawJSON(a.ScoreBreakdown),
		Sources:             rawJSON(a.Sources),
		DocumentCount:       a.DocumentCount,
		ModelUsed:           a.ModelUsed,
		AnalyzedAt:          a.AnalyzedAt,
		ExpiresAt:           a.ExpiresAt,
		Disclaimer:          Disclaimer,
	}

	company, err := s.analysisRepo.FindCompany(ctx, a.CompanyTicker)
	switch {
	case err == nil:
		resp.Industry = company.Industry
		resp.MarketCap = company.MarketCap
	case !errors.Is(err, repositories.ErrCompanyNotFound):
		logger.CtxWithError(ctx, "failed to load company reference data", err, "ticker", a.CompanyTicker)
	}
	return resp
}

func rawJSON(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}

// TriggerAnalysis records a processing job and hands it to the runner.
// Concurrent triggers for one ticker share a single job.
func (s *companyService) TriggerAnalysis(ctx context.Context, ticker string) (*dto.AnalyzeResponse, error) {
	ticker = normalizeTicker(ticker)

	v, err, _ := s.triggers.Do(ticker, func() (interface{}, error) {
		jobID := fmt.Sprintf("%s-%d", ticker, s.now().UnixMilli())
		if err := s.jobs.Start(ctx, ticker, jobID, s.now()); err != nil {
			return nil, apperrors.NewExternalServiceError(err, "analysis", "Failed to start analysis")
		}

		if err := s.runner.Start(ctx, ticker, jobID); err != nil {
			logger.CtxWithError(ctx, "analysis runner failed to start", err, "ticker", ticker, "job_id", jobID)
			if ferr := s.jobs.Finish(ctx, ticker, jobID, models.JobStatusError, err.Error()); ferr != nil {
				logger.CtxWithError(ctx, "failed to record job error", ferr, "ticker", ticker)
			}
		}
		return jobID, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.AnalyzeResponse{JobID: v.(string), Ticker: ticker}, nil
}

// GetAnalysisStatus never fails: a stored analysis wins, then the job
// store, and anything else reads as still processing.
func (s *companyService) GetAnalysisStatus(ctx context.Context, ticker string) *dto.AnalysisStatusResponse {
	ticker = normalizeTicker(ticker)

	analysis, err := s.analysisRepo.FindLatestByTicker(ctx, ticker)
	if err == nil {
		return &dto.AnalysisStatusResponse{
			Status: string(models.JobStatusComplete),
			Result: s.formatAnalysis(ctx, analysis),
		}
	}

	readFailed := !errors.Is(err, repositories.ErrAnalysisNotFound)
	if readFailed {
		logger.CtxWithError(ctx, "failed to read analysis for status", err, "ticker", ticker)
	}

	job, jobErr := s.jobs.Get(ctx, ticker)
	if jobErr != nil {
		logger.CtxWithError(ctx, "failed to read job status", jobErr, "ticker", ticker)
	}

	switch {
	case job != nil && job.Status == models.JobStatusError:
		msg := job.Error
		if msg == "" {
			msg = statusFallbackMessage
		}
		return &dto.AnalysisStatusResponse{Status: string(models.JobStatusError), Error: msg}
	case readFailed && job != nil && job.Status == models.JobStatusComplete:
		return &dto.AnalysisStatusResponse{Status: string(models.JobStatusError), Error: statusUnreadMessage}
	default:
		return &dto.AnalysisStatusResponse{Status: string(models.JobStatusProcessing)}
	}
}

func (s *companyService) GetAlternatives(ctx context.Context, ticker string) []repositories.AlternativeCompany {
	alts, err := s.analysisRepo.FindAlternatives(ctx, normalizeTicker(ticker), maxAlternatives)
	if err != nil {
		logger.CtxWithError(ctx, "failed to load alternatives", err, "ticker", ticker)
		return []repositories.AlternativeCompany{}
	}
	return alts
}
