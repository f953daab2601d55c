package services

import (
	"context"

	"hera_backend/internal/algorithms"
	"hera_backend/internal/repositories"
	"hera_backend/pkg/apperrors"
)

type PortfolioService interface {
	Scan(ctx context.Context, tickers []string) (*algorithms.ScanResult, error)
}

type portfolioService struct {
	analysisRepo repositories.AnalysisRepository
}

func NewPortfolioService(analysisRepo repositories.AnalysisRepository) PortfolioService {
	return &portfolioService{analysisRepo: analysisRepo}
}

// Scan classifies an explicit ticker list against the latest analyses.
func (s *portfolioService) Scan(ctx context.Context, tickers []string) (*algorithms.ScanResult, error) {
	normalized := algorithms.NormalizeTickers(tickers)
	if len(normalized) == 0 {
		return nil, apperrors.NewBadRequestError("tickers required")
	}

	analyses, err := s.analysisRepo.FindLatestByTickers(ctx, normalized)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err, "portfolio")
	}

	result := algorithms.ScanPortfolio(normalized, analyses)
	return &result, nil
}
