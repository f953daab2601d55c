package repositories

import (
	"context"
	"errors"
	"time"

	"hera_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrAnalysisNotFound = errors.New("analysis not found")
	ErrCompanyNotFound  = errors.New("company not found")
)

const (
	alternativeMinScore = 7
	alternativeCapLow   = 0.3
	alternativeCapHigh  = 3.0
	defaultMaxMarketCap = 1e15
)

// AlternativeCompany is a better-scoring peer in the same industry.
type AlternativeCompany struct {
	Ticker    string   `json:"ticker"`
	Name      string   `json:"name"`
	Score     float64  `json:"score"`
	Summary   string   `json:"summary"`
	Industry  *string  `json:"industry"`
	MarketCap *float64 `json:"market_cap"`
}

// AnalysisRepository reads accountability analyses produced by the external
// pipeline. Only rows whose expires_at is in the future are visible.
type AnalysisRepository interface {
	FindLatestByTicker(ctx context.Context, ticker string) (*models.CompanyAnalysis, error)
	FindLatestByTickers(ctx context.Context, tickers []string) (map[string]*models.CompanyAnalysis, error)
	FindCompany(ctx context.Context, ticker string) (*models.Company, error)
	FindAlternatives(ctx context.Context, ticker string, limit int) ([]AlternativeCompany, error)

	SaveAnalysis(ctx context.Context, analysis *models.CompanyAnalysis) error
	SaveCompany(ctx context.Context, company *models.Company) error
}

type AnalysisRepositoryImpl struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &AnalysisRepositoryImpl{db: db, now: utcNow}
}

func (r *AnalysisRepositoryImpl) FindLatestByTicker(ctx context.Context, ticker string) (*models.CompanyAnalysis, error) {
	var analysis models.CompanyAnalysis
	err := r.db.WithContext(ctx).
		Where("company_ticker = ? AND expires_at > ?", ticker, r.now()).
		Order("analyzed_at DESC").
		First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return &analysis, nil
}

// FindLatestByTickers returns at most one row per ticker, the most recent.
// Tickers without a live analysis are absent from the map.
func (r *AnalysisRepositoryImpl) FindLatestByTickers(ctx context.Context, tickers []string) (map[string]*models.CompanyAnalysis, error) {
	out := make(map[string]*models.CompanyAnalysis, len(tickers))
	if len(tickers) == 0 {
		return out, nil
	}

	var rows []models.CompanyAnalysis
	err := r.db.WithContext(ctx).
		Where("company_ticker IN ? AND expires_at > ?", tickers, r.now()).
		Order("analyzed_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if _, ok := out[rows[i].CompanyTicker]; !ok {
			out[rows[i].CompanyTicker] = &rows[i]
		}
	}
	return out, nil
}

func (r *AnalysisRepositoryImpl) FindCompany(ctx context.Context, ticker string) (*models.Company, error) {
	var company models.Company
	err := r.db.WithContext(ctx).First(&company, "ticker = ?", ticker).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindAlternatives lists analyzed peers of ticker scoring at least 7 with a
// market cap within [0.3x, 3x] of the target's (or unknown). A company without an
// industry has no alternatives.
func (r *AnalysisRepositoryImpl) FindAlternatives(ctx context.Context, ticker string, limit int) ([]AlternativeCompany, error) {
	company, err := r.FindCompany(ctx, ticker)
	if err != nil {
		if errors.Is(err, ErrCompanyNotFound) {
			return []AlternativeCompany{}, nil
		}
		return nil, err
	}
	if company.Industry == nil || *company.Industry == "" {
		return []AlternativeCompany{}, nil
	}

	minCap, maxCap := 0.0, defaultMaxMarketCap*alternativeCapHigh
	if company.MarketCap != nil {
		minCap = *company.MarketCap * alternativeCapLow
		maxCap = *company.MarketCap * alternativeCapHigh
	}

	var rows []AlternativeCompany
	err = r.db.WithContext(ctx).
		Table("company_analyses AS a").
		Select("a.company_ticker AS ticker, a.company_name AS name, a.accountability_score AS score, a.summary, c.industry, c.market_cap").
		Joins("JOIN companies c ON c.ticker = a.company_ticker").
		Where("c.industry = ? AND a.company_ticker <> ?", *company.Industry, ticker).
		Where("a.accountability_score >= ? AND a.expires_at > ?", alternativeMinScore, r.now()).
		Where("(c.market_cap IS NULL OR (c.market_cap >= ? AND c.market_cap <= ?))", minCap, maxCap).
		Order("a.accountability_score DESC, a.analyzed_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	out := make([]AlternativeCompany, 0, limit)
	for _, row := range rows {
		if seen[row.Ticker] {
			continue
		}
		seen[row.Ticker] = true
		out = append(out, row)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *AnalysisRepositoryImpl) SaveAnalysis(ctx context.Context, analysis *models.CompanyAnalysis) error {
	return r.db.WithContext(ctx).Save(analysis).Error
}

func (r *AnalysisRepositoryImpl) SaveCompany(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func utcNow() time.Time {
	return time.Now().UTC()
}
