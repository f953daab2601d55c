package services

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"hera_backend/internal/algorithms"
	"hera_backend/internal/logger"
	"hera_backend/internal/repositories"
	"hera_backend/internal/services/dto"
	"hera_backend/internal/workers"
	"hera_backend/pkg/apperrors"
)

const (
	maxResolveInputs = 20
	maxTickerLikeLen = 5
)

// ExternalResolver resolves names to tickers outside the process.
type ExternalResolver interface {
	Resolve(ctx context.Context, inputs []string) ([]workers.ResolvedInput, error)
}

type ResolveService interface {
	Resolve(ctx context.Context, inputs []string) ([]dto.ResolveResult, error)
}

type resolveService struct {
	external     ExternalResolver
	resolver     *algorithms.MerchantResolver
	analysisRepo repositories.AnalysisRepository
}

// NewResolveService uses the external resolver when one is given and the
// built-in merchant table otherwise.
func NewResolveService(
	external ExternalResolver,
	resolver *algorithms.MerchantResolver,
	analysisRepo repositories.AnalysisRepository,
) ResolveService {
	return &resolveService{external: external, resolver: resolver, analysisRepo: analysisRepo}
}

func (s *resolveService) Resolve(ctx context.Context, inputs []string) ([]dto.ResolveResult, error) {
	if len(inputs) == 0 {
		return nil, apperrors.NewBadRequestError("inputs required")
	}
	if len(inputs) > maxResolveInputs {
		inputs = inputs[:maxResolveInputs]
	}

	if s.external != nil {
		resolved, err := s.external.Resolve(ctx, inputs)
		if err != nil {
			return nil, apperrors.ErrResolutionFailed.WithError(err)
		}
		out := make([]dto.ResolveResult, 0, len(resolved))
		for _, r := range resolved {
			out = append(out, dto.ResolveResult{Input: r.Input, Ticker: r.Ticker, CompanyName: r.CompanyName})
		}
		return out, nil
	}

	out := make([]dto.ResolveResult, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, s.resolveLocal(ctx, in))
	}
	return out, nil
}

func (s *resolveService) resolveLocal(ctx context.Context, input string) dto.ResolveResult {
	result := dto.ResolveResult{Input: input}

	var ticker string
	var ok bool
	if candidate := normalizeTicker(input); tickerLike(candidate) && s.resolver.KnownTicker(candidate) {
		ticker, ok = candidate, true
	} else {
		ticker, ok = s.resolver.Resolve(input)
	}
	if !ok {
		return result
	}
	result.Ticker = &ticker

	company, err := s.analysisRepo.FindCompany(ctx, ticker)
	switch {
	case err == nil:
		result.CompanyName = &company.Name
	case !errors.Is(err, repositories.ErrCompanyNotFound):
		logger.CtxWithError(ctx, "failed to look up company name", err, "ticker", ticker)
	}
	return result
}

func tickerLike(s string) bool {
	if s == "" || len(s) > maxTickerLikeLen {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) < 0
}
