package services

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"hera_backend/internal/algorithms"
	"hera_backend/internal/config"
	"hera_backend/internal/logger"
	"hera_backend/internal/models"
	"hera_backend/internal/repositories"
	"hera_backend/internal/services/dto"
	"hera_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type ReviewService interface {
	Submit(ctx context.Context, userID, verifiedFor string, req *dto.SubmitReviewRequest) (*dto.SubmitReviewResponse, error)
	Aggregate(ctx context.Context, ticker string) *dto.ReviewAggregateResponse
}

const submitLockStripes = 64

type reviewService struct {
	reviewRepo      repositories.ReviewRepository
	cooldown        time.Duration
	maxCommentRunes int
	now             func() time.Time

	// serialises the cooldown check and insert per user and ticker
	submitLocks [submitLockStripes]sync.Mutex
}

func NewReviewService(reviewRepo repositories.ReviewRepository, cfg config.ReviewsConfig) ReviewService {
	return &reviewService{
		reviewRepo:      reviewRepo,
		cooldown:        time.Duration(cfg.CooldownDays) * 24 * time.Hour,
		maxCommentRunes: cfg.MaxCommentRunes,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a published review for the company the caller is verified
// for. One review per user and company is allowed per cooldown window.
func (s *reviewService) Submit(ctx context.Context, userID, verifiedFor string, req *dto.SubmitReviewRequest) (*dto.SubmitReviewResponse, error) {
	ticker := normalizeTicker(req.CompanyTicker)
	if ticker != normalizeTicker(verifiedFor) {
		return nil, apperrors.ErrReviewCompanyMismatch
	}

	mu := s.submitLock(userID, ticker)
	mu.Lock()
	defer mu.Unlock()

	now := s.now()
	_, err := s.reviewRepo.FindRecentReview(ctx, userID, ticker, now.Add(-s.cooldown))
	switch {
	case err == nil:
		return nil, apperrors.ErrReviewCooldown
	case !errors.Is(err, repositories.ErrReviewNotFound):
		return nil, apperrors.NewDatabaseError(err, "review")
	}

	data := req.ReviewData.ToModel()
	data.OptionalComment = truncateRunes(data.OptionalComment, s.maxCommentRunes)

	review := &models.EmployeeReview{
		ID:            uuid.NewString(),
		UserID:        userID,
		CompanyTicker: ticker,
		ReviewData:    data,
		Published:     true,
		Weight:        algorithms.TimeframeWeight(data.Timeframe),
		CreatedAt:     now,
	}
	if err := s.reviewRepo.CreateReview(ctx, review); err != nil {
		return nil, apperrors.NewDatabaseError(err, "review")
	}

	logger.CtxInfo(ctx, "review submitted", "review_id", review.ID, "ticker", ticker)
	return &dto.SubmitReviewResponse{Success: true, ReviewID: review.ID}, nil
}

func (s *reviewService) submitLock(userID, ticker string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID + "|" + ticker))
	return &s.submitLocks[h.Sum32()%submitLockStripes]
}

// Aggregate degrades to an empty result when reviews cannot be read.
func (s *reviewService) Aggregate(ctx context.Context, ticker string) *dto.ReviewAggregateResponse {
	ticker = normalizeTicker(ticker)

	reviews, err := s.reviewRepo.FindPublishedByTicker(ctx, ticker)
	if err != nil {
		logger.CtxWithError(ctx, "failed to load reviews", err, "ticker", ticker)
		reviews = nil
	}

	summary := algorithms.AggregateReviews(reviews)
	return &dto.ReviewAggregateResponse{
		CompanyTicker:            ticker,
		TotalReviews:             summary.TotalReviews,
		AggregatedData:           summary.Aggregate,
		EmployeePerspectiveScore: summary.Score,
	}
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
