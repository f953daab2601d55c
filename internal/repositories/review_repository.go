package repositories

import (
	"context"
	"errors"
	"time"

	"hera_backend/internal/models"

	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository stores employee reviews. Reviews are never updated.
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.EmployeeReview) error
	// FindRecentReview returns the newest review by userID for ticker created
	// at or after since, or ErrReviewNotFound.
	FindRecentReview(ctx context.Context, userID, ticker string, since time.Time) (*models.EmployeeReview, error)
	FindPublishedByTicker(ctx context.Context, ticker string) ([]models.EmployeeReview, error)
}

type ReviewRepositoryImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &ReviewRepositoryImpl{db: db}
}

func (r *ReviewRepositoryImpl) CreateReview(ctx context.Context, review *models.EmployeeReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *ReviewRepositoryImpl) FindRecentReview(ctx context.Context, userID, ticker string, since time.Time) (*models.EmployeeReview, error) {
	var review models.EmployeeReview
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND company_ticker = ? AND created_at >= ?", userID, ticker, since).
		Order("created_at DESC").
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindPublishedByTicker(ctx context.Context, ticker string) ([]models.EmployeeReview, error) {
	var reviews []models.EmployeeReview
	err := r.db.WithContext(ctx).
		Where("company_ticker = ? AND published = ?", ticker, true).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
