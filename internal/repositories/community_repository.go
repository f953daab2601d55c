package repositories

import (
	"context"

	"hera_backend/internal/models"

	"gorm.io/gorm"
)

type CommunityRepository interface {
	CreateAction(ctx context.Context, action *models.UserAction) error
	FindRecentActions(ctx context.Context, limit int) ([]models.UserAction, error)
}

type CommunityRepositoryImpl struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) CommunityRepository {
	return &CommunityRepositoryImpl{db: db}
}

func (r *CommunityRepositoryImpl) CreateAction(ctx context.Context, action *models.UserAction) error {
	return r.db.WithContext(ctx).Create(action).Error
}

func (r *CommunityRepositoryImpl) FindRecentActions(ctx context.Context, limit int) ([]models.UserAction, error) {
	actions := []models.UserAction{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&actions).Error
	return actions, err
}
