package services

import (
	"context"
	"strings"

	"hera_backend/internal/models"
	"hera_backend/internal/repositories"
	"hera_backend/internal/services/dto"
	"hera_backend/pkg/apperrors"
)

const recentActivityLimit = 20

type CommunityService interface {
	RecordAction(ctx context.Context, req *dto.CommunityActionRequest) error
	RecentActivity(ctx context.Context) ([]dto.CommunityActivityResponse, error)
}

type communityService struct {
	repo repositories.CommunityRepository
}

func NewCommunityService(repo repositories.CommunityRepository) CommunityService {
	return &communityService{repo: repo}
}

func (s *communityService) RecordAction(ctx context.Context, req *dto.CommunityActionRequest) error {
	action := &models.UserAction{
		UserName:      strings.TrimSpace(req.UserName),
		ActionType:    strings.TrimSpace(req.ActionType),
		CompanyTicker: normalizeTicker(req.CompanyTicker),
	}
	if action.UserName == "" || action.ActionType == "" || action.CompanyTicker == "" {
		return apperrors.NewBadRequestError("user_name, action_type, and company_ticker required")
	}
	if err := s.repo.CreateAction(ctx, action); err != nil {
		return apperrors.NewDatabaseError(err, "community")
	}
	return nil
}

func (s *communityService) RecentActivity(ctx context.Context) ([]dto.CommunityActivityResponse, error) {
	actions, err := s.repo.FindRecentActions(ctx, recentActivityLimit)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err, "community")
	}
	out := make([]dto.CommunityActivityResponse, 0, len(actions))
	for _, a := range actions {
		out = append(out, dto.CommunityActivityResponse{
			ID:            a.ID,
			UserName:      a.UserName,
			ActionType:    a.ActionType,
			CompanyTicker: a.CompanyTicker,
			CreatedAt:     a.CreatedAt,
		})
	}
	return out, nil
}
