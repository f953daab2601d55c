package services

import (
	"context"
	"strconv"
	"time"

	"hera_backend/internal/banking"
	"hera_backend/internal/logger"
	"hera_backend/internal/services/dto"
	"hera_backend/pkg/apperrors"
)

// PlaidAPI is the part of the Plaid client used for account linking.
type PlaidAPI interface {
	Configured() bool
	CreateLinkToken(ctx context.Context, clientUserID string) (*banking.LinkToken, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (*banking.TokenExchange, error)
}

type PlaidService interface {
	LinkToken(ctx context.Context) (*dto.LinkTokenResponse, error)
	ExchangeToken(ctx context.Context, req *dto.ExchangeTokenRequest) (*dto.ExchangeTokenResponse, error)
}

type plaidService struct {
	plaid PlaidAPI
	now   func() time.Time
}

func NewPlaidService(plaid PlaidAPI) PlaidService {
	return &plaidService{plaid: plaid, now: time.Now}
}

// LinkToken returns a nil token, not an error, when Plaid is not set up so
// the client can hide the linking flow.
func (s *plaidService) LinkToken(ctx context.Context) (*dto.LinkTokenResponse, error) {
	if !s.plaid.Configured() {
		return &dto.LinkTokenResponse{}, nil
	}

	clientUserID := "hera-user-" + strconv.FormatInt(s.now().UnixMilli(), 10)
	token, err := s.plaid.CreateLinkToken(ctx, clientUserID)
	if err != nil {
		return nil, plaidError(err, "Failed to create link token")
	}
	return &dto.LinkTokenResponse{LinkToken: &token.LinkToken}, nil
}

// ExchangeToken completes a Plaid Link session. The access token is not
// kept.
func (s *plaidService) ExchangeToken(ctx context.Context, req *dto.ExchangeTokenRequest) (*dto.ExchangeTokenResponse, error) {
	if req.PublicToken == "" {
		return nil, apperrors.NewBadRequestError("public_token required")
	}
	if !s.plaid.Configured() {
		return nil, apperrors.ErrPlaidNotConfigured
	}

	exchange, err := s.plaid.ExchangePublicToken(ctx, req.PublicToken)
	if err != nil {
		return nil, plaidError(err, "Exchange failed")
	}

	logger.CtxInfo(ctx, "plaid token exchanged", "item_id", exchange.ItemID)
	return &dto.ExchangeTokenResponse{Success: true, ItemID: exchange.ItemID}, nil
}

// plaidError prefers Plaid's own error_message over the fallback.
func plaidError(err error, fallback string) error {
	msg := banking.PlaidMessage(err)
	if msg == "" {
		msg = fallback
	}
	return apperrors.NewExternalServiceError(err, "plaid", msg)
}
