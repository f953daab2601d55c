package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"hera_backend/internal/auth"
	"hera_backend/internal/config"
	"hera_backend/internal/models"
	"hera_backend/internal/repositories"
	"hera_backend/internal/services/dto"
	"hera_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verificationFixture struct {
	svc    VerificationService
	repo   repositories.VerificationRepository
	tokens *auth.TokenManager
	mailer *captureMailer
}

func newVerificationFixture(t *testing.T, demo bool) *verificationFixture {
	t.Helper()
	ctx := context.Background()
	repo := repositories.NewVerificationRepository(setupDB(t))
	require.NoError(t, repo.UpsertCompanyDomains(ctx,
		models.EmployerCompany{Ticker: "ACME", CompanyName: "Acme Corp"},
		[]string{"acme.com", "acme.co.uk"}))

	tokens, err := auth.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	mailer := &captureMailer{}
	cfg := config.ReviewsConfig{
		EmailHashSalt:  "salt",
		CodeTTL:        config.Duration{Duration: 15 * time.Minute},
		MaxCodesPerDay: 3,
		AdminEmails:    []string{"Admin@Example.org"},
	}
	return &verificationFixture{
		svc:    NewVerificationService(repo, tokens, mailer, cfg, demo),
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
	}
}

func TestVerificationRequestAndVerify(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t, true)

	resp, err := f.svc.RequestVerification(ctx, &dto.RequestVerificationRequest{Email: " Jane@ACME.com "})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "ACME", resp.CompanyTicker)
	assert.Equal(t, "Acme Corp", resp.CompanyName)
	assert.Len(t, resp.Code, 6)
	assert.Equal(t, resp.Code, f.mailer.sent["jane@acme.com"])

	authResp, err := f.svc.Verify(ctx, &dto.VerifyRequest{Code: resp.Code})
	require.NoError(t, err)
	assert.Equal(t, "ACME", authResp.VerifiedFor)
	assert.NotEmpty(t, authResp.UserID)

	claims, err := f.tokens.ParseToken(authResp.Token)
	require.NoError(t, err)
	assert.Equal(t, authResp.UserID, claims.UserID)
	assert.Equal(t, "ACME", claims.VerifiedFor)

	_, err = f.svc.Verify(ctx, &dto.VerifyRequest{Code: resp.Code})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCode)

	user, err := f.repo.FindUserByEmailHash(ctx, auth.HashEmail("jane@acme.com", "salt"))
	require.NoError(t, err)
	assert.Equal(t, authResp.UserID, user.UserID)

	again, err := f.svc.RequestVerification(ctx, &dto.RequestVerificationRequest{Email: "jane@acme.com"})
	require.NoError(t, err)
	second, err := f.svc.Verify(ctx, &dto.VerifyRequest{Code: again.Code})
	require.NoError(t, err)
	assert.Equal(t, authResp.UserID, second.UserID)
}

func TestVerificationCodeHiddenOutsideDemo(t *testing.T) {
	f := newVerificationFixture(t, false)

	resp, err := f.svc.RequestVerification(context.Background(), &dto.RequestVerificationRequest{Email: "bob@acme.co.uk"})
	require.NoError(t, err)
	assert.Empty(t, resp.Code)
	assert.Len(t, f.mailer.sent["bob@acme.co.uk"], 6)
}

func TestVerificationRateLimit(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t, true)
	req := &dto.RequestVerificationRequest{Email: "limit@acme.com"}

	for i := 0; i < 3; i++ {
		_, err := f.svc.RequestVerification(ctx, req)
		require.NoError(t, err)
	}
	_, err := f.svc.RequestVerification(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrVerificationRateLimited)

	_, err = f.svc.RequestVerification(ctx, &dto.RequestVerificationRequest{Email: "other@acme.com"})
	assert.NoError(t, err)
}

func TestVerificationMailFailureIsNotFatal(t *testing.T) {
	f := newVerificationFixture(t, true)
	f.mailer.err = errors.New("smtp down")

	resp, err := f.svc.RequestVerification(context.Background(), &dto.RequestVerificationRequest{Email: "jane@acme.com"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Code)
}

func TestVerificationCompanyLookup(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t, true)

	_, err := f.svc.RequestVerification(ctx, &dto.RequestVerificationRequest{Email: "x@nowhere.io"})
	assert.ErrorIs(t, err, apperrors.ErrNoCompanyForDomain)

	_, err = f.svc.RequestVerification(ctx, &dto.RequestVerificationRequest{Email: "not-an-email"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)

	resp, err := f.svc.RequestVerification(ctx, &dto.RequestVerificationRequest{Email: "admin@example.org"})
	require.NoError(t, err)
	assert.Equal(t, "ACME", resp.CompanyTicker)
}

func TestVerifyExpiredCode(t *testing.T) {
	ctx := context.Background()
	f := newVerificationFixture(t, true)

	require.NoError(t, f.repo.CreateCode(ctx, &models.VerificationCode{
		Code:          "123456",
		Email:         "late@acme.com",
		CompanyTicker: "ACME",
		ExpiresAt:     time.Now().UTC().Add(-time.Minute),
	}))

	_, err := f.svc.Verify(ctx, &dto.VerifyRequest{Code: "123456"})
	assert.ErrorIs(t, err, apperrors.ErrCodeExpired)

	_, err = f.repo.FindCode(ctx, "123456")
	assert.ErrorIs(t, err, repositories.ErrCodeNotFound)

	_, err = f.svc.Verify(ctx, &dto.VerifyRequest{Code: "000000"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCode)
}

func TestLoginDemo(t *testing.T) {
	ctx := context.Background()

	off := newVerificationFixture(t, false)
	_, err := off.svc.LoginDemo(ctx, &dto.DemoLoginRequest{CompanyTicker: "MSFT"})
	assert.ErrorIs(t, err, apperrors.ErrDemoModeDisabled)

	on := newVerificationFixture(t, true)
	resp, err := on.svc.LoginDemo(ctx, &dto.DemoLoginRequest{CompanyTicker: "msft", DemoUserName: "Demo"})
	require.NoError(t, err)
	assert.Equal(t, "MSFT", resp.VerifiedFor)

	claims, err := on.tokens.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
}

func TestListCompanyDomains(t *testing.T) {
	f := newVerificationFixture(t, false)

	companies, err := f.svc.ListCompanyDomains(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.CompanyDomainResponse{{Ticker: "ACME", CompanyName: "Acme Corp"}}, companies)
}
