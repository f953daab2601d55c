package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hera_backend/internal/auth"
	"hera_backend/internal/config"
	"hera_backend/internal/email"
	"hera_backend/internal/logger"
	"hera_backend/internal/models"
	"hera_backend/internal/repositories"
	"hera_backend/internal/services/dto"
	"hera_backend/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	issuanceWindow  = 24 * time.Hour
	codeGenAttempts = 5
)

// VerificationService proves employment through a one-time code sent to a
// work email. Emails are never stored past the code's lifetime.
type VerificationService interface {
	RequestVerification(ctx context.Context, req *dto.RequestVerificationRequest) (*dto.RequestVerificationResponse, error)
	Verify(ctx context.Context, req *dto.VerifyRequest) (*dto.AuthResponse, error)
	LoginDemo(ctx context.Context, req *dto.DemoLoginRequest) (*dto.AuthResponse, error)
	ListCompanyDomains(ctx context.Context) ([]dto.CompanyDomainResponse, error)
}

type verificationService struct {
	repo        repositories.VerificationRepository
	tokens      *auth.TokenManager
	mailer      email.Provider
	salt        string
	codeTTL     time.Duration
	maxPerDay   int
	admins      map[string]bool
	demoEnabled bool
	now         func() time.Time
}

func NewVerificationService(
	repo repositories.VerificationRepository,
	tokens *auth.TokenManager,
	mailer email.Provider,
	cfg config.ReviewsConfig,
	demoEnabled bool,
) VerificationService {
	admins := make(map[string]bool, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return &verificationService{
		repo:        repo,
		tokens:      tokens,
		mailer:      mailer,
		salt:        cfg.EmailHashSalt,
		codeTTL:     cfg.CodeTTL.Duration,
		maxPerDay:   cfg.MaxCodesPerDay,
		admins:      admins,
		demoEnabled: demoEnabled,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *verificationService) RequestVerification(ctx context.Context, req *dto.RequestVerificationRequest) (*dto.RequestVerificationResponse, error) {
	addr := strings.ToLower(strings.TrimSpace(req.Email))
	domain := auth.EmailDomain(addr)
	if domain == "" {
		return nil, apperrors.NewBadRequestError("Valid email required")
	}

	company, err := s.companyFor(ctx, addr, domain)
	if err != nil {
		return nil, err
	}

	now := s.now()
	emailHash := auth.HashEmail(addr, s.salt)
	issued, err := s.repo.CountIssuancesSince(ctx, emailHash, now.Add(-issuanceWindow))
	if err != nil {
		return nil, apperrors.NewDatabaseError(err, "verification")
	}
	if s.maxPerDay > 0 && issued >= int64(s.maxPerDay) {
		return nil, apperrors.ErrVerificationRateLimited
	}

	code, err := s.newCode(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateCode(ctx, &models.VerificationCode{
		Code:          code,
		Email:         addr,
		CompanyTicker: company.Ticker,
		ExpiresAt:     now.Add(s.codeTTL),
	}); err != nil {
		return nil, apperrors.NewDatabaseError(err, "verification")
	}
	if err := s.repo.RecordIssuance(ctx, emailHash, now); err != nil {
		logger.CtxWithError(ctx, "failed to record verification issuance", err)
	}

	if err := s.mailer.SendVerificationCode(ctx, addr, code, company.CompanyName); err != nil {
		logger.CtxWithError(ctx, "verification email not sent", err, "ticker", company.Ticker)
	}

	resp := &dto.RequestVerificationResponse{
		Success:       true,
		CompanyTicker: company.Ticker,
		CompanyName:   company.CompanyName,
	}
	if s.demoEnabled {
		resp.Code = code
	}
	return resp, nil
}

// companyFor resolves the employer of a work email. Admin addresses fall
// back to the first listed company.
func (s *verificationService) companyFor(ctx context.Context, addr, domain string) (*models.EmployerCompany, error) {
	company, err := s.repo.FindCompanyByDomain(ctx, domain)
	if err == nil {
		return company, nil
	}
	if !errors.Is(err, repositories.ErrCompanyDomainNotFound) {
		return nil, apperrors.NewDatabaseError(err, "verification")
	}

	if s.admins[addr] {
		companies, err := s.repo.ListCompanies(ctx)
		if err != nil {
			return nil, apperrors.NewDatabaseError(err, "verification")
		}
		if len(companies) > 0 {
			return &companies[0], nil
		}
	}
	return nil, apperrors.ErrNoCompanyForDomain.WithDetails(map[string]string{"domain": domain})
}

// newCode draws codes until one is not already outstanding.
func (s *verificationService) newCode(ctx context.Context) (string, error) {
	for i := 0; i < codeGenAttempts; i++ {
		code, err := auth.GenerateVerificationCode()
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		_, err = s.repo.FindCode(ctx, code)
		if errors.Is(err, repositories.ErrCodeNotFound) {
			return code, nil
		}
		if err != nil {
			return "", apperrors.NewDatabaseError(err, "verification")
		}
	}
	return "", apperrors.InternalError(errors.New("could not allocate a unique verification code"))
}

// Verify consumes a code exactly once and issues a reviewer token.
func (s *verificationService) Verify(ctx context.Context, req *dto.VerifyRequest) (*dto.AuthResponse, error) {
	vc, err := s.repo.FindCode(ctx, strings.TrimSpace(req.Code))
	if err != nil {
		if errors.Is(err, repositories.ErrCodeNotFound) {
			return nil, apperrors.ErrInvalidCode
		}
		return nil, apperrors.NewDatabaseError(err, "verification")
	}

	deleted, err := s.repo.DeleteCode(ctx, vc.ID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err, "verification")
	}
	if vc.Expired(s.now()) {
		return nil, apperrors.ErrCodeExpired
	}
	if !deleted {
		return nil, apperrors.ErrInvalidCode
	}

	user, err := s.findOrCreateUser(ctx, auth.HashEmail(vc.Email, s.salt), vc.CompanyTicker)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user.UserID, vc.CompanyTicker)
}

func (s *verificationService) findOrCreateUser(ctx context.Context, emailHash, ticker string) (*models.VerifiedUser, error) {
	user, err := s.repo.FindUserByEmailHash(ctx, emailHash)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrVerifiedUserNotFound) {
		return nil, apperrors.NewDatabaseError(err, "verification")
	}

	now := s.now()
	user = &models.VerifiedUser{
		UserID:                uuid.NewString(),
		EmailHash:             emailHash,
		VerifiedCompanyTicker: ticker,
		VerificationDate:      now,
		CreatedAt:             now,
	}
	if err := s.repo.CreateVerifiedUser(ctx, user); err != nil {
		// lost a race with a concurrent verification of the same email
		existing, ferr := s.repo.FindUserByEmailHash(ctx, emailHash)
		if ferr != nil {
			return nil, apperrors.NewDatabaseError(err, "verification")
		}
		return existing, nil
	}
	return user, nil
}

func (s *verificationService) LoginDemo(ctx context.Context, req *dto.DemoLoginRequest) (*dto.AuthResponse, error) {
	if !s.demoEnabled {
		return nil, apperrors.ErrDemoModeDisabled
	}
	ticker := normalizeTicker(req.CompanyTicker)
	if ticker == "" {
		return nil, apperrors.NewBadRequestError("company_ticker required")
	}

	logger.CtxInfo(ctx, "demo login", "ticker", ticker, "demo_user", req.DemoUserName)
	return s.issueToken(uuid.NewString(), ticker)
}

func (s *verificationService) issueToken(userID, ticker string) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(userID, ticker)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		Success:     true,
		Token:       token,
		UserID:      userID,
		VerifiedFor: ticker,
	}, nil
}

func (s *verificationService) ListCompanyDomains(ctx context.Context) ([]dto.CompanyDomainResponse, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err, "verification")
	}
	out := make([]dto.CompanyDomainResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, dto.CompanyDomainResponse{Ticker: c.Ticker, CompanyName: c.CompanyName})
	}
	return out, nil
}
