package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"hera_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCodeNotFound          = errors.New("verification code not found")
	ErrVerifiedUserNotFound  = errors.New("verified user not found")
	ErrCompanyDomainNotFound = errors.New("no company for email domain")
)

// VerificationRepository holds the short-lived state of the email
// verification flow plus the employer domain directory.
type VerificationRepository interface {
	// Codes
	CreateCode(ctx context.Context, code *models.VerificationCode) error
	FindCode(ctx context.Context, code string) (*models.VerificationCode, error)
	// DeleteCode reports whether a row was removed, so a code is consumed
	// at most once even under concurrent verification.
	DeleteCode(ctx context.Context, id string) (bool, error)
	DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error)

	// Rolling issuance limit
	RecordIssuance(ctx context.Context, emailHash string, at time.Time) error
	CountIssuancesSince(ctx context.Context, emailHash string, since time.Time) (int64, error)
	DeleteIssuancesBefore(ctx context.Context, before time.Time) (int64, error)

	// Verified users
	FindUserByEmailHash(ctx context.Context, emailHash string) (*models.VerifiedUser, error)
	CreateVerifiedUser(ctx context.Context, user *models.VerifiedUser) error

	// Employer directory
	FindCompanyByDomain(ctx context.Context, domain string) (*models.EmployerCompany, error)
	ListCompanies(ctx context.Context) ([]models.EmployerCompany, error)
	UpsertCompanyDomains(ctx context.Context, company models.EmployerCompany, domains []string) error
}

type VerificationRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

func (r *VerificationRepositoryImpl) CreateCode(ctx context.Context, code *models.VerificationCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *VerificationRepositoryImpl) FindCode(ctx context.Context, code string) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	err := r.db.WithContext(ctx).First(&vc, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return &vc, nil
}

func (r *VerificationRepositoryImpl) DeleteCode(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.VerificationCode{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *VerificationRepositoryImpl) DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&models.VerificationCode{})
	return res.RowsAffected, res.Error
}

func (r *VerificationRepositoryImpl) RecordIssuance(ctx context.Context, emailHash string, at time.Time) error {
	return r.db.WithContext(ctx).Create(&models.VerificationIssuance{
		BaseModel: models.BaseModel{CreatedAt: at},
		EmailHash: emailHash,
	}).Error
}

func (r *VerificationRepositoryImpl) CountIssuancesSince(ctx context.Context, emailHash string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.VerificationIssuance{}).
		Where("email_hash = ? AND created_at > ?", emailHash, since).
		Count(&count).Error
	return count, err
}

func (r *VerificationRepositoryImpl) DeleteIssuancesBefore(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at <= ?", before).Delete(&models.VerificationIssuance{})
	return res.RowsAffected, res.Error
}

func (r *VerificationRepositoryImpl) FindUserByEmailHash(ctx context.Context, emailHash string) (*models.VerifiedUser, error) {
	var user models.VerifiedUser
	err := r.db.WithContext(ctx).First(&user, "email_hash = ?", emailHash).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerifiedUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *VerificationRepositoryImpl) CreateVerifiedUser(ctx context.Context, user *models.VerifiedUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *VerificationRepositoryImpl) FindCompanyByDomain(ctx context.Context, domain string) (*models.EmployerCompany, error) {
	var row models.CompanyEmailDomain
	err := r.db.WithContext(ctx).First(&row, "domain = ?", strings.ToLower(domain)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyDomainNotFound
		}
		return nil, err
	}
	return &models.EmployerCompany{Ticker: row.Ticker, CompanyName: row.CompanyName}, nil
}

func (r *VerificationRepositoryImpl) ListCompanies(ctx context.Context) ([]models.EmployerCompany, error) {
	var companies []models.EmployerCompany
	err := r.db.WithContext(ctx).Model(&models.CompanyEmailDomain{}).
		Distinct("ticker", "company_name").
		Order("company_name ASC").
		Scan(&companies).Error
	return companies, err
}

func (r *VerificationRepositoryImpl) UpsertCompanyDomains(ctx context.Context, company models.EmployerCompany, domains []string) error {
	rows := make([]models.CompanyEmailDomain, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		rows = append(rows, models.CompanyEmailDomain{Domain: d, Ticker: company.Ticker, CompanyName: company.CompanyName})
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "domain"}},
		DoUpdates: clause.AssignmentColumns([]string{"ticker", "company_name"}),
	}).Create(&rows).Error
}
