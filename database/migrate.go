package database

import (
	"context"
	"fmt"

	"hera_backend/internal/config"
	"hera_backend/internal/logger"
	"hera_backend/internal/models"
	"hera_backend/internal/repositories"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the service owns. The
// analysis tables are included so that development and test databases
// work without the external pipeline.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Company{},
		&models.CompanyAnalysis{},
		&models.EmployeeReview{},
		&models.VerificationCode{},
		&models.VerificationIssuance{},
		&models.VerifiedUser{},
		&models.CompanyEmailDomain{},
		&models.UserAction{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	logger.Info("AutoMigrate completed")
	return nil
}

// SeedCompanyDomains upserts the employer domain directory.
func SeedCompanyDomains(ctx context.Context, repo repositories.VerificationRepository, seeds []config.CompanyDomainSeed) error {
	for _, s := range seeds {
		company := models.EmployerCompany{Ticker: s.Ticker, CompanyName: s.CompanyName}
		if err := repo.UpsertCompanyDomains(ctx, company, s.Domains); err != nil {
			return fmt.Errorf("seed domains for %s: %w", s.Ticker, err)
		}
	}
	logger.Info("company email domains seeded", "companies", len(seeds))
	return nil
}
