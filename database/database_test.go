package database

import (
	"context"
	"testing"

	"hera_backend/internal/config"
	"hera_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndSeed(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	repo := repositories.NewVerificationRepository(db)
	require.NoError(t, SeedCompanyDomains(ctx, repo, []config.CompanyDomainSeed{
		{Ticker: "ACME", CompanyName: "Acme Corp", Domains: []string{"Acme.com", " acme.io "}},
	}))
	// seeding twice is harmless
	require.NoError(t, SeedCompanyDomains(ctx, repo, []config.CompanyDomainSeed{
		{Ticker: "ACME", CompanyName: "Acme Corporation", Domains: []string{"acme.com"}},
	}))

	company, err := repo.FindCompanyByDomain(ctx, "acme.io")
	require.NoError(t, err)
	assert.Equal(t, "ACME", company.Ticker)

	company, err = repo.FindCompanyByDomain(ctx, "ACME.COM")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corporation", company.CompanyName)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestConnectRedisRejectsBadURL(t *testing.T) {
	_, err := ConnectRedis(context.Background(), "not a url")
	assert.Error(t, err)
}
