package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"hera_backend/database"
	"hera_backend/internal/banking"
	"hera_backend/internal/config"
	"hera_backend/internal/models"
	"hera_backend/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(context.Background(), config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func ptr[T any](v T) *T { return &v }

func saveAnalysis(t *testing.T, repo repositories.AnalysisRepository, ticker string, score float64, severity string) {
	t.Helper()
	now := time.Now().UTC()
	a := &models.CompanyAnalysis{
		ID:                  ticker + "-analysis",
		CompanyTicker:       ticker,
		CompanyName:         ticker + " Inc",
		AccountabilityScore: score,
		Summary:             "summary of " + ticker,
		AnalyzedAt:          now.Add(-time.Hour),
		ExpiresAt:           now.Add(24 * time.Hour),
	}
	if severity != "" {
		require.NoError(t, a.SetScoreBreakdown(models.ScoreBreakdown{Severity: severity}))
	}
	require.NoError(t, repo.SaveAnalysis(context.Background(), a))
}

type fakeRunner struct {
	mu      sync.Mutex
	started []string
	err     error
}

func (r *fakeRunner) Start(_ context.Context, ticker, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, ticker)
	return r.err
}

func (r *fakeRunner) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.started...)
}

type captureMailer struct {
	mu   sync.Mutex
	sent map[string]string
	err  error
}

func (m *captureMailer) SendVerificationCode(_ context.Context, to, code, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sent == nil {
		m.sent = map[string]string{}
	}
	m.sent[to] = code
	return m.err
}

// fakeNessie is an in-memory Nessie sandbox.
type fakeNessie struct {
	mu            sync.Mutex
	unconfigured  bool
	nextID        int
	customers     []banking.Customer
	accounts      map[string][]banking.Account
	purchases     map[string][]banking.Purchase
	merchants     map[string]banking.Merchant
	failPurchases map[string]bool
	failMerchants map[string]bool
	deleted       []string
}

func newFakeNessie() *fakeNessie {
	return &fakeNessie{
		accounts:      map[string][]banking.Account{},
		purchases:     map[string][]banking.Purchase{},
		merchants:     map[string]banking.Merchant{},
		failPurchases: map[string]bool{},
		failMerchants: map[string]bool{},
	}
}

var errFakeUpstream = errors.New("upstream unavailable")

func (f *fakeNessie) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeNessie) Configured() bool { return !f.unconfigured }

func (f *fakeNessie) ListCustomers(context.Context) ([]banking.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]banking.Customer(nil), f.customers...), nil
}

func (f *fakeNessie) GetCustomer(_ context.Context, id string) (*banking.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, &banking.APIError{Provider: "Nessie", Status: 404, Body: "not found"}
}

func (f *fakeNessie) CreateCustomer(_ context.Context, in banking.NewCustomer) (*banking.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	addr := in.Address
	c := banking.Customer{ID: f.id("cust"), FirstName: in.FirstName, LastName: in.LastName, Address: &addr}
	f.customers = append(f.customers, c)
	return &c, nil
}

func (f *fakeNessie) DeleteCustomer(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.customers {
		if c.ID == id {
			f.customers = append(f.customers[:i], f.customers[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return nil
}

func (f *fakeNessie) ListAccounts(_ context.Context, customerID string) ([]banking.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]banking.Account(nil), f.accounts[customerID]...), nil
}

func (f *fakeNessie) CreateAccount(_ context.Context, customerID string, in banking.NewAccount) (*banking.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := banking.Account{
		ID:         f.id("acct"),
		Type:       in.Type,
		Nickname:   in.Nickname,
		Rewards:    in.Rewards,
		Balance:    in.Balance,
		CustomerID: customerID,
	}
	f.accounts[customerID] = append(f.accounts[customerID], a)
	return &a, nil
}

func (f *fakeNessie) DeleteAccount(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for cust, accounts := range f.accounts {
		for i, a := range accounts {
			if a.ID == id {
				f.accounts[cust] = append(accounts[:i], accounts[i+1:]...)
				f.deleted = append(f.deleted, id)
				return nil
			}
		}
	}
	return nil
}

func (f *fakeNessie) ListPurchases(_ context.Context, accountID string) ([]banking.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPurchases[accountID] {
		return nil, errFakeUpstream
	}
	return append([]banking.Purchase(nil), f.purchases[accountID]...), nil
}

func (f *fakeNessie) CreatePurchase(_ context.Context, accountID string, in banking.NewPurchase) (*banking.Purchase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := banking.Purchase{
		ID:           f.id("purch"),
		MerchantID:   in.MerchantID,
		Medium:       in.Medium,
		PurchaseDate: in.PurchaseDate,
		Amount:       in.Amount,
		Description:  in.Description,
	}
	f.purchases[accountID] = append(f.purchases[accountID], p)
	return &p, nil
}

func (f *fakeNessie) GetMerchant(_ context.Context, id string) (*banking.Merchant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMerchants[id] {
		return nil, errFakeUpstream
	}
	m, ok := f.merchants[id]
	if !ok {
		return nil, &banking.APIError{Provider: "Nessie", Status: 404, Body: "not found"}
	}
	return &m, nil
}

func (f *fakeNessie) CreateMerchant(_ context.Context, in banking.NewMerchant) (*banking.Merchant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := banking.Merchant{ID: f.id("merch"), Name: in.Name}
	f.merchants[m.ID] = m
	return &m, nil
}

// seed adds a merchant and purchases of the given amounts on accountID.
func (f *fakeNessie) seed(accountID, merchantName string, amounts ...float64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := banking.Merchant{ID: f.id("merch"), Name: merchantName}
	f.merchants[m.ID] = m
	for _, amt := range amounts {
		f.purchases[accountID] = append(f.purchases[accountID], banking.Purchase{
			ID:          f.id("purch"),
			MerchantID:  m.ID,
			Amount:      amt,
			Description: "purchase at " + merchantName,
		})
	}
	return m.ID
}
