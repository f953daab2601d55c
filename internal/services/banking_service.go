package services

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"strings"

	"hera_backend/internal/banking"
	"hera_backend/internal/logger"
	"hera_backend/internal/services/dto"
	"hera_backend/pkg/apperrors"
)

// NessieAPI is the subset of the Nessie sandbox the services use.
type NessieAPI interface {
	Configured() bool
	ListCustomers(ctx context.Context) ([]banking.Customer, error)
	GetCustomer(ctx context.Context, id string) (*banking.Customer, error)
	CreateCustomer(ctx context.Context, in banking.NewCustomer) (*banking.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	ListAccounts(ctx context.Context, customerID string) ([]banking.Account, error)
	CreateAccount(ctx context.Context, customerID string, in banking.NewAccount) (*banking.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	ListPurchases(ctx context.Context, accountID string) ([]banking.Purchase, error)
	CreatePurchase(ctx context.Context, accountID string, in banking.NewPurchase) (*banking.Purchase, error)
	GetMerchant(ctx context.Context, id string) (*banking.Merchant, error)
	CreateMerchant(ctx context.Context, in banking.NewMerchant) (*banking.Merchant, error)
}

// DemoMerchants are the merchants seeded by SetupDemo. Each resolves to a
// ticker through the merchant table.
var DemoMerchants = []string{
	"Apple Inc",
	"Tesla Inc",
	"Microsoft Corp",
	"Uber Technologies",
	"Activision Blizzard",
	"NVIDIA Corp",
	"Salesforce Inc",
	"Adobe Inc",
}

var demoPurchaseDates = []string{"2024-06-15", "2024-07-20", "2024-08-10"}

const (
	demoFirstName = "Demo"
	demoLastName  = "User"

	defaultAccountType     = "Checking"
	defaultAccountNickname = "Hera Account"
	defaultAccountBalance  = 1000
)

type BankingService interface {
	SetupDemo(ctx context.Context) (*dto.SetupDemoResponse, error)
	Login(ctx context.Context, req *dto.NessieLoginRequest) (*dto.NessieLoginResponse, error)
	ListCustomers(ctx context.Context) ([]banking.Customer, error)
	ListAccounts(ctx context.Context, customerID string) ([]banking.Account, error)
	ListPurchases(ctx context.Context, accountID string) ([]banking.Purchase, error)
	CreateAccount(ctx context.Context, customerID string, req *dto.CreateAccountRequest) (*banking.Account, error)
}

type bankingService struct {
	nessie NessieAPI
}

func NewBankingService(nessie NessieAPI) BankingService {
	return &bankingService{nessie: nessie}
}

func bankingError(err error, message string) error {
	if errors.Is(err, banking.ErrNotConfigured) {
		return apperrors.ErrBankingNotConfigured
	}
	return apperrors.NewExternalServiceError(err, "banking", message)
}

func (s *bankingService) ListCustomers(ctx context.Context) ([]banking.Customer, error) {
	if !s.nessie.Configured() {
		return nil, apperrors.ErrBankingNotConfigured
	}
	customers, err := s.nessie.ListCustomers(ctx)
	if err != nil {
		return nil, bankingError(err, "Failed to fetch customers")
	}
	return nonNil(customers), nil
}

func (s *bankingService) ListAccounts(ctx context.Context, customerID string) ([]banking.Account, error) {
	if !s.nessie.Configured() {
		return nil, apperrors.ErrBankingNotConfigured
	}
	accounts, err := s.nessie.ListAccounts(ctx, customerID)
	if err != nil {
		return nil, bankingError(err, "Failed to fetch accounts")
	}
	return nonNil(accounts), nil
}

func (s *bankingService) ListPurchases(ctx context.Context, accountID string) ([]banking.Purchase, error) {
	if !s.nessie.Configured() {
		return nil, apperrors.ErrBankingNotConfigured
	}
	purchases, err := s.nessie.ListPurchases(ctx, accountID)
	if err != nil {
		return nil, bankingError(err, "Failed to fetch purchases")
	}
	return nonNil(purchases), nil
}

func (s *bankingService) CreateAccount(ctx context.Context, customerID string, req *dto.CreateAccountRequest) (*banking.Account, error) {
	if !s.nessie.Configured() {
		return nil, apperrors.ErrBankingNotConfigured
	}

	in := banking.NewAccount{
		Type:     defaultAccountType,
		Nickname: defaultAccountNickname,
		Balance:  defaultAccountBalance,
	}
	if req != nil {
		if req.Type != "" {
			in.Type = req.Type
		}
		if req.Nickname != "" {
			in.Nickname = req.Nickname
		}
		if req.Balance != nil {
			in.Balance = *req.Balance
		}
	}

	account, err := s.nessie.CreateAccount(ctx, customerID, in)
	if err != nil {
		return nil, bankingError(err, "Failed to create account")
	}
	return account, nil
}

// Login finds a customer by name, ignoring case, or creates one.
func (s *bankingService) Login(ctx context.Context, req *dto.NessieLoginRequest) (*dto.NessieLoginResponse, error) {
	if !s.nessie.Configured() {
		return nil, apperrors.ErrBankingNotConfigured
	}

	customers, err := s.nessie.ListCustomers(ctx)
	if err != nil {
		return nil, bankingError(err, "Nessie API error")
	}
	for _, c := range customers {
		if strings.EqualFold(c.FirstName, req.FirstName) && strings.EqualFold(c.LastName, req.LastName) {
			return &dto.NessieLoginResponse{Customer: c, Created: false}, nil
		}
	}

	created, err := s.nessie.CreateCustomer(ctx, banking.NewCustomer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address: banking.Address{
			StreetNumber: "1",
			StreetName:   "Main St",
			City:         "New York",
			State:        "NY",
			Zip:          "10001",
		},
	})
	if err != nil {
		return nil, bankingError(err, "Nessie API error")
	}
	return &dto.NessieLoginResponse{Customer: created, Created: true}, nil
}

// SetupDemo replaces any previous demo customer with a fresh one holding a
// credit card account and purchases at every demo merchant.
func (s *bankingService) SetupDemo(ctx context.Context) (*dto.SetupDemoResponse, error) {
	if !s.nessie.Configured() {
		return nil, apperrors.ErrBankingNotConfigured
	}

	existing, err := s.nessie.ListCustomers(ctx)
	if err != nil {
		return nil, bankingError(err, "Failed to set up demo data")
	}
	for _, c := range existing {
		if c.FirstName == demoFirstName && c.LastName == demoLastName {
			s.deleteCustomer(ctx, c.ID)
		}
	}

	customer, err := s.nessie.CreateCustomer(ctx, banking.NewCustomer{
		FirstName: demoFirstName,
		LastName:  demoLastName,
		Address: banking.Address{
			StreetNumber: "123",
			StreetName:   "Main St",
			City:         "Arlington",
			State:        "VA",
			Zip:          "22201",
		},
	})
	if err != nil {
		return nil, bankingError(err, "Failed to set up demo data")
	}

	account, err := s.nessie.CreateAccount(ctx, customer.ID, banking.NewAccount{
		Type:     "Credit Card",
		Nickname: "Investment Portfolio",
		Balance:  50000,
	})
	if err != nil {
		return nil, bankingError(err, "Failed to set up demo data")
	}

	resp := &dto.SetupDemoResponse{CustomerID: customer.ID, AccountID: account.ID}
	for _, name := range DemoMerchants {
		merchant, err := s.nessie.CreateMerchant(ctx, banking.NewMerchant{
			Name: name,
			Address: banking.Address{
				StreetNumber: "1",
				StreetName:   "Market St",
				City:         "San Francisco",
				State:        "CA",
				Zip:          "94105",
			},
			Geocode: banking.Geocode{Lat: 37.7749, Lng: -122.4194},
		})
		if err != nil {
			return nil, bankingError(err, "Failed to set up demo data")
		}
		resp.MerchantsCreated++

		count := 1 + rand.IntN(3)
		for i := 0; i < count; i++ {
			_, err := s.nessie.CreatePurchase(ctx, account.ID, banking.NewPurchase{
				MerchantID:   merchant.ID,
				Medium:       "balance",
				PurchaseDate: demoPurchaseDates[i%len(demoPurchaseDates)],
				Amount:       math.Round((1000+rand.Float64()*14000)*100) / 100,
				Description:  "Stock purchase - " + name,
			})
			if err != nil {
				return nil, bankingError(err, "Failed to set up demo data")
			}
			resp.PurchasesCreated++
		}
	}

	logger.CtxInfo(ctx, "demo banking data created",
		"customer_id", customer.ID,
		"merchants", resp.MerchantsCreated,
		"purchases", resp.PurchasesCreated,
	)
	return resp, nil
}

// deleteCustomer is best effort: accounts first, then the customer.
func (s *bankingService) deleteCustomer(ctx context.Context, customerID string) {
	accounts, err := s.nessie.ListAccounts(ctx, customerID)
	if err != nil {
		logger.CtxWithError(ctx, "demo cleanup: list accounts failed", err, "customer_id", customerID)
		return
	}
	for _, a := range accounts {
		if err := s.nessie.DeleteAccount(ctx, a.ID); err != nil {
			logger.CtxWithError(ctx, "demo cleanup: delete account failed", err, "account_id", a.ID)
		}
	}
	if err := s.nessie.DeleteCustomer(ctx, customerID); err != nil {
		logger.CtxWithError(ctx, "demo cleanup: delete customer failed", err, "customer_id", customerID)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
