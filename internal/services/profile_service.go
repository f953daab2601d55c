package services

import (
	"context"
	"sync"

	"hera_backend/internal/algorithms"
	"hera_backend/internal/banking"
	"hera_backend/internal/logger"
	"hera_backend/internal/models"
	"hera_backend/internal/repositories"
	"hera_backend/internal/services/dto"
	"hera_backend/pkg/apperrors"

	"golang.org/x/sync/errgroup"
)

// profileFanOut bounds concurrent upstream calls per profile request.
const profileFanOut = 4

const unknownMerchant = "Unknown"

type ProfileService interface {
	BuildProfile(ctx context.Context, customerID string) (*dto.ProfileResponse, error)
	AnalyzeAll(ctx context.Context, customerID string) (*dto.AnalyzeAllResponse, error)
}

type profileService struct {
	nessie       NessieAPI
	analysisRepo repositories.AnalysisRepository
	companies    CompanyService
	resolver     *algorithms.MerchantResolver
}

func NewProfileService(
	nessie NessieAPI,
	analysisRepo repositories.AnalysisRepository,
	companies CompanyService,
	resolver *algorithms.MerchantResolver,
) ProfileService {
	return &profileService{
		nessie:       nessie,
		analysisRepo: analysisRepo,
		companies:    companies,
		resolver:     resolver,
	}
}

// BuildProfile groups a customer's purchases into holdings. One account's
// purchases or one merchant's name failing to load does not fail the
// profile.
func (s *profileService) BuildProfile(ctx context.Context, customerID string) (*dto.ProfileResponse, error) {
	if !s.nessie.Configured() {
		return nil, apperrors.ErrBankingNotConfigured
	}

	customer, err := s.nessie.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, bankingError(err, "Failed to build profile")
	}
	accounts, err := s.nessie.ListAccounts(ctx, customerID)
	if err != nil {
		return nil, bankingError(err, "Failed to build profile")
	}

	purchases := s.fetchPurchases(ctx, accounts)
	named := s.namePurchases(ctx, purchases, unknownMerchant)

	spends, unresolved := algorithms.GroupSpend(named, s.resolver)
	analyses := s.holdingAnalyses(ctx, algorithms.SpendTickers(spends))
	holdings, total := algorithms.BuildHoldings(spends, analyses)

	resp := &dto.ProfileResponse{
		Customer: dto.ProfileCustomer{
			ID:        customer.ID,
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
		},
		TotalInvested:       total,
		Accounts:            make([]dto.ProfileAccount, 0, len(accounts)),
		Holdings:            holdings,
		TotalPurchases:      len(purchases),
		UnresolvedMerchants: nonNil(unresolved),
	}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, dto.ProfileAccount{
			ID:       a.ID,
			Type:     a.Type,
			Nickname: a.Nickname,
			Balance:  a.Balance,
			Rewards:  a.Rewards,
		})
	}
	return resp, nil
}

// AnalyzeAll triggers analysis for every ticker in the customer's spend
// that has no live analysis yet.
func (s *profileService) AnalyzeAll(ctx context.Context, customerID string) (*dto.AnalyzeAllResponse, error) {
	if !s.nessie.Configured() {
		return nil, apperrors.ErrBankingNotConfigured
	}

	accounts, err := s.nessie.ListAccounts(ctx, customerID)
	if err != nil {
		return nil, bankingError(err, "Failed to trigger analyses")
	}

	named := s.namePurchases(ctx, s.fetchPurchases(ctx, accounts), "")

	var tickers []string
	seen := map[string]bool{}
	for _, p := range named {
		ticker, ok := s.resolver.Resolve(p.MerchantName)
		if !ok || seen[ticker] {
			continue
		}
		seen[ticker] = true
		tickers = append(tickers, ticker)
	}

	analyzed := map[string]*models.CompanyAnalysis{}
	if len(tickers) > 0 {
		found, err := s.analysisRepo.FindLatestByTickers(ctx, tickers)
		if err != nil {
			logger.CtxWithError(ctx, "failed to check existing analyses", err, "customer_id", customerID)
		} else {
			analyzed = found
		}
	}

	resp := &dto.AnalyzeAllResponse{
		Triggered:       []string{},
		AlreadyAnalyzed: []string{},
		TotalTickers:    len(tickers),
	}
	for _, ticker := range tickers {
		if _, ok := analyzed[ticker]; ok {
			resp.AlreadyAnalyzed = append(resp.AlreadyAnalyzed, ticker)
			continue
		}
		if _, err := s.companies.TriggerAnalysis(ctx, ticker); err != nil {
			logger.CtxWithError(ctx, "failed to trigger analysis", err, "ticker", ticker)
			continue
		}
		resp.Triggered = append(resp.Triggered, ticker)
	}
	return resp, nil
}

// fetchPurchases loads purchases for all accounts concurrently, keeping
// account order. A failing account contributes nothing.
func (s *profileService) fetchPurchases(ctx context.Context, accounts []banking.Account) []banking.Purchase {
	perAccount := make([][]banking.Purchase, len(accounts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(profileFanOut)
	for i, account := range accounts {
		g.Go(func() error {
			purchases, err := s.nessie.ListPurchases(gctx, account.ID)
			if err != nil {
				logger.CtxWarn(ctx, "skipping account purchases", "account_id", account.ID, "error", err.Error())
				return nil
			}
			perAccount[i] = purchases
			return nil
		})
	}
	_ = g.Wait()

	var all []banking.Purchase
	for _, p := range perAccount {
		all = append(all, p...)
	}
	return all
}

// namePurchases resolves merchant ids to display names. A failed lookup
// falls back to the purchase description, then the id. Purchases without
// a merchant id use their description, then fallback.
func (s *profileService) namePurchases(ctx context.Context, purchases []banking.Purchase, fallback string) []algorithms.NamedPurchase {
	descriptions := map[string]string{}
	var ids []string
	for _, p := range purchases {
		if p.MerchantID == "" {
			continue
		}
		if _, ok := descriptions[p.MerchantID]; !ok {
			descriptions[p.MerchantID] = p.Description
			ids = append(ids, p.MerchantID)
		}
	}

	var mu sync.Mutex
	names := make(map[string]string, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(profileFanOut)
	for _, id := range ids {
		g.Go(func() error {
			name := id
			merchant, err := s.nessie.GetMerchant(gctx, id)
			switch {
			case err != nil:
				logger.CtxDebug(ctx, "merchant lookup failed", "merchant_id", id, "error", err.Error())
				if d := descriptions[id]; d != "" {
					name = d
				}
			case merchant.Name != "":
				name = merchant.Name
			}

			mu.Lock()
			names[id] = name
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	named := make([]algorithms.NamedPurchase, 0, len(purchases))
	for _, p := range purchases {
		name := names[p.MerchantID]
		if name == "" {
			name = p.Description
		}
		if name == "" {
			name = fallback
		}
		named = append(named, algorithms.NamedPurchase{MerchantName: name, Amount: p.Amount})
	}
	return named
}

// holdingAnalyses is non-fatal: a failed read just leaves every holding
// unanalyzed.
func (s *profileService) holdingAnalyses(ctx context.Context, tickers []string) map[string]algorithms.HoldingAnalysis {
	out := map[string]algorithms.HoldingAnalysis{}
	if len(tickers) == 0 {
		return out
	}

	analyses, err := s.analysisRepo.FindLatestByTickers(ctx, tickers)
	if err != nil {
		logger.CtxWithError(ctx, "failed to load analyses for holdings", err)
		return out
	}
	for ticker, a := range analyses {
		out[ticker] = algorithms.HoldingAnalysis{
			Score:    a.AccountabilityScore,
			Severity: a.Severity(),
			Summary:  a.Summary,
		}
	}
	return out
}
