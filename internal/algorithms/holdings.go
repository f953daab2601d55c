package algorithms

import (
	"math"
	"sort"
)

// NamedPurchase is a purchase whose merchant id has been turned into a
// display name.
type NamedPurchase struct {
	MerchantName string
	Amount       float64
}

// MerchantSpend is the spend grouped under one merchant name.
type MerchantSpend struct {
	MerchantName  string
	Ticker        string // empty when unresolved
	TotalInvested float64
	NumPurchases  int
}

// HoldingAnalysis is the part of an analysis joined into a holding.
type HoldingAnalysis struct {
	Score    float64
	Severity *string
	Summary  string
}

type Holding struct {
	MerchantName  string   `json:"merchant_name"`
	Ticker        string   `json:"ticker"`
	TotalInvested float64  `json:"total_invested"`
	NumPurchases  int      `json:"num_purchases"`
	HasAnalysis   bool     `json:"has_analysis"`
	Score         *float64 `json:"score"`
	Severity      *string  `json:"severity"`
	Summary       *string  `json:"summary"`
}

// GroupSpend sums purchases per merchant name, keeping first-seen order,
// and resolves each name to a ticker. Names without a ticker are returned
// separately. Totals are rounded once per group.
func GroupSpend(purchases []NamedPurchase, resolver *MerchantResolver) (resolved []MerchantSpend, unresolved []string) {
	index := map[string]int{}
	var groups []MerchantSpend

	for _, p := range purchases {
		i, ok := index[p.MerchantName]
		if !ok {
			i = len(groups)
			index[p.MerchantName] = i
			groups = append(groups, MerchantSpend{MerchantName: p.MerchantName})
		}
		groups[i].TotalInvested += p.Amount
		groups[i].NumPurchases++
	}

	for _, g := range groups {
		g.TotalInvested = RoundMoney(g.TotalInvested)
		ticker, ok := resolver.Resolve(g.MerchantName)
		if !ok {
			unresolved = append(unresolved, g.MerchantName)
			continue
		}
		g.Ticker = ticker
		resolved = append(resolved, g)
	}
	return resolved, unresolved
}

// SpendTickers lists the distinct tickers of spends in first-seen order.
func SpendTickers(spends []MerchantSpend) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range spends {
		if s.Ticker == "" || seen[s.Ticker] {
			continue
		}
		seen[s.Ticker] = true
		out = append(out, s.Ticker)
	}
	return out
}

// BuildHoldings joins spends with the analyses found for their tickers,
// sorts them and returns the grand total of the holdings.
func BuildHoldings(spends []MerchantSpend, analyses map[string]HoldingAnalysis) ([]Holding, float64) {
	holdings := make([]Holding, 0, len(spends))
	var total float64

	for _, s := range spends {
		h := Holding{
			MerchantName:  s.MerchantName,
			Ticker:        s.Ticker,
			TotalInvested: s.TotalInvested,
			NumPurchases:  s.NumPurchases,
		}
		if a, ok := analyses[s.Ticker]; ok {
			score, summary := a.Score, a.Summary
			h.HasAnalysis = true
			h.Score = &score
			h.Severity = a.Severity
			h.Summary = &summary
		}
		holdings = append(holdings, h)
		total += h.TotalInvested
	}

	SortHoldings(holdings)
	return holdings, RoundMoney(total)
}

// SortHoldings puts analyzed holdings first, worst score first. Equal
// scores and unanalyzed holdings fall back to larger spend first, then
// merchant name.
func SortHoldings(h []Holding) {
	sort.SliceStable(h, func(i, j int) bool {
		a, b := h[i], h[j]
		if a.HasAnalysis != b.HasAnalysis {
			return a.HasAnalysis
		}
		if a.Score != nil && b.Score != nil && *a.Score != *b.Score {
			return *a.Score < *b.Score
		}
		if a.TotalInvested != b.TotalInvested {
			return a.TotalInvested > b.TotalInvested
		}
		return a.MerchantName < b.MerchantName
	})
}

// RoundMoney rounds to cents.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
