package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupSpend(t *testing.T) {
	purchases := []NamedPurchase{
		{MerchantName: "Apple Inc", Amount: 100.1},
		{MerchantName: "Totally Unknown Shop", Amount: 12},
		{MerchantName: "Apple Inc", Amount: 0.111},
		{MerchantName: "Tesla Inc", Amount: 50},
	}

	resolved, unresolved := GroupSpend(purchases, DefaultMerchantResolver())

	require.Len(t, resolved, 2)
	assert.Equal(t, "Apple Inc", resolved[0].MerchantName)
	assert.Equal(t, "AAPL", resolved[0].Ticker)
	assert.Equal(t, 2, resolved[0].NumPurchases)
	assert.Equal(t, 100.21, resolved[0].TotalInvested)
	assert.Equal(t, "TSLA", resolved[1].Ticker)
	assert.Equal(t, []string{"Totally Unknown Shop"}, unresolved)
	assert.Equal(t, []string{"AAPL", "TSLA"}, SpendTickers(resolved))
}

func TestBuildHoldingsSortsWorstFirst(t *testing.T) {
	spends := []MerchantSpend{
		{MerchantName: "Tesla Inc", Ticker: "TSLA", TotalInvested: 500, NumPurchases: 1},
		{MerchantName: "Adobe Inc", Ticker: "ADBE", TotalInvested: 900, NumPurchases: 2},
		{MerchantName: "Apple Inc", Ticker: "AAPL", TotalInvested: 100, NumPurchases: 1},
		{MerchantName: "Uber Technologies", Ticker: "UBER", TotalInvested: 300.01, NumPurchases: 3},
	}
	high := "high"
	analyses := map[string]HoldingAnalysis{
		"AAPL": {Score: 8, Summary: "ok"},
		"TSLA": {Score: 3, Severity: &high, Summary: "bad"},
	}

	holdings, total := BuildHoldings(spends, analyses)

	require.Len(t, holdings, 4)
	assert.Equal(t, []string{"TSLA", "AAPL", "ADBE", "UBER"}, []string{
		holdings[0].Ticker, holdings[1].Ticker, holdings[2].Ticker, holdings[3].Ticker,
	})
	assert.True(t, holdings[0].HasAnalysis)
	assert.Equal(t, "high", *holdings[0].Severity)
	assert.False(t, holdings[2].HasAnalysis)
	assert.Nil(t, holdings[2].Score)
	assert.Equal(t, 1800.01, total)
}

func TestSortHoldingsEqualScoresUseSpend(t *testing.T) {
	five := 5.0
	h := []Holding{
		{Ticker: "A", HasAnalysis: true, Score: &five, TotalInvested: 10},
		{Ticker: "B", HasAnalysis: true, Score: &five, TotalInvested: 20},
	}
	SortHoldings(h)
	assert.Equal(t, "B", h[0].Ticker)
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 0.3, RoundMoney(0.1+0.2))
	assert.Equal(t, 10.0, RoundMoney(9.999))
}
