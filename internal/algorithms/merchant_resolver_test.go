package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMerchant(t *testing.T) {
	r := DefaultMerchantResolver()

	cases := []struct {
		name   string
		in     string
		ticker string
		ok     bool
	}{
		{"exact", "Netflix", "NFLX", true},
		{"exact with padding", "  WALMART ", "WMT", true},
		{"store suffix", "Apple Store #42", "AAPL", true},
		{"corporate suffix", "NVIDIA Corp", "NVDA", true},
		{"input inside key", "disn", "DIS", true},
		{"longest key wins", "American Express Platinum", "AXP", true},
		{"airline", "American Airlines 0012", "AAL", true},
		{"unknown", "Totally Unknown Shop", "", false},
		{"blank", "   ", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ticker, ok := r.Resolve(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.ticker, ticker)
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	table := map[string]string{"ab": "ONE", "bc": "TWO", "abc corp": "THREE"}
	r := NewMerchantResolver(table)

	for i := 0; i < 50; i++ {
		ticker, ok := r.Resolve("xabcx")
		assert.True(t, ok)
		assert.Equal(t, "ONE", ticker, "equal-length keys are tried alphabetically")
	}

	ticker, _ := r.Resolve("ABC Corp Ltd")
	assert.Equal(t, "THREE", ticker)
}

func TestKnownTicker(t *testing.T) {
	r := DefaultMerchantResolver()
	assert.True(t, r.KnownTicker("aapl"))
	assert.False(t, r.KnownTicker("ZZZZ"))
}

func TestDemoMerchantsResolve(t *testing.T) {
	r := DefaultMerchantResolver()
	for name, want := range map[string]string{
		"Apple Inc":           "AAPL",
		"Tesla Inc":           "TSLA",
		"Microsoft Corp":      "MSFT",
		"Uber Technologies":   "UBER",
		"Activision Blizzard": "ATVI",
		"NVIDIA Corp":         "NVDA",
		"Salesforce Inc":      "CRM",
		"Adobe Inc":           "ADBE",
	} {
		got, ok := r.Resolve(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
}
