package algorithms

import (
	"sort"
	"strings"
)

// merchantTickers maps normalised merchant names to the ticker of the
// public company behind them.
var merchantTickers = map[string]string{
	"apple":               "AAPL",
	"apple store":         "AAPL",
	"amazon":              "AMZN",
	"amazon.com":          "AMZN",
	"amazon prime":        "AMZN",
	"whole foods":         "AMZN",
	"google":              "GOOGL",
	"google cloud":        "GOOGL",
	"microsoft":           "MSFT",
	"meta":                "META",
	"facebook":            "META",
	"instagram":           "META",
	"netflix":             "NFLX",
	"spotify":             "SPOT",
	"uber":                "UBER",
	"uber eats":           "UBER",
	"lyft":                "LYFT",
	"tesla":               "TSLA",
	"adobe":               "ADBE",
	"salesforce":          "CRM",
	"nvidia":              "NVDA",
	"nvidia corp":         "NVDA",
	"walmart":             "WMT",
	"target":              "TGT",
	"costco":              "COST",
	"home depot":          "HD",
	"lowes":               "LOW",
	"lowe's":              "LOW",
	"nike":                "NKE",
	"nike store":          "NKE",
	"starbucks":           "SBUX",
	"mcdonald's":          "MCD",
	"mcdonalds":           "MCD",
	"chipotle":            "CMG",
	"chick-fil-a":         "CFA",
	"at&t":                "T",
	"att":                 "T",
	"verizon":             "VZ",
	"t-mobile":            "TMUS",
	"comcast":             "CMCSA",
	"disney":              "DIS",
	"walt disney":         "DIS",
	"disney+":             "DIS",
	"johnson & johnson":   "JNJ",
	"procter & gamble":    "PG",
	"coca-cola":           "KO",
	"coca cola":           "KO",
	"pepsi":               "PEP",
	"pepsico":             "PEP",
	"delta":               "DAL",
	"delta airlines":      "DAL",
	"united":              "UAL",
	"united airlines":     "UAL",
	"american":            "AAL",
	"american airlines":   "AAL",
	"southwest":           "LUV",
	"southwest airlines":  "LUV",
	"airbnb":              "ABNB",
	"booking":             "BKNG",
	"booking.com":         "BKNG",
	"activision blizzard": "ATVI",
	"activision":          "ATVI",
	"paypal":              "PYPL",
	"visa":                "V",
	"mastercard":          "MA",
	"american express":    "AXP",
	"best buy":            "BBY",
	"dollar general":      "DG",
	"dollar tree":         "DLTR",
	"kroger":              "KR",
	"cvs pharmacy":        "CVS",
	"walgreens":           "WBA",
	"ebay":                "EBAY",
	"etsy":                "ETSY",
	"doordash":            "DASH",
	"expedia":             "EXPE",
	"marriott":            "MAR",
	"hilton":              "HLT",
	"jpmorgan":            "JPM",
	"bank of america":     "BAC",
	"wells fargo":         "WFC",
	"oracle":              "ORCL",
	"qualcomm":            "QCOM",
	"boeing":              "BA",
	"general motors":      "GM",
	"exxonmobil":          "XOM",
	"chevron":             "CVX",
	"taco bell":           "YUM",
	"pizza hut":           "YUM",
	"domino's":            "DPZ",
	"pfizer":              "PFE",
	"shopify":             "SHOP",
}

// MerchantResolver maps free-text merchant names to tickers: exact match
// first, then substring match in either direction. Substring candidates are
// tried longest key first, ties alphabetically, so the most specific entry
// wins and results never depend on map iteration.
type MerchantResolver struct {
	table   map[string]string
	keys    []string
	tickers map[string]struct{}
}

func NewMerchantResolver(table map[string]string) *MerchantResolver {
	r := &MerchantResolver{
		table:   make(map[string]string, len(table)),
		tickers: make(map[string]struct{}, len(table)),
	}
	for k, v := range table {
		key := normalizeMerchant(k)
		if key == "" {
			continue
		}
		r.table[key] = v
		r.tickers[v] = struct{}{}
		r.keys = append(r.keys, key)
	}
	sort.Slice(r.keys, func(i, j int) bool {
		if len(r.keys[i]) != len(r.keys[j]) {
			return len(r.keys[i]) > len(r.keys[j])
		}
		return r.keys[i] < r.keys[j]
	})
	return r
}

var defaultResolver = NewMerchantResolver(merchantTickers)

// DefaultMerchantResolver returns the resolver over the built-in table.
func DefaultMerchantResolver() *MerchantResolver {
	return defaultResolver
}

// Resolve returns the ticker for name. Blank names never resolve.
func (r *MerchantResolver) Resolve(name string) (string, bool) {
	n := normalizeMerchant(name)
	if n == "" {
		return "", false
	}
	if t, ok := r.table[n]; ok {
		return t, true
	}
	for _, key := range r.keys {
		if strings.Contains(n, key) || strings.Contains(key, n) {
			return r.table[key], true
		}
	}
	return "", false
}

// KnownTicker reports whether ticker appears in the table.
func (r *MerchantResolver) KnownTicker(ticker string) bool {
	_, ok := r.tickers[strings.ToUpper(strings.TrimSpace(ticker))]
	return ok
}

func normalizeMerchant(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
