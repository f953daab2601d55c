package algorithms

import (
	"fmt"
	"strings"

	"hera_backend/internal/logger"
	"hera_backend/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type HoldingSummary struct {
	Ticker              string   `json:"ticker"`
	Name                string   `json:"name"`
	AccountabilityScore *float64 `json:"accountability_score"`
	Severity            *string  `json:"severity"`
	Summary             *string  `json:"summary"`
	Analyzed            bool     `json:"analyzed"`
}

type ScanResult struct {
	Total           int              `json:"total"`
	Flagged         int              `json:"flagged"`
	Clean           int              `json:"clean"`
	NotAnalyzed     int              `json:"not_analyzed"`
	Holdings        []HoldingSummary `json:"holdings"`
	ImpactStatement string           `json:"impact_statement"`
}

// NormalizeTickers upper-cases and trims tickers, dropping blanks and
// repeats while keeping input order.
func NormalizeTickers(tickers []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// ScanPortfolio classifies tickers against their latest analyses. tickers
// must already be normalised.
func ScanPortfolio(tickers []string, analyses map[string]*models.CompanyAnalysis) ScanResult {
	res := ScanResult{
		Total:    len(tickers),
		Holdings: make([]HoldingSummary, 0, len(tickers)),
	}

	var incidents int
	var affected int64

	for _, t := range tickers {
		a, ok := analyses[t]
		if !ok || a == nil {
			res.NotAnalyzed++
			res.Holdings = append(res.Holdings, HoldingSummary{Ticker: t, Name: t})
			continue
		}

		score, summary := a.AccountabilityScore, a.Summary
		name := a.CompanyName
		if name == "" {
			name = t
		}
		res.Holdings = append(res.Holdings, HoldingSummary{
			Ticker:              t,
			Name:                name,
			AccountabilityScore: &score,
			Severity:            a.Severity(),
			Summary:             &summary,
			Analyzed:            true,
		})

		if !a.Flagged() {
			res.Clean++
			continue
		}
		res.Flagged++
		issues, err := a.GetIssues()
		if err != nil {
			logger.Warn("Failed to decode issues", "ticker", t, "error", err)
		}
		incidents += len(issues)
		for _, is := range issues {
			if is.AffectedParties != nil {
				affected += *is.AffectedParties
			}
		}
	}

	res.ImpactStatement = ImpactStatement(res.Flagged, incidents, affected)
	return res
}

var numberPrinter = message.NewPrinter(language.English)

// ImpactStatement summarises flagged holdings in one sentence, or returns
// "" when nothing is flagged.
func ImpactStatement(flagged, incidents int, affected int64) string {
	if flagged == 0 {
		return ""
	}
	companies := "companies"
	if flagged == 1 {
		companies = "company"
	}
	incidentWord := "incidents"
	if incidents == 1 {
		incidentWord = "incident"
	}
	return fmt.Sprintf(
		"Your portfolio includes %d %s with unresolved accountability issues affecting an estimated %s employees across %d %s.",
		flagged, companies, numberPrinter.Sprintf("%d", affected), incidents, incidentWord,
	)
}
