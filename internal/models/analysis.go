package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Company is warehouse reference data joined into analyses.
type Company struct {
	Ticker    string   `gorm:"primaryKey;size:16" json:"ticker"`
	Name      string   `gorm:"size:255;not null" json:"name"`
	Industry  *string  `gorm:"size:255;index" json:"industry"`
	MarketCap *float64 `json:"market_cap"`
}

// CompanyAnalysis is written by the external pipeline and only read here.
type CompanyAnalysis struct {
	ID                  string         `gorm:"primaryKey;size:64"`
	CompanyTicker       string         `gorm:"size:16;not null;index"`
	CompanyName         string         `gorm:"size:255"`
	AccountabilityScore float64        `gorm:"not null"`
	Summary             string         `gorm:"type:text"`
	Issues              datatypes.JSON `gorm:"type:json"`
	Response            datatypes.JSON `gorm:"type:json"`
	Timeline            datatypes.JSON `gorm:"type:json"`
	ScoreBreakdown      datatypes.JSON `gorm:"type:json"`
	Sources             datatypes.JSON `gorm:"type:json"`
	DocumentCount       int            `gorm:"not null;default:0"`
	ModelUsed           string         `gorm:"size:128"`
	AnalyzedAt          time.Time      `gorm:"not null;index"`
	ExpiresAt           time.Time      `gorm:"not null;index"`
}

type Issue struct {
	Type             string   `json:"type"`
	Date             string   `json:"date,omitempty"`
	Status           string   `json:"status,omitempty"`
	SettlementAmount *float64 `json:"settlement_amount"`
	AffectedParties  *int64   `json:"affected_parties"`
	Description      string   `json:"description"`
	SourceURLs       []string `json:"source_urls,omitempty"`
}

type ResponseAnalysis struct {
	ActionsTaken []string `json:"actions_taken"`
	Gaps         []string `json:"gaps"`
}

type TimelineEvent struct {
	Date  string `json:"date"`
	Event string `json:"event"`
}

type ScoreBreakdown struct {
	Severity        string  `json:"severity"`
	ResponseQuality float64 `json:"response_quality"`
	Transparency    float64 `json:"transparency"`
	Speed           string  `json:"speed"`
	CurrentStatus   string  `json:"current_status"`
	PatternAnalysis string  `json:"pattern_analysis"`
}

type Source struct {
	URL   string `json:"url"`
	Title string `json:"title"`
	Type  string `json:"type,omitempty"`
	Date  string `json:"date,omitempty"`
}

// ErrBadCount marks an affected_parties value that is neither a number nor
// a numeric string.
var ErrBadCount = errors.New("affected_parties is not a count")

// UnmarshalJSON accepts affected_parties as an integer, a float (rounded) or
// a numeric string such as "2,000". On ErrBadCount the rest of the issue is
// still decoded and AffectedParties is left nil.
func (i *Issue) UnmarshalJSON(data []byte) error {
	type plain Issue
	var raw struct {
		plain
		AffectedParties json.RawMessage `json:"affected_parties"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = Issue(raw.plain)
	i.AffectedParties = nil

	n, err := parseCount(raw.AffectedParties)
	if err != nil {
		return err
	}
	i.AffectedParties = n
	return nil
}

func parseCount(raw json.RawMessage) (*int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return nil, nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadCount, s)
		}
		s = strings.ReplaceAll(strings.TrimSpace(str), ",", "")
		if s == "" {
			return nil, nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s", ErrBadCount, raw)
	}
	n := int64(math.Round(f))
	return &n, nil
}

// GetIssues decodes the issues column. Entries that cannot be decoded are
// skipped, entries with a bad affected_parties are kept without a count, and
// both are reported in the returned error.
func (a *CompanyAnalysis) GetIssues() ([]Issue, error) {
	if len(a.Issues) == 0 {
		return nil, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(a.Issues, &raw); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}

	issues := make([]Issue, 0, len(raw))
	var errs []error
	for idx, r := range raw {
		if strings.TrimSpace(string(r)) == "null" {
			continue
		}
		var is Issue
		if err := json.Unmarshal(r, &is); err != nil {
			errs = append(errs, fmt.Errorf("issue %d: %w", idx, err))
			if !errors.Is(err, ErrBadCount) {
				continue
			}
		}
		issues = append(issues, is)
	}
	return issues, errors.Join(errs...)
}

// GetScoreBreakdown returns nil when the column is empty or malformed.
func (a *CompanyAnalysis) GetScoreBreakdown() *ScoreBreakdown {
	if len(a.ScoreBreakdown) == 0 {
		return nil
	}
	var b ScoreBreakdown
	if err := json.Unmarshal(a.ScoreBreakdown, &b); err != nil {
		return nil
	}
	return &b
}

// Severity is the breakdown's qualitative label, or nil.
func (a *CompanyAnalysis) Severity() *string {
	b := a.GetScoreBreakdown()
	if b == nil || b.Severity == "" {
		return nil
	}
	s := b.Severity
	return &s
}

func (a *CompanyAnalysis) SetIssues(issues []Issue) error {
	b, err := json.Marshal(issues)
	if err != nil {
		return err
	}
	a.Issues = datatypes.JSON(b)
	return nil
}

// Flagged reports whether the score is in the concerning band.
func (a *CompanyAnalysis) Flagged() bool {
	return a.AccountabilityScore <= FlaggedScoreThreshold
}

// FlaggedScoreThreshold is the highest accountability score still treated
// as an unresolved issue.
const FlaggedScoreThreshold = 5

func (a *CompanyAnalysis) SetScoreBreakdown(b ScoreBreakdown) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	a.ScoreBreakdown = datatypes.JSON(data)
	return nil
}
