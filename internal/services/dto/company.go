package dto

import (
	"encoding/json"
	"time"
)

// CompanyAnalysisResponse is an analysis as served to the frontend.
type CompanyAnalysisResponse struct {
	ID                  string          `json:"id"`
	CompanyTicker       string          `json:"company_ticker"`
	CompanyName         string          `json:"company_name"`
	AccountabilityScore float64         `json:"accountability_score"`
	Summary             string          `json:"summary"`
	Issues              json.RawMessage `json:"issues" swaggertype:"array,object"`
	Response            json.RawMessage `json:"response" swaggertype:"object"`
	Timeline            json.RawMessage `json:"timeline" swaggertype:"array,object"`
	ScoreBreakdown      json.RawMessage `json:"score_breakdown" swaggertype:"object"`
	Sources             json.RawMessage `json:"sources" swaggertype:"array,object"`
	DocumentCount       int             `json:"document_count"`
	ModelUsed           string          `json:"model_used"`
	AnalyzedAt          time.Time       `json:"analyzed_at"`
	ExpiresAt           time.Time       `json:"expires_at"`
	Industry            *string         `json:"industry"`
	MarketCap           *float64        `json:"market_cap"`
	Disclaimer          string          `json:"disclaimer"`
}

type AnalyzeResponse struct {
	JobID  string `json:"jobId"`
	Ticker string `json:"ticker"`
}

type AnalysisStatusResponse struct {
	Status string                   `json:"status"`
	Result *CompanyAnalysisResponse `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}
