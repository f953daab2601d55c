package dto

import (
	"hera_backend/internal/algorithms"
	"hera_backend/internal/models"
)

// ======================
// Verification
// ======================

type RequestVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RequestVerificationResponse struct {
	Success       bool   `json:"success"`
	CompanyTicker string `json:"company_ticker"`
	CompanyName   string `json:"company_name"`
	Code          string `json:"code,omitempty"`
}

type VerifyRequest struct {
	Code string `json:"code" validate:"required"`
}

type DemoLoginRequest struct {
	CompanyTicker string `json:"company_ticker" validate:"required,is-ticker"`
	DemoUserName  string `json:"demo_user_name,omitempty"`
}

type AuthResponse struct {
	Success     bool   `json:"success"`
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	VerifiedFor string `json:"verified_for"`
}

type CompanyDomainResponse struct {
	Ticker      string `json:"ticker"`
	CompanyName string `json:"company_name"`
}

// ======================
// Reviews
// ======================

type ReviewDataRequest struct {
	WitnessedIssues models.WitnessedIssues   `json:"witnessed_issues" validate:"required,is-witnessed"`
	IssueTypes      []models.IssueType       `json:"issue_types" validate:"omitempty,dive,is-issue-type"`
	Timeframe       models.Timeframe         `json:"timeframe" validate:"required,is-timeframe"`
	Reported        models.Reported          `json:"reported" validate:"required,is-reported"`
	ReportedTo      []string                 `json:"reported_to"`
	CompanyResponse []models.CompanyResponse `json:"company_response" validate:"omitempty,dive,is-company-response"`
	WouldRecommend  models.Recommendation    `json:"would_recommend" validate:"required,is-recommend"`
	OptionalComment string                   `json:"optional_comment"`
}

func (r ReviewDataRequest) ToModel() models.ReviewData {
	return models.ReviewData{
		WitnessedIssues: r.WitnessedIssues,
		IssueTypes:      r.IssueTypes,
		Timeframe:       r.Timeframe,
		Reported:        r.Reported,
		ReportedTo:      r.ReportedTo,
		CompanyResponse: r.CompanyResponse,
		WouldRecommend:  r.WouldRecommend,
		OptionalComment: r.OptionalComment,
	}
}

type SubmitReviewRequest struct {
	CompanyTicker string             `json:"company_ticker" validate:"required,is-ticker"`
	ReviewData    *ReviewDataRequest `json:"review_data" validate:"required"`
}

type SubmitReviewResponse struct {
	Success  bool   `json:"success"`
	ReviewID string `json:"review_id"`
}

type ReviewAggregateResponse struct {
	CompanyTicker            string                      `json:"company_ticker"`
	TotalReviews             int                         `json:"total_reviews"`
	AggregatedData           *algorithms.ReviewAggregate `json:"aggregated_data"`
	EmployeePerspectiveScore *int                        `json:"employee_perspective_score"`
}
