package apperrors

import (
	"net/http"
)

// ErrNotFound converts a repository miss into a 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// --- Analyses ---

var ErrAnalysisNotFound = New(
	CodeNotFound,
	"analysis",
	"Not analyzed",
	http.StatusNotFound,
)

// --- Verification ---

var ErrNoCompanyForDomain = New(
	CodeNotFound,
	"verification",
	"Company not found for this email domain",
	http.StatusNotFound,
)

var ErrVerificationRateLimited = New(
	CodeRateLimited,
	"verification",
	"Too many verification requests. Try again later.",
	http.StatusTooManyRequests,
)

var ErrInvalidCode = New(
	CodeValidationFailed,
	"verification",
	"Invalid or expired code",
	http.StatusBadRequest,
)

var ErrCodeExpired = New(
	CodeValidationFailed,
	"verification",
	"Code expired",
	http.StatusBadRequest,
)

var ErrDemoModeDisabled = New(
	CodeForbidden,
	"verification",
	"Demo mode is disabled",
	http.StatusForbidden,
)

// --- Reviews ---

var ErrReviewCooldown = New(
	CodeLimitExceeded,
	"review",
	"You have already reviewed this company in the last 6 months",
	http.StatusTooManyRequests,
)

var ErrReviewCompanyMismatch = New(
	CodeForbidden,
	"review",
	"You are only verified to review your own employer",
	http.StatusForbidden,
)

// --- Auth ---

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// --- Banking ---

var ErrBankingNotConfigured = New(
	CodeNotConfigured,
	"banking",
	"NESSIE_API_KEY not configured",
	http.StatusInternalServerError,
)

var ErrPlaidNotConfigured = New(
	CodeNotConfigured,
	"banking",
	"Plaid not configured",
	http.StatusInternalServerError,
)

// ErrExternalService is the generic upstream failure for banking and
// resolver calls.
var ErrExternalService = New(
	CodeExternalServiceError,
	"external",
	"External service request failed",
	http.StatusInternalServerError,
)

// --- Resolve ---

var ErrResolutionFailed = New(
	CodeExternalServiceError,
	"resolve",
	"Resolution failed",
	http.StatusInternalServerError,
)
