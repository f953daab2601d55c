package email

// VerificationData is rendered into the verification template.
type VerificationData struct {
	Code        string
	CompanyName string
	ExpiresIn   string
}
