package email

import (
	"context"

	"hera_backend/internal/logger"
)

// LogProvider writes codes to the log instead of sending them. Used when no
// SMTP server is configured.
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) SendVerificationCode(ctx context.Context, to, code, companyName string) error {
	logger.CtxInfo(ctx, "verification code issued", "to", to, "code", code, "company", companyName)
	return nil
}
