package email

import (
	"context"

	"hera_backend/internal/config"
	"hera_backend/internal/logger"
)

// Provider delivers verification codes.
type Provider interface {
	SendVerificationCode(ctx context.Context, to, code, companyName string) error
}

// NewProvider picks SMTP when the mail server is configured and falls back
// to logging otherwise.
func NewProvider(cfg config.EmailConfig) (Provider, error) {
	smtpCfg := ConfigFromApp(cfg)
	if !smtpCfg.Configured() {
		logger.Warn("SMTP not configured, verification codes will only be logged")
		return NewLogProvider(), nil
	}
	return NewSMTPProvider(smtpCfg)
}
