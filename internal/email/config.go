package email

import (
	"time"

	"hera_backend/internal/config"
)

// SMTPConfig holds the outgoing mail server settings.
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

func ConfigFromApp(cfg config.EmailConfig) SMTPConfig {
	return SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
		Timeout:   30 * time.Second,
	}
}

// Configured reports whether there is enough to actually send mail.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.FromEmail != ""
}
