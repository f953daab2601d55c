package email

import (
	"context"
	"errors"
	"fmt"

	"hera_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

const verificationSubject = "Your Hera verification code"

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPProvider sends mail through gomail.
type SMTPProvider struct {
	config    SMTPConfig
	templates *TemplateManager
	sender    mailSender
}

func NewSMTPProvider(cfg SMTPConfig) (*SMTPProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SMTPProvider{
		config:    cfg,
		templates: NewTemplateManager(),
		sender:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

func (c SMTPConfig) Validate() error {
	if c.Host == "" {
		return errors.New("SMTP host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", c.Port)
	}
	if c.FromEmail == "" {
		return errors.New("sender address is required")
	}
	return nil
}

func (p *SMTPProvider) SendVerificationCode(ctx context.Context, to, code, companyName string) error {
	body, err := p.templates.Render(VerificationTemplate, VerificationData{
		Code:        code,
		CompanyName: companyName,
		ExpiresIn:   "15 minutes",
	})
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", verificationSubject)
	m.SetBody("text/plain", fmt.Sprintf("Your verification code is %s. It expires in 15 minutes.", code))
	m.AddAlternative("text/html", body)

	if err := p.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	logger.CtxInfo(ctx, "verification email sent", "company", companyName)
	return nil
}
