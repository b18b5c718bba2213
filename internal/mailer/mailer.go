package mailer

import (
	"errors"
	"fmt"
	"net/smtp"

	"go.uber.org/zap"

	"github.com/hayumabar/backend/config"
)

// ErrNotConfigured is returned when SMTP settings are missing.
var ErrNotConfigured = errors.New("smtp not configured")

// Mailer sends emails over SMTP with plain auth.
type Mailer struct {
	cfg    config.EmailConfig
	logger *zap.Logger
}

// New creates a Mailer from config.
func New(cfg config.EmailConfig, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{cfg: cfg, logger: logger}
}

// BuildOtpMessage renders the OTP verification email body.
func BuildOtpMessage(from, fromName, to, name, code string) []byte {
	subject := "Your verification code"
	body := fmt.Sprintf("Hi %s,\n\nYour verification code is %s. It expires in 15 minutes.\n\nIf you did not sign up, ignore this email.", name, code)
	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", fromName, from, to, subject, body)
	return []byte(msg)
}

// SendOtp delivers a verification code to the recipient.
func (m *Mailer) SendOtp(to, name, code string) error {
	if m.cfg.SMTPHost == "" {
		return ErrNotConfigured
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	msg := BuildOtpMessage(m.cfg.FromAddress, m.cfg.FromName, to, name, code)

	if err := smtp.SendMail(addr, auth, m.cfg.FromAddress, []string{to}, msg); err != nil {
		m.logger.Warn("otp email send failed", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}
	m.logger.Info("otp email sent", zap.String("to", to))
	return nil
}
