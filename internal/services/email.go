package services

import (
	"fmt"
	"net/smtp"

	"trifecta/internal/config"
)

// EmailService handles sending emails
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// IsEnabled returns whether email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled
}

// NotifyAddress returns the operator address that receives submission
// notifications.
func (s *EmailService) NotifyAddress() string {
	return s.cfg.NotifyEmail
}

// SendEmail sends a plain text email
func (s *EmailService) SendEmail(to, subject, body string) error {
	return s.SendHTMLEmail(to, subject, "", body)
}

// SendHTMLEmail sends an HTML email with plain text fallback
func (s *EmailService) SendHTMLEmail(to, subject, htmlBody, textBody string) error {
	if !s.cfg.Enabled {
		fmt.Printf("[EMAIL] Would send to %s: %s\n", to, subject)
		return nil
	}

	// Validate configuration
	if s.cfg.SMTPHost == "" || s.cfg.Username == "" || s.cfg.Password == "" {
		return fmt.Errorf("email service not properly configured")
	}

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)

	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	// Build multipart message
	boundary := "----=_NextPart_1234567890"

	headers := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", to) +
		fmt.Sprintf("Subject: %s\r\n", subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n"

	message := headers +
		fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"Content-Transfer-Encoding: quoted-printable\r\n" +
		"\r\n" +
		textBody + "\r\n"

	if htmlBody != "" {
		message += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"Content-Transfer-Encoding: quoted-printable\r\n" +
			"\r\n" +
			htmlBody + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
