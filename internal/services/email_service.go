package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/moviegoers/moviegoers-api/internal/config"
)

// EmailService handles email operations
type EmailService struct {
	cfg *config.Config
}

// NewEmailService creates a new EmailService
func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		cfg: cfg,
	}
}

// SendVerificationEmail sends the verification link to an email address
func (s *EmailService) SendVerificationEmail(to, link string) error {
	subject := "Verify your email for The Moviegoers Cats"
	body := fmt.Sprintf(`Welcome to The Moviegoers Cats!

Thanks for participating! Please open the link below to verify your email address:

%s

This link will expire in 24 hours. If you didn't request this, you can ignore this message.

The Moviegoers Cats Team
`, link)

	return s.SendEmail(to, subject, body)
}

// SendEmail sends an email
func (s *EmailService) SendEmail(to, subject, body string) error {
	// SMTP server configuration
	smtpHost := s.cfg.SMTPHost
	smtpPort := s.cfg.SMTPPort
	smtpUser := s.cfg.SMTPUser
	smtpPassword := s.cfg.SMTPPassword
	from := s.cfg.FromEmail

	// Message
	message := []byte(fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"\r\n"+
		"%s\r\n", from, to, subject, body))

	// Authentication
	auth := smtp.PlainAuth("", smtpUser, smtpPassword, smtpHost)

	// SMTP connection
	addr := fmt.Sprintf("%s:%d", smtpHost, smtpPort)

	// Send email
	if err := smtp.SendMail(addr, auth, from, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// IsEmailValid checks if an email address is valid
func (s *EmailService) IsEmailValid(email string) bool {
	// Basic validation - check for @ symbol and at least one dot after it
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" {
		return false
	}

	// Check if domain has at least one dot
	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[0] != "" && domainParts[len(domainParts)-1] != ""
}
