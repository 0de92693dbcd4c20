package email

import "fmt"

// Provider defines the interface for email providers
type Provider interface {
	SendEmail(to, subject, body string) error
	GetProviderName() string
}

// Service wraps the email provider. A nil provider is a valid "mail
// disabled" configuration; sends then fail softly at the call site.
type Service struct {
	provider Provider
}

// NewService creates a new email service with the specified provider
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// SendEmail sends an HTML email
func (s *Service) SendEmail(to, subject, body string) error {
	if s.provider == nil {
		return fmt.Errorf("no email provider configured")
	}
	return s.provider.SendEmail(to, subject, body)
}

// GetProviderName returns the name of the current provider
func (s *Service) GetProviderName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}
