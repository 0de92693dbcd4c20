package upload

import (
	"fmt"
	"mime/multipart"
)

// Service provides file upload functionality with provider switching
type Service struct {
	provider Provider
}

// NewService creates a new upload service
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// UploadLogo stores a chatbot logo and returns its public URL
func (s *Service) UploadLogo(fileHeader *multipart.FileHeader) (*Result, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("upload provider not configured")
	}
	return s.provider.UploadMultipart(fileHeader, LogoOptions())
}

// Delete deletes a file by public ID
func (s *Service) Delete(publicID string) error {
	if s.provider == nil {
		return fmt.Errorf("upload provider not configured")
	}
	return s.provider.Delete(publicID)
}

// GetProviderName returns the current provider name
func (s *Service) GetProviderName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.GetProviderName()
}
