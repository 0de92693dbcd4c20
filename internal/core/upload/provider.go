package upload

import (
	"mime/multipart"
)

// Result represents the outcome of a logo upload
type Result struct {
	URL      string `json:"url"`       // Public URL to access the file
	FileName string `json:"file_name"` // Original filename
	Size     int64  `json:"size"`      // File size in bytes
	PublicID string `json:"public_id"` // Provider-specific identifier
}

// Options represents upload configuration
type Options struct {
	Folder       string   `json:"folder"`
	AllowedTypes []string `json:"allowed_types"` // Allowed MIME types
	MaxSize      int64    `json:"max_size"`      // Max file size in bytes
}

// Provider defines the interface for file upload providers
type Provider interface {
	// UploadMultipart stores a file from a multipart form
	UploadMultipart(fileHeader *multipart.FileHeader, options *Options) (*Result, error)

	// Delete removes a file by public ID
	Delete(publicID string) error

	// GetProviderName returns the provider name
	GetProviderName() string
}

// LogoOptions returns the options applied to chatbot logo uploads.
func LogoOptions() *Options {
	return &Options{
		Folder:       "logos",
		AllowedTypes: []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"},
		MaxSize:      5 * 1024 * 1024, // 5MB
	}
}

func (o *Options) typeAllowed(contentType string) bool {
	if len(o.AllowedTypes) == 0 {
		return true
	}
	for _, t := range o.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
