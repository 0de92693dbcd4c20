package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalProvider stores uploads on the local filesystem, served back under
// /uploads/ by the API process.
type LocalProvider struct {
	basePath string
	baseURL  string
}

// NewLocalProvider creates a new local file storage provider
func NewLocalProvider(basePath, baseURL string) (*LocalProvider, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalProvider{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// UploadMultipart stores a multipart file under basePath/<folder>/
func (p *LocalProvider) UploadMultipart(fileHeader *multipart.FileHeader, options *Options) (*Result, error) {
	if options == nil {
		options = LogoOptions()
	}

	if !options.typeAllowed(fileHeader.Header.Get("Content-Type")) {
		return nil, fmt.Errorf("file type not allowed: %s", fileHeader.Header.Get("Content-Type"))
	}
	if options.MaxSize > 0 && fileHeader.Size > options.MaxSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed size: %d bytes", options.MaxSize)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(fileHeader.Filename)
	name := strings.TrimSuffix(fileHeader.Filename, ext)
	finalName := fmt.Sprintf("%s_%d_%s%s", name, time.Now().Unix(), uuid.New().String()[:8], ext)

	folderPath := filepath.Join(p.basePath, options.Folder)
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	out, err := os.Create(filepath.Join(folderPath, finalName))
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	size, err := io.Copy(out, src)
	if err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	publicID := filepath.ToSlash(filepath.Join(options.Folder, finalName))
	return &Result{
		URL:      fmt.Sprintf("%s/uploads/%s", p.baseURL, publicID),
		FileName: fileHeader.Filename,
		Size:     size,
		PublicID: publicID,
	}, nil
}

// Delete removes a stored file
func (p *LocalProvider) Delete(publicID string) error {
	path := filepath.Join(p.basePath, filepath.FromSlash(publicID))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// GetProviderName returns the provider name
func (p *LocalProvider) GetProviderName() string {
	return "Local Storage"
}
