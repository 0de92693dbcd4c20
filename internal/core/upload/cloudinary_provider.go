package upload

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryProvider stores uploads in Cloudinary
type CloudinaryProvider struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryProvider creates a provider from a CLOUDINARY_URL string
func NewCloudinaryProvider(cloudinaryURL string) (*CloudinaryProvider, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryProvider{cld: cld}, nil
}

// UploadMultipart uploads a multipart file to Cloudinary
func (p *CloudinaryProvider) UploadMultipart(fileHeader *multipart.FileHeader, options *Options) (*Result, error) {
	if options == nil {
		options = LogoOptions()
	}

	if !options.typeAllowed(fileHeader.Header.Get("Content-Type")) {
		return nil, fmt.Errorf("file type not allowed: %s", fileHeader.Header.Get("Content-Type"))
	}
	if options.MaxSize > 0 && fileHeader.Size > options.MaxSize {
		return nil, fmt.Errorf("file size exceeds maximum allowed size: %d bytes", options.MaxSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	result, err := p.cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
		Folder:       options.Folder,
		ResourceType: "image",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}

	return &Result{
		URL:      result.SecureURL,
		FileName: fileHeader.Filename,
		Size:     int64(result.Bytes),
		PublicID: result.PublicID,
	}, nil
}

// Delete removes a file from Cloudinary
func (p *CloudinaryProvider) Delete(publicID string) error {
	_, err := p.cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID: publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from Cloudinary: %w", err)
	}
	return nil
}

// GetProviderName returns the provider name
func (p *CloudinaryProvider) GetProviderName() string {
	return "Cloudinary"
}
