// Package service holds business logic that sits between handlers and
// repositories.
package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"minix/internal/models"

	"github.com/google/uuid"
)

const (
	// MaxUploadSizeBytes caps accepted image uploads at 5 MiB.
	MaxUploadSizeBytes = 5 * 1024 * 1024

	invalidTypeMessage = "Only images are allowed (jpeg, jpg, png, gif)"
)

var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
}

var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
}

// UploadService validates and stores image uploads on local disk.
type UploadService struct {
	dir string
}

// NewUploadService creates the upload directory if needed and returns the
// service. A missing directory is created lazily on first store as well, so
// the error here is advisory.
func NewUploadService(dir string) (*UploadService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &UploadService{dir: dir}, nil
}

// Dir returns the directory files are stored in, for static serving.
func (s *UploadService) Dir() string {
	return s.dir
}

// Validate checks the original filename's extension, the declared content
// type, and the size. Both the extension and the content type must look like
// an accepted image format.
func (s *UploadService) Validate(filename, contentType string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return models.NewValidationError(invalidTypeMessage)
	}
	if _, ok := allowedContentTypes[strings.ToLower(contentType)]; !ok {
		return models.NewValidationError(invalidTypeMessage)
	}
	if size > MaxUploadSizeBytes {
		return models.NewValidationError("File upload error: File too large")
	}
	return nil
}

// Store writes the upload under a fresh random name and returns the public
// URL path for the stored file.
func (s *UploadService) Store(filename string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	stored := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer dst.Close()

	// Guard against clients lying about Content-Length.
	n, err := io.Copy(dst, io.LimitReader(src, MaxUploadSizeBytes+1))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	if n > MaxUploadSizeBytes {
		os.Remove(filepath.Join(s.dir, stored))
		return "", models.NewValidationError("File upload error: File too large")
	}

	return "/uploads/" + stored, nil
}

// Save validates and stores a multipart file header in one step.
func (s *UploadService) Save(fh *multipart.FileHeader) (string, error) {
	if err := s.Validate(fh.Filename, fh.Header.Get("Content-Type"), fh.Size); err != nil {
		return "", err
	}

	f, err := fh.Open()
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer f.Close()

	return s.Store(fh.Filename, f)
}
