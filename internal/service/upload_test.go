package service

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUploadService(t *testing.T) *UploadService {
	t.Helper()
	svc, err := NewUploadService(t.TempDir())
	require.NoError(t, err)
	return svc
}

func TestUploadValidate(t *testing.T) {
	svc := newTestUploadService(t)

	tests := []struct {
		name        string
		filename    string
		contentType string
		size        int64
		wantErr     string
	}{
		{"jpeg ok", "photo.jpg", "image/jpeg", 1024, ""},
		{"png ok", "shot.PNG", "image/png", 1024, ""},
		{"gif ok", "anim.gif", "image/gif", 1024, ""},
		{"bad extension", "script.exe", "image/png", 1024, "Only images are allowed (jpeg, jpg, png, gif)"},
		{"bad content type", "photo.jpg", "application/octet-stream", 1024, "Only images are allowed (jpeg, jpg, png, gif)"},
		{"both must match", "photo.txt", "image/jpeg", 1024, "Only images are allowed (jpeg, jpg, png, gif)"},
		{"too large", "photo.jpg", "image/jpeg", MaxUploadSizeBytes + 1, "File upload error: File too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Validate(tt.filename, tt.contentType, tt.size)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
			}
		})
	}
}

func TestUploadStore(t *testing.T) {
	svc := newTestUploadService(t)

	url, err := svc.Store("selfie.jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".jpg"))

	stored := filepath.Join(svc.Dir(), strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestUploadStoreRejectsOversizedStream(t *testing.T) {
	svc := newTestUploadService(t)

	big := bytes.Repeat([]byte("a"), MaxUploadSizeBytes+1)
	_, err := svc.Store("big.png", bytes.NewReader(big))
	require.Error(t, err)
	assert.Equal(t, "File upload error: File too large", err.Error())

	entries, err := os.ReadDir(svc.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadStoreNamesAreUnique(t *testing.T) {
	svc := newTestUploadService(t)

	a, err := svc.Store("x.gif", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := svc.Store("x.gif", strings.NewReader("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
