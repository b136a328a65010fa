package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PhotoStore writes a submitted profile photo and returns a publicly
// retrievable URL for it.
type PhotoStore interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

// photoObjectKey derives the storage key for an uploaded photo. The epoch
// millis suffix keeps repeated uploads of the same filename from colliding.
func photoObjectKey(filename string, now time.Time) string {
	return fmt.Sprintf("profiles/%s_%d", sanitizeFilename(filename), now.UnixMilli())
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}

// LocalPhotoStore keeps photos on disk and serves them from /uploads/.
// Used for local development without a storage bucket.
type LocalPhotoStore struct {
	uploadDir string
}

func NewLocalPhotoStore(uploadDir string) *LocalPhotoStore {
	os.MkdirAll(filepath.Join(uploadDir, "profiles"), 0755)
	return &LocalPhotoStore{uploadDir: uploadDir}
}

func (s *LocalPhotoStore) Upload(_ context.Context, filename, _ string, r io.Reader) (string, error) {
	key := photoObjectKey(filename, time.Now())
	path := filepath.Join(s.uploadDir, filepath.FromSlash(key))

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(path) // Clean up on error
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return "/uploads/" + key, nil
}
