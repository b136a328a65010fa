package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhotoObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	key := photoObjectKey("me.jpg", now)
	assert.Equal(t, "profiles/me.jpg_1700000000000", key)

	// Path components and odd characters are stripped from the filename.
	key = photoObjectKey("../../etc/pass wd.png", now)
	assert.True(t, strings.HasPrefix(key, "profiles/"))
	assert.NotContains(t, key, "..")
	assert.NotContains(t, key, " ")
}

func TestLocalPhotoStore_Upload(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalPhotoStore(dir)

	url, err := s.Upload(context.Background(), "me.jpg", "image/jpeg", strings.NewReader("bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/profiles/me.jpg_"))

	path := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bytes", string(data))
}
