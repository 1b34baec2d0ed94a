package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trifecta/internal/config"
)

func TestStore_FileStrategy(t *testing.T) {
	dir := t.TempDir()
	store := NewPhotoStore(&config.UploadsConfig{Strategy: config.PhotoStorageFile, Dir: dir})

	data := []byte("not really a jpeg")
	meta, err := store.Store("My Car.JPG", "image/jpeg", data)
	require.NoError(t, err)

	assert.Equal(t, "My Car.JPG", meta.Name)
	assert.Equal(t, int64(len(data)), meta.Size)
	assert.Equal(t, "image/jpeg", meta.Type)
	assert.Empty(t, meta.Data)

	require.True(t, strings.HasPrefix(meta.Path, PublicPathPrefix))
	fileName := strings.TrimPrefix(meta.Path, PublicPathPrefix)
	assert.True(t, strings.HasPrefix(fileName, "car_"))
	assert.True(t, strings.HasSuffix(fileName, ".jpg"), "extension should be lowercased: %s", fileName)

	written, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestStore_FileStrategyCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store := NewPhotoStore(&config.UploadsConfig{Strategy: config.PhotoStorageFile, Dir: dir})

	_, err := store.Store("car.png", "image/png", []byte{1, 2, 3})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_Base64Strategy(t *testing.T) {
	store := NewPhotoStore(&config.UploadsConfig{Strategy: config.PhotoStorageBase64})

	data := []byte{0xff, 0xd8, 0xff, 0xe0}
	meta, err := store.Store("car.jpg", "image/jpeg", data)
	require.NoError(t, err)

	assert.Empty(t, meta.Path)
	decoded, err := base64.StdEncoding.DecodeString(meta.Data)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
	assert.Empty(t, store.Dir())
}

func TestStore_UnknownStrategy(t *testing.T) {
	store := NewPhotoStore(&config.UploadsConfig{Strategy: "s3"})
	_, err := store.Store("car.jpg", "image/jpeg", []byte{1})
	assert.Error(t, err)
}

func TestFileExtension_Sanitized(t *testing.T) {
	assert.Equal(t, ".jpg", fileExtension("photo.jpg"))
	assert.Equal(t, ".jpeg", fileExtension("PHOTO.JPEG"))
	assert.Equal(t, "", fileExtension("noextension"))
	assert.Equal(t, "", fileExtension("weird.reallylongextension"))
}
