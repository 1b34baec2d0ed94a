// Package storage persists uploaded car photos. Two strategies exist for two
// deployment targets: "file" writes bytes under a public uploads directory,
// "base64" embeds the encoded bytes in the submission record for hosts
// without a persistent filesystem.
package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"trifecta/internal/config"
	"trifecta/internal/domain"
)

// PublicPathPrefix is the URL prefix under which file-strategy photos are
// served.
const PublicPathPrefix = "/uploads/"

// PhotoStore writes uploaded photos using the configured strategy.
type PhotoStore struct {
	strategy string
	dir      string
}

// NewPhotoStore creates a photo store from the uploads configuration.
func NewPhotoStore(cfg *config.UploadsConfig) *PhotoStore {
	return &PhotoStore{
		strategy: cfg.Strategy,
		dir:      cfg.Dir,
	}
}

// Strategy returns the configured storage strategy.
func (s *PhotoStore) Strategy() string {
	return s.strategy
}

// Dir returns the uploads directory for the file strategy, "" otherwise.
func (s *PhotoStore) Dir() string {
	if s.strategy != config.PhotoStorageFile {
		return ""
	}
	return s.dir
}

// EnsureDir creates the uploads directory. No-op for the base64 strategy.
func (s *PhotoStore) EnsureDir() error {
	if s.strategy != config.PhotoStorageFile {
		return nil
	}
	return os.MkdirAll(s.dir, 0o755)
}

// Store persists the photo bytes and returns the metadata to embed in the
// submission record.
func (s *PhotoStore) Store(name, contentType string, data []byte) (*domain.PhotoMeta, error) {
	meta := &domain.PhotoMeta{
		Name: name,
		Size: int64(len(data)),
		Type: contentType,
	}

	switch s.strategy {
	case config.PhotoStorageBase64:
		meta.Data = base64.StdEncoding.EncodeToString(data)
		return meta, nil

	case config.PhotoStorageFile:
		if err := s.EnsureDir(); err != nil {
			return nil, fmt.Errorf("failed to create uploads directory: %w", err)
		}
		fileName := "car_" + uuid.NewString() + fileExtension(name)
		if err := os.WriteFile(filepath.Join(s.dir, fileName), data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write photo: %w", err)
		}
		meta.Path = PublicPathPrefix + fileName
		return meta, nil

	default:
		return nil, fmt.Errorf("unknown photo storage strategy %q", s.strategy)
	}
}

// fileExtension returns a safe lowercase extension from an uploaded filename.
func fileExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if ext == "" || len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}
