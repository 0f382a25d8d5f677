// Package storage keeps the original letter scans. Keys are derived from the
// content hash so re-uploads of the same file land on the same object.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/joseph-ayodele/letters-tracker/constants"
	"github.com/joseph-ayodele/letters-tracker/internal/common"
)

type ObjectStore interface {
	Put(ctx context.Context, key string, body io.ReadSeeker, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Materialize returns a local file path for key. Callers must call cleanup when done.
	Materialize(ctx context.Context, key string) (localPath string, cleanup func(), err error)
	Name() string
}

// KeyFor builds the object key for a file: letters/<hash[:2]>/<hash>.<ext>.
func KeyFor(contentHash, ext string) string {
	ext = constants.NormalizeExt(ext)
	prefix := contentHash
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return path.Join("letters", prefix, contentHash+"."+ext)
}

// validateKey rejects empty keys, absolute keys and path traversal segments.
func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return fmt.Errorf("storage key %q: %w", key, common.ErrInvalidInput)
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return fmt.Errorf("path traversal in storage key: %w", common.ErrInvalidInput)
		}
	}
	return nil
}

// New builds the store selected by STORAGE_BACKEND.
func New(ctx context.Context, cfg common.StorageConfig, logger *slog.Logger) (ObjectStore, error) {
	switch cfg.Backend {
	case common.StorageLocal, "":
		return NewLocalStore(cfg.Dir, logger)
	case common.StorageS3:
		return NewS3Store(ctx, S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
		}, logger)
	default:
		return nil, fmt.Errorf("storage backend %q: %w", cfg.Backend, common.ErrUnsupported)
	}
}
