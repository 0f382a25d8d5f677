package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/letters-tracker/constants"
	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/entity"
	"github.com/joseph-ayodele/letters-tracker/internal/metrics"
	"github.com/joseph-ayodele/letters-tracker/internal/repository"
	"github.com/joseph-ayodele/letters-tracker/internal/storage"
)

// FSIngestor reads from the local filesystem or from uploads.
type FSIngestor struct {
	files   repository.LetterFileRepository
	store   storage.ObjectStore
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewFSIngestor builds an ingestor. store may be nil, in which case files are
// only referenced by their source path.
func NewFSIngestor(files repository.LetterFileRepository, store storage.ObjectStore, logger *slog.Logger, m *metrics.Metrics) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FSIngestor{files: files, store: store, logger: logger, metrics: m, now: time.Now}
}

func (i *FSIngestor) IngestPath(ctx context.Context, path string) (IngestionResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return IngestionResult{}, fmt.Errorf("abs path: %w", err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return IngestionResult{}, fmt.Errorf("open: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			i.logger.Warn("close file", "path", abs, "err", err)
		}
	}()
	return i.ingest(ctx, abs, f)
}

func (i *FSIngestor) IngestReader(ctx context.Context, name string, body io.ReadSeeker) (IngestionResult, error) {
	return i.ingest(ctx, name, body)
}

func (i *FSIngestor) ingest(ctx context.Context, sourcePath string, body io.ReadSeeker) (IngestionResult, error) {
	ext := constants.NormalizeExt(filepath.Ext(sourcePath))
	if ext == "" || !AllowedExt(ext) {
		i.metrics.FileIngested("error")
		return IngestionResult{}, fmt.Errorf("extension %q: %w", ext, common.ErrUnsupported)
	}

	h := sha256.New()
	size, err := io.Copy(h, body)
	if err != nil {
		i.metrics.FileIngested("error")
		return IngestionResult{}, fmt.Errorf("hash: %w", err)
	}
	hashHex := hex.EncodeToString(h.Sum(nil))

	if existing, err := i.files.GetByHash(ctx, hashHex); err == nil {
		i.metrics.FileIngested("duplicate")
		i.logger.Info("file already ingested", "path", sourcePath, "file_id", existing.ID)
		return resultFor(existing, true), nil
	} else if !common.IsNotFound(err) {
		return IngestionResult{}, err
	}

	var key string
	if i.store != nil {
		if _, err := body.Seek(0, io.SeekStart); err != nil {
			return IngestionResult{}, fmt.Errorf("rewind: %w", err)
		}
		key = storage.KeyFor(hashHex, ext)
		if err := i.store.Put(ctx, key, body, constants.ContentTypeForExt(ext)); err != nil {
			i.metrics.FileIngested("error")
			return IngestionResult{}, fmt.Errorf("store object: %w", err)
		}
	}

	row, existed, err := i.files.Upsert(ctx, &entity.LetterFile{
		ID:          uuid.New(),
		SourcePath:  sourcePath,
		StorageKey:  key,
		ContentHash: hashHex,
		FileExt:     ext,
		FileSize:    size,
		UploadedAt:  i.now().UTC(),
	})
	if err != nil {
		i.metrics.FileIngested("error")
		return IngestionResult{}, err
	}
	if existed {
		i.metrics.FileIngested("duplicate")
	} else {
		i.metrics.FileIngested("new")
	}
	i.logger.Info("file ingested", "path", sourcePath, "file_id", row.ID, "bytes", size, "dedup", existed)
	return resultFor(row, existed), nil
}

func resultFor(row *entity.LetterFile, dedup bool) IngestionResult {
	return IngestionResult{
		SourcePath:   row.SourcePath,
		FileID:       row.ID.String(),
		Deduplicated: dedup,
		HashHex:      row.ContentHash,
		FileExt:      row.FileExt,
		StorageKey:   row.StorageKey,
		UploadedAt:   row.UploadedAt,
	}
}

// IngestDirectory walks root, skips hidden if requested,
// and calls IngestPath for each file. Returns per-file results + aggregate stats.
// Per-file failures are recorded in the results and do not stop the walk.
func (i *FSIngestor) IngestDirectory(ctx context.Context, root string, skipHidden bool) ([]IngestionResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, fmt.Errorf("root path is required: %w", common.ErrInvalidInput)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, DirStats{}, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		r, err := i.IngestPath(ctx, root)
		if err != nil {
			return []IngestionResult{{SourcePath: root, Err: err.Error()}}, DirStats{Scanned: 1, Matched: 1, Failed: 1}, nil
		}
		stats := DirStats{Scanned: 1, Matched: 1, Succeeded: 1}
		if r.Deduplicated {
			stats.Deduplicated = 1
		}
		return []IngestionResult{r}, stats, nil
	}

	var results []IngestionResult
	var stats DirStats

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			results = append(results, IngestionResult{SourcePath: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		stats.Scanned++
		if !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		stats.Matched++

		r, err := i.IngestPath(ctx, path)
		if err != nil {
			results = append(results, IngestionResult{SourcePath: path, Err: err.Error()})
			stats.Failed++
			return nil
		}
		results = append(results, r)
		stats.Succeeded++
		if r.Deduplicated {
			stats.Deduplicated++
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	i.logger.Info("directory ingested", "root", root,
		"scanned", stats.Scanned, "matched", stats.Matched, "succeeded", stats.Succeeded,
		"deduplicated", stats.Deduplicated, "failed", stats.Failed)
	return results, stats, err
}
