// Package ingest registers letter files: it hashes them, stores the original
// object and upserts the letter_files row, deduplicating by content hash.
package ingest

import (
	"context"
	"io"
	"time"
)

// IngestionResult is the per-file ingest outcome.
type IngestionResult struct {
	SourcePath   string
	FileID       string
	Deduplicated bool
	HashHex      string
	FileExt      string
	StorageKey   string
	UploadedAt   time.Time
	Err          string
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Succeeded    uint32
	Deduplicated uint32
	Failed       uint32
}

type Ingestor interface {
	IngestPath(ctx context.Context, path string) (IngestionResult, error)
	IngestDirectory(ctx context.Context, root string, skipHidden bool) ([]IngestionResult, DirStats, error)
	// IngestReader registers an upload. name only supplies the extension and the recorded source path.
	IngestReader(ctx context.Context, name string, body io.ReadSeeker) (IngestionResult, error)
}
