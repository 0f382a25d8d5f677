package entity

import (
	"time"

	"github.com/google/uuid"
)

// LetterFile is an uploaded letter scan, deduplicated by content hash.
type LetterFile struct {
	ID          uuid.UUID `json:"id"`
	SourcePath  string    `json:"source_path"`
	StorageKey  string    `json:"storage_key"`
	ContentHash string    `json:"content_hash"`
	FileExt     string    `json:"file_ext"`
	FileSize    int64     `json:"file_size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
