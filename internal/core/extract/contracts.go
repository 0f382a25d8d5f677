package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
)

// TextExtractor is Stage 1: file -> text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // "PDF" | "IMAGE" | "TEXT"
	Method     string
	Language   string
	Model      string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// FieldExtractor is Stage 2: text -> structured letter record.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, in rules.Input) (FieldsResult, error)
}

type FieldsResult struct {
	Record rules.StructuredRecord
	// JSON is the schema-validated encoding of Record.
	JSON []byte
}
