package extract

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/letters-tracker/internal/core/ocr"
)

// OCRAdapter exposes any OCR engine as a TextExtractor.
type OCRAdapter struct {
	engine ocr.Engine
	logger *slog.Logger
}

func NewOCRAdapter(e ocr.Engine, l *slog.Logger) *OCRAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &OCRAdapter{
		engine: e,
		logger: l,
	}
}

func (a *OCRAdapter) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	r, err := a.engine.Extract(ctx, path)
	if len(r.Warnings) > 0 {
		a.logger.Debug("ocr warnings", "path", path, "count", len(r.Warnings))
	}
	if err != nil {
		return TextExtractionResult{SourceType: r.SourceType, Warnings: r.Warnings}, err
	}
	return TextExtractionResult{
		Text:       r.Text,
		Pages:      r.Pages,
		SourceType: r.SourceType,
		Method:     r.Method,
		Language:   r.Language,
		Model:      r.Model,
		Duration:   r.Duration,
		Warnings:   r.Warnings,
		Confidence: r.Confidence,
	}, nil
}
