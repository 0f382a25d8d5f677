package ocr

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
)

// NewEngine builds the engine selected by OCR_ENGINE.
func NewEngine(cfg common.OCRConfig, logger *slog.Logger) (Engine, error) {
	switch cfg.Engine {
	case common.OCREngineTesseract, "":
		return NewExtractor(Config{
			TesseractLang:       cfg.Lang,
			TessdataDir:         cfg.TessdataDir,
			EnableTSVConfidence: true,
		}, logger), nil
	case common.OCREngineMistral:
		if cfg.MistralAPIKey == "" {
			return nil, common.NewAppError("CONFIG_ERROR", "MISTRAL_API_KEY is required", common.ErrInvalidInput)
		}
		return NewMistralClient(MistralConfig{
			APIKey:  cfg.MistralAPIKey,
			BaseURL: cfg.MistralBaseURL,
			Model:   cfg.MistralModel,
			Timeout: cfg.Timeout,
		}, logger), nil
	default:
		return nil, fmt.Errorf("ocr engine %q: %w", cfg.Engine, common.ErrUnsupported)
	}
}
