package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/letters-tracker/constants"
)

// ExtractJob records one OCR + extraction attempt for a LetterFile.
type ExtractJob struct {
	ID            uuid.UUID           `json:"id"`
	FileID        uuid.UUID           `json:"file_id"`
	Format        string              `json:"format"`
	Status        constants.JobStatus `json:"status"`
	OCRText       string              `json:"ocr_text,omitempty"`
	OCRMethod     string              `json:"ocr_method,omitempty"`
	OCRConfidence float32             `json:"ocr_confidence,omitempty"`
	PageCount     int                 `json:"page_count,omitempty"`
	OCRModel      string              `json:"ocr_model,omitempty"`
	ExtractedJSON json.RawMessage     `json:"extracted_json,omitempty"`
	ErrorMessage  string              `json:"error_message,omitempty"`
	StartedAt     time.Time           `json:"started_at"`
	FinishedAt    *time.Time          `json:"finished_at,omitempty"`
}

// HasOCRText reports whether the job carries text a re-extraction can use.
func (j *ExtractJob) HasOCRText() bool {
	return j != nil && j.OCRText != ""
}
