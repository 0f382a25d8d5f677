package async

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job asks the workers to run the full pipeline for one stored file.
type Job struct {
	FileID      uuid.UUID
	SubmittedAt time.Time
	RequestID   string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

// Processor is the work each queued job runs.
type Processor interface {
	ProcessFile(ctx context.Context, fileID uuid.UUID) (uuid.UUID, error)
}
