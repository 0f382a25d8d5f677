package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/letters-tracker/constants"
	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/core/extract"
	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
	"github.com/joseph-ayodele/letters-tracker/internal/entity"
	"github.com/joseph-ayodele/letters-tracker/internal/metrics"
	"github.com/joseph-ayodele/letters-tracker/internal/repository"
	"github.com/joseph-ayodele/letters-tracker/internal/storage"
)

// Notifier is told about every letter that reaches EXTRACT_OK.
type Notifier interface {
	LetterExtracted(ctx context.Context, file *entity.LetterFile, jobID uuid.UUID, rec rules.StructuredRecord) error
}

// Result is the outcome of one extraction run.
type Result struct {
	JobID  uuid.UUID
	Record rules.StructuredRecord
	JSON   []byte
}

// Processor coordinates OCR (text extract) then rule-based field extraction.
type Processor struct {
	logger    *slog.Logger
	text      extract.TextExtractor
	fields    extract.FieldExtractor
	filesRepo repository.LetterFileRepository
	jobsRepo  repository.ExtractJobRepository
	store     storage.ObjectStore
	notifier  Notifier
	metrics   *metrics.Metrics
}

type Option func(*Processor)

func WithNotifier(n Notifier) Option { return func(p *Processor) { p.notifier = n } }

func WithMetrics(m *metrics.Metrics) Option { return func(p *Processor) { p.metrics = m } }

// WithStorage makes the processor read files through the object store
// instead of their source path.
func WithStorage(s storage.ObjectStore) Option { return func(p *Processor) { p.store = s } }

func NewProcessor(
	logger *slog.Logger,
	text extract.TextExtractor,
	fields extract.FieldExtractor,
	filesRepo repository.LetterFileRepository,
	jobsRepo repository.ExtractJobRepository,
	opts ...Option,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{
		logger:    logger,
		text:      text,
		fields:    fields,
		filesRepo: filesRepo,
		jobsRepo:  jobsRepo,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ProcessFile runs OCR for fileID, then extracts the structured record from
// the OCR text and stores it on the same job. Returns the job ID.
func (p *Processor) ProcessFile(ctx context.Context, fileID uuid.UUID) (uuid.UUID, error) {
	file, err := p.filesRepo.GetByID(ctx, fileID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("get file: %w", err)
	}

	jobID, in, err := p.runOCR(ctx, file)
	if err != nil {
		p.logger.Error("processor.ocr.failed", "file_id", fileID, "job_id", jobID, "err", err)
		return jobID, err
	}

	if _, err := p.runExtract(ctx, file, jobID, in); err != nil {
		p.logger.Error("processor.extract.failed", "file_id", fileID, "job_id", jobID, "err", err)
		return jobID, err
	}
	return jobID, nil
}

// ReExtract builds a new record from the newest stored OCR text for fileID.
// OCR is not run again; the result is stored on a fresh job.
func (p *Processor) ReExtract(ctx context.Context, fileID uuid.UUID) (Result, error) {
	file, err := p.filesRepo.GetByID(ctx, fileID)
	if err != nil {
		return Result{}, fmt.Errorf("get file: %w", err)
	}
	prev, err := p.jobsRepo.GetLatestWithText(ctx, fileID)
	if err != nil {
		if common.IsNotFound(err) {
			return Result{}, common.NewAppError("NOT_FOUND", "no OCR text stored for file", err)
		}
		return Result{}, err
	}

	job, err := p.jobsRepo.Start(ctx, fileID, prev.Format)
	if err != nil {
		return Result{}, err
	}
	if err := p.jobsRepo.FinishOCR(ctx, job.ID, repository.OCROutcome{
		Text:       prev.OCRText,
		Method:     prev.OCRMethod,
		Confidence: prev.OCRConfidence,
		Pages:      prev.PageCount,
		Model:      prev.OCRModel,
	}); err != nil {
		return Result{JobID: job.ID}, err
	}
	p.logger.Info("re-extracting from stored text", "file_id", fileID, "job_id", job.ID, "source_job_id", prev.ID)

	return p.runExtract(ctx, file, job.ID, rules.Input{Text: prev.OCRText, PageCount: prev.PageCount, Model: prev.OCRModel})
}

// ExtractText runs the field extraction stage on raw text. Nothing is persisted.
func (p *Processor) ExtractText(ctx context.Context, text string) (Result, error) {
	start := time.Now()
	res, err := p.fields.ExtractFields(ctx, rules.Input{Text: text})
	p.metrics.ObserveStage("extract", time.Since(start))
	if err != nil {
		return Result{Record: res.Record}, err
	}
	return Result{Record: res.Record, JSON: res.JSON}, nil
}

func (p *Processor) runOCR(ctx context.Context, file *entity.LetterFile) (uuid.UUID, rules.Input, error) {
	format := constants.MapExtToFormat(file.FileExt)
	if format == "" {
		return uuid.Nil, rules.Input{}, fmt.Errorf("format %q: %w", file.FileExt, common.ErrUnsupported)
	}

	job, err := p.jobsRepo.Start(ctx, file.ID, format)
	if err != nil {
		return uuid.Nil, rules.Input{}, err
	}

	path, cleanup, err := p.localPath(ctx, file)
	if err != nil {
		p.failOCR(ctx, job.ID, err)
		return job.ID, rules.Input{}, err
	}
	defer cleanup()

	start := time.Now()
	res, err := p.text.Extract(ctx, path)
	p.metrics.ObserveStage("ocr", time.Since(start))
	if err != nil {
		p.failOCR(ctx, job.ID, err)
		return job.ID, rules.Input{}, err
	}
	p.logger.Debug("processor ocr success",
		"file_id", file.ID,
		"job_id", job.ID,
		"method", res.Method,
		"pages", res.Pages,
		"confidence", res.Confidence,
	)

	if err := p.jobsRepo.FinishOCR(ctx, job.ID, repository.OCROutcome{
		Text:       res.Text,
		Method:     res.Method,
		Confidence: res.Confidence,
		Pages:      res.Pages,
		Model:      res.Model,
	}); err != nil {
		return job.ID, rules.Input{}, err
	}
	return job.ID, rules.Input{Text: res.Text, PageCount: res.Pages, Model: res.Model}, nil
}

func (p *Processor) failOCR(ctx context.Context, jobID uuid.UUID, cause error) {
	msg := cause.Error()
	if msg == "" {
		msg = "ocr failed"
	}
	// the caller's ctx may be the reason we failed
	if errors.Is(cause, context.DeadlineExceeded) || errors.Is(cause, context.Canceled) {
		ctx = context.WithoutCancel(ctx)
	}
	if err := p.jobsRepo.FinishOCR(ctx, jobID, repository.OCROutcome{ErrorMessage: msg}); err != nil {
		p.logger.Error("mark ocr failure", "job_id", jobID, "err", err)
	}
	p.metrics.JobFinished(string(constants.JobStatusOCRFailed))
}

func (p *Processor) runExtract(ctx context.Context, file *entity.LetterFile, jobID uuid.UUID, in rules.Input) (Result, error) {
	start := time.Now()
	res, err := p.fields.ExtractFields(ctx, in)
	p.metrics.ObserveStage("extract", time.Since(start))
	if err != nil {
		if ferr := p.jobsRepo.FinishExtractFailure(context.WithoutCancel(ctx), jobID, err.Error()); ferr != nil {
			p.logger.Error("mark extract failure", "job_id", jobID, "err", ferr)
		}
		p.metrics.JobFinished(string(constants.JobStatusExtractFailed))
		return Result{JobID: jobID, Record: res.Record}, fmt.Errorf("extract fields: %w", err)
	}

	if err := p.jobsRepo.FinishExtractSuccess(ctx, jobID, res.JSON); err != nil {
		return Result{JobID: jobID, Record: res.Record}, err
	}
	p.metrics.JobFinished(string(constants.JobStatusExtractOK))

	p.logger.Info("letter extracted",
		"file_id", file.ID,
		"job_id", jobID,
		"letter_type", res.Record.LetterType,
		"letter_date", res.Record.LetterDate,
		"office_name", res.Record.OfficeName,
	)

	if p.notifier != nil {
		if err := p.notifier.LetterExtracted(ctx, file, jobID, res.Record); err != nil {
			p.logger.Warn("notify failed", "job_id", jobID, "err", err)
		}
	}
	return Result{JobID: jobID, Record: res.Record, JSON: res.JSON}, nil
}

// localPath resolves a readable local path for the file.
func (p *Processor) localPath(ctx context.Context, file *entity.LetterFile) (string, func(), error) {
	if p.store == nil || file.StorageKey == "" {
		return file.SourcePath, func() {}, nil
	}
	path, cleanup, err := p.store.Materialize(ctx, file.StorageKey)
	if err != nil {
		return "", nil, fmt.Errorf("materialize %s: %w", file.StorageKey, err)
	}
	return path, cleanup, nil
}
