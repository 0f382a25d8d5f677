package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/letters-tracker/constants"
	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/entity"
)

// OCROutcome is the result of the OCR stage. A non-empty ErrorMessage marks the job OCR_FAILED.
type OCROutcome struct {
	Text         string
	Method       string
	Confidence   float32
	Pages        int
	Model        string
	ErrorMessage string
}

type ExtractJobRepository interface {
	Start(ctx context.Context, fileID uuid.UUID, format string) (*entity.ExtractJob, error)
	FinishOCR(ctx context.Context, jobID uuid.UUID, out OCROutcome) error
	FinishExtractSuccess(ctx context.Context, jobID uuid.UUID, extracted []byte) error
	FinishExtractFailure(ctx context.Context, jobID uuid.UUID, message string) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ExtractJob, error)
	GetLatestByFile(ctx context.Context, fileID uuid.UUID) (*entity.ExtractJob, error)
	// GetLatestWithText returns the newest job for the file that stored OCR text.
	GetLatestWithText(ctx context.Context, fileID uuid.UUID) (*entity.ExtractJob, error)
	ListSucceeded(ctx context.Context, limit int) ([]*entity.ExtractJob, error)
}

var extractJobColumns = []string{
	"id", "file_id", "format", "status", "ocr_text", "ocr_method", "ocr_confidence",
	"page_count", "ocr_model", "extracted_json", "error_message", "started_at", "finished_at",
}

type extractJobRepo struct {
	db  *DB
	log *slog.Logger
	now func() time.Time
}

func NewExtractJobRepository(db *DB, log *slog.Logger) ExtractJobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &extractJobRepo{db: db, log: log, now: time.Now}
}

func (r *extractJobRepo) Start(ctx context.Context, fileID uuid.UUID, format string) (*entity.ExtractJob, error) {
	job := &entity.ExtractJob{
		ID:        uuid.New(),
		FileID:    fileID,
		Format:    format,
		Status:    constants.JobStatusRunning,
		StartedAt: r.now().UTC(),
	}
	query, args := r.db.builder().Insert(TableExtractJobs).
		Columns(extractJobColumns...).
		Values(job.ID, job.FileID, job.Format, string(job.Status), "", "", float32(0), 0, "", "", "", job.StartedAt, nil).
		Query()
	if err := r.db.Driver.Exec(ctx, query, args, nil); err != nil {
		r.log.Error("extract_job start failed", "file_id", fileID, "err", err)
		return nil, fmt.Errorf("start extract job: %w", err)
	}
	r.log.Info("extract_job started", "job_id", job.ID, "file_id", fileID, "format", format)
	return job, nil
}

func (r *extractJobRepo) FinishOCR(ctx context.Context, jobID uuid.UUID, out OCROutcome) error {
	u := r.db.builder().Update(TableExtractJobs).
		Set("ocr_text", out.Text).
		Set("ocr_method", out.Method).
		Set("ocr_confidence", out.Confidence).
		Set("page_count", out.Pages).
		Set("ocr_model", out.Model)
	status := constants.JobStatusOCROK
	if out.ErrorMessage != "" {
		status = constants.JobStatusOCRFailed
		u.Set("error_message", out.ErrorMessage).Set("finished_at", r.now().UTC())
	}
	u.Set("status", string(status)).Where(entsql.EQ("id", jobID))
	if err := r.update(ctx, u); err != nil {
		r.log.Error("extract_job finish(OCR) failed", "job_id", jobID, "err", err)
		return err
	}
	if status == constants.JobStatusOCRFailed {
		r.log.Warn("extract_job finished (OCR_FAILED)", "job_id", jobID, "error", out.ErrorMessage)
	} else {
		r.log.Info("extract_job ocr stored (OCR_OK)", "job_id", jobID, "method", out.Method, "pages", out.Pages)
	}
	return nil
}

func (r *extractJobRepo) FinishExtractSuccess(ctx context.Context, jobID uuid.UUID, extracted []byte) error {
	u := r.db.builder().Update(TableExtractJobs).
		Set("extracted_json", string(extracted)).
		Set("status", string(constants.JobStatusExtractOK)).
		Set("error_message", "").
		Set("finished_at", r.now().UTC()).
		Where(entsql.EQ("id", jobID))
	if err := r.update(ctx, u); err != nil {
		r.log.Error("extract_job finish(EXTRACT_OK) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Info("extract_job finished (EXTRACT_OK)", "job_id", jobID)
	return nil
}

func (r *extractJobRepo) FinishExtractFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	u := r.db.builder().Update(TableExtractJobs).
		Set("status", string(constants.JobStatusExtractFailed)).
		Set("error_message", message).
		Set("finished_at", r.now().UTC()).
		Where(entsql.EQ("id", jobID))
	if err := r.update(ctx, u); err != nil {
		r.log.Error("extract_job finish(EXTRACT_FAILED) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Warn("extract_job finished (EXTRACT_FAILED)", "job_id", jobID, "error", message)
	return nil
}

func (r *extractJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*entity.ExtractJob, error) {
	b := r.db.builder()
	return r.one(ctx, b.Select(extractJobColumns...).From(b.Table(TableExtractJobs)).Where(entsql.EQ("id", jobID)))
}

func (r *extractJobRepo) GetLatestByFile(ctx context.Context, fileID uuid.UUID) (*entity.ExtractJob, error) {
	b := r.db.builder()
	return r.one(ctx, b.Select(extractJobColumns...).
		From(b.Table(TableExtractJobs)).
		Where(entsql.EQ("file_id", fileID)).
		OrderBy(entsql.Desc("started_at")))
}

func (r *extractJobRepo) GetLatestWithText(ctx context.Context, fileID uuid.UUID) (*entity.ExtractJob, error) {
	b := r.db.builder()
	return r.one(ctx, b.Select(extractJobColumns...).
		From(b.Table(TableExtractJobs)).
		Where(entsql.And(entsql.EQ("file_id", fileID), entsql.NEQ("ocr_text", ""))).
		OrderBy(entsql.Desc("started_at")))
}

func (r *extractJobRepo) ListSucceeded(ctx context.Context, limit int) ([]*entity.ExtractJob, error) {
	if limit <= 0 {
		limit = 1000
	}
	b := r.db.builder()
	jobs, err := r.all(ctx, b.Select(extractJobColumns...).
		From(b.Table(TableExtractJobs)).
		Where(entsql.EQ("status", string(constants.JobStatusExtractOK))).
		OrderBy(entsql.Desc("finished_at")).
		Limit(limit))
	if err != nil {
		r.log.Error("list succeeded extract_jobs failed", "err", err)
		return nil, err
	}
	return jobs, nil
}

func (r *extractJobRepo) update(ctx context.Context, u *entsql.UpdateBuilder) error {
	query, args := u.Query()
	var res sql.Result
	if err := r.db.Driver.Exec(ctx, query, args, &res); err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("extract job: %w", common.ErrNotFound)
	}
	return nil
}

func (r *extractJobRepo) one(ctx context.Context, sel *entsql.Selector) (*entity.ExtractJob, error) {
	jobs, err := r.all(ctx, sel.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("extract job: %w", common.ErrNotFound)
	}
	return jobs[0], nil
}

func (r *extractJobRepo) all(ctx context.Context, sel *entsql.Selector) ([]*entity.ExtractJob, error) {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query extract jobs: %w", err)
	}
	defer rows.Close()

	var out []*entity.ExtractJob
	for rows.Next() {
		var (
			j         entity.ExtractJob
			status    string
			extracted string
			finished  sql.NullTime
		)
		if err := rows.Scan(&j.ID, &j.FileID, &j.Format, &status, &j.OCRText, &j.OCRMethod, &j.OCRConfidence,
			&j.PageCount, &j.OCRModel, &extracted, &j.ErrorMessage, &j.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scan extract job: %w", err)
		}
		j.Status = constants.JobStatus(status)
		if extracted != "" {
			j.ExtractedJSON = []byte(extracted)
		}
		if finished.Valid {
			t := finished.Time
			j.FinishedAt = &t
		}
		out = append(out, &j)
	}
	return out, rows.Err()
}
