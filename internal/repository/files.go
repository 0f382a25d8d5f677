package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/entity"
)

type LetterFileRepository interface {
	// Upsert inserts f unless a file with the same content hash exists.
	// It returns the stored row and whether it already existed.
	Upsert(ctx context.Context, f *entity.LetterFile) (*entity.LetterFile, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LetterFile, error)
	GetByHash(ctx context.Context, hash string) (*entity.LetterFile, error)
	List(ctx context.Context, limit, offset int) ([]*entity.LetterFile, error)
}

var letterFileColumns = []string{
	"id", "source_path", "storage_key", "content_hash", "file_ext", "file_size", "uploaded_at",
}

type letterFileRepo struct {
	db     *DB
	logger *slog.Logger
}

func NewLetterFileRepository(db *DB, logger *slog.Logger) LetterFileRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &letterFileRepo{db: db, logger: logger}
}

func (r *letterFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.LetterFile, error) {
	b := r.db.builder()
	sel := b.Select(letterFileColumns...).From(b.Table(TableLetterFiles)).Where(entsql.EQ("id", id))
	return r.one(ctx, sel)
}

func (r *letterFileRepo) GetByHash(ctx context.Context, hash string) (*entity.LetterFile, error) {
	b := r.db.builder()
	sel := b.Select(letterFileColumns...).From(b.Table(TableLetterFiles)).Where(entsql.EQ("content_hash", hash))
	return r.one(ctx, sel)
}

func (r *letterFileRepo) List(ctx context.Context, limit, offset int) ([]*entity.LetterFile, error) {
	if limit <= 0 {
		limit = 100
	}
	b := r.db.builder()
	sel := b.Select(letterFileColumns...).
		From(b.Table(TableLetterFiles)).
		OrderBy(entsql.Desc("uploaded_at")).
		Limit(limit).
		Offset(offset)
	files, err := r.all(ctx, sel)
	if err != nil {
		r.logger.Error("failed to list letter files", "err", err)
		return nil, err
	}
	return files, nil
}

func (r *letterFileRepo) Upsert(ctx context.Context, f *entity.LetterFile) (*entity.LetterFile, bool, error) {
	if f.ContentHash == "" {
		return nil, false, common.NewAppError("INVALID_ARGUMENT", "content hash is required", common.ErrInvalidInput)
	}
	if existing, err := r.GetByHash(ctx, f.ContentHash); err == nil {
		return existing, true, nil
	} else if !common.IsNotFound(err) {
		return nil, false, err
	}

	id := f.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	uploadedAt := f.UploadedAt
	if uploadedAt.IsZero() {
		uploadedAt = time.Now()
	}
	query, args := r.db.builder().Insert(TableLetterFiles).
		Columns(letterFileColumns...).
		Values(id, f.SourcePath, f.StorageKey, f.ContentHash, f.FileExt, f.FileSize, uploadedAt.UTC()).
		OnConflict(entsql.ConflictColumns("content_hash"), entsql.DoNothing()).
		Query()
	if err := r.db.Driver.Exec(ctx, query, args, nil); err != nil {
		r.logger.Error("failed to upsert letter file by hash", "source_path", f.SourcePath, "err", err)
		return nil, false, fmt.Errorf("insert letter file: %w", err)
	}

	row, err := r.GetByHash(ctx, f.ContentHash)
	if err != nil {
		return nil, false, err
	}
	// a concurrent writer won the insert
	existed := row.ID != id
	if !existed {
		r.logger.Info("letter file stored", "file_id", row.ID, "ext", row.FileExt, "size", row.FileSize)
	}
	return row, existed, nil
}

func (r *letterFileRepo) one(ctx context.Context, sel *entsql.Selector) (*entity.LetterFile, error) {
	files, err := r.all(ctx, sel.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("letter file: %w", common.ErrNotFound)
	}
	return files[0], nil
}

func (r *letterFileRepo) all(ctx context.Context, sel *entsql.Selector) ([]*entity.LetterFile, error) {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.db.Driver.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query letter files: %w", err)
	}
	defer rows.Close()

	var out []*entity.LetterFile
	for rows.Next() {
		var f entity.LetterFile
		if err := rows.Scan(&f.ID, &f.SourcePath, &f.StorageKey, &f.ContentHash, &f.FileExt, &f.FileSize, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan letter file: %w", err)
		}
		out = append(out, &f)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return out, nil
}
