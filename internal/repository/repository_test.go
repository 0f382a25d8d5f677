package repository

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/letters-tracker/constants"
	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/entity"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := Open(context.Background(), Config{Driver: common.DBDriverSQLite, DSN: dsn}, logger)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func newFile(hash string) *entity.LetterFile {
	return &entity.LetterFile{
		SourcePath:  "/scans/" + hash + ".pdf",
		StorageKey:  "letters/" + hash + ".pdf",
		ContentHash: hash,
		FileExt:     "pdf",
		FileSize:    1024,
		UploadedAt:  time.Date(2025, 8, 5, 9, 30, 0, 0, time.UTC),
	}
}

func TestLetterFileRepository_UpsertDedupesByHash(t *testing.T) {
	ctx := context.Background()
	repo := NewLetterFileRepository(openTestDB(t), nil)

	first, existed, err := repo.Upsert(ctx, newFile("abc123"))
	require.NoError(t, err)
	assert.False(t, existed)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, "letters/abc123.pdf", first.StorageKey)
	assert.Equal(t, int64(1024), first.FileSize)
	assert.True(t, first.UploadedAt.Equal(time.Date(2025, 8, 5, 9, 30, 0, 0, time.UTC)))

	again, existed, err := repo.Upsert(ctx, newFile("abc123"))
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, first.ID, again.ID)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.ContentHash)

	_, err = repo.GetByHash(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = repo.GetByID(ctx, uuid.New())
	assert.True(t, common.IsNotFound(err))

	_, _, err = repo.Upsert(ctx, &entity.LetterFile{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestLetterFileRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewLetterFileRepository(openTestDB(t), nil)
	for i, h := range []string{"h1", "h2", "h3"} {
		f := newFile(h)
		f.UploadedAt = f.UploadedAt.Add(time.Duration(i) * time.Hour)
		_, _, err := repo.Upsert(ctx, f)
		require.NoError(t, err)
	}

	files, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "h3", files[0].ContentHash)
	assert.Equal(t, "h2", files[1].ContentHash)

	rest, err := repo.List(ctx, 10, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "h1", rest[0].ContentHash)
}

func TestExtractJobRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	files := NewLetterFileRepository(db, nil)
	jobs := NewExtractJobRepository(db, nil).(*extractJobRepo)

	clock := time.Date(2025, 8, 5, 10, 0, 0, 0, time.UTC)
	jobs.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	f, _, err := files.Upsert(ctx, newFile("job-file"))
	require.NoError(t, err)

	job, err := jobs.Start(ctx, f.ID, constants.PDF)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusRunning, job.Status)

	require.NoError(t, jobs.FinishOCR(ctx, job.ID, OCROutcome{
		Text: "विषय: तक्रार", Method: "pdf-text", Confidence: 0.9, Pages: 2, Model: "pdftotext",
	}))
	got, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusOCROK, got.Status)
	assert.Equal(t, "विषय: तक्रार", got.OCRText)
	assert.Equal(t, 2, got.PageCount)
	assert.InDelta(t, 0.9, got.OCRConfidence, 0.0001)
	assert.Nil(t, got.FinishedAt)

	require.NoError(t, jobs.FinishExtractSuccess(ctx, job.ID, []byte(`{"letterStatus":"pending"}`)))
	got, err = jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusExtractOK, got.Status)
	assert.JSONEq(t, `{"letterStatus":"pending"}`, string(got.ExtractedJSON))
	require.NotNil(t, got.FinishedAt)
	assert.True(t, got.Status.Terminal())

	failed, err := jobs.Start(ctx, f.ID, constants.PDF)
	require.NoError(t, err)
	require.NoError(t, jobs.FinishOCR(ctx, failed.ID, OCROutcome{ErrorMessage: "tesseract: exit status 1"}))

	latest, err := jobs.GetLatestByFile(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, failed.ID, latest.ID)
	assert.Equal(t, constants.JobStatusOCRFailed, latest.Status)
	assert.Equal(t, "tesseract: exit status 1", latest.ErrorMessage)

	withText, err := jobs.GetLatestWithText(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, withText.ID)

	ok, err := jobs.ListSucceeded(ctx, 0)
	require.NoError(t, err)
	require.Len(t, ok, 1)
	assert.Equal(t, job.ID, ok[0].ID)

	require.NoError(t, jobs.FinishExtractFailure(ctx, failed.ID, "schema mismatch"))
	assert.ErrorIs(t, jobs.FinishExtractFailure(ctx, uuid.New(), "x"), common.ErrNotFound)
	_, err = jobs.GetLatestByFile(ctx, uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestExtractJobRepository_StartRequiresFile(t *testing.T) {
	jobs := NewExtractJobRepository(openTestDB(t), nil)
	_, err := jobs.Start(context.Background(), uuid.New(), constants.PDF)
	assert.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	assert.NoError(t, openTestDB(t).HealthCheck(context.Background(), time.Second))
}
