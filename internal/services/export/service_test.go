package export

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/letters-tracker/constants"
	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
	"github.com/joseph-ayodele/letters-tracker/internal/entity"
	"github.com/joseph-ayodele/letters-tracker/internal/repository"
)

var quiet = slog.New(slog.DiscardHandler)

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	return rows
}

func record(date, subject string) rules.StructuredRecord {
	return rules.StructuredRecord{
		ReceivedByOffice: "पोलीस अधीक्षक कार्यालय, जळगाव",
		LetterType:       "तक्रार",
		LetterDate:       date,
		Remarks:          subject,
		ActionType:       rules.DefaultActionType,
		LetterStatus:     constants.LetterStatusPending,
		LetterMedium:     rules.DefaultMedium,
		LetterSubject:    subject,
		OfficeType:       constants.OfficeTypeSP,
		OfficeName:       constants.OfficeJalgaon,
	}
}

func TestWriteRegister(t *testing.T) {
	data, err := WriteRegister([]Row{
		{Record: record("15/03/2024", "अर्ज"), SourcePath: "/in/a.pdf"},
		{Record: record("", "दुसरा अर्ज")},
	})
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "15/03/2024", rows[1][1])
	assert.Equal(t, "पोलीस अधीक्षक कार्यालय, जळगाव", rows[1][2])
	assert.Equal(t, "SP", rows[1][10])
	assert.Equal(t, "जळगाव", rows[1][11])
	assert.Equal(t, "/in/a.pdf", rows[1][13])
	assert.Equal(t, "दुसरा अर्ज", rows[2][5])
}

func TestParseLetterDate(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"15/03/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"०५/०८/२०२५", time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC), true},
		{"5-8-2025", time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC), true},
		{"2025-08-05", time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC), true},
		{"31/02/2025", time.Time{}, false},
		{"5 ऑगस्ट 2025", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseLetterDate(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestService_ExportLettersXLSX(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := repository.Open(ctx, repository.Config{Driver: common.DBDriverSQLite, DSN: dsn}, quiet)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))

	files := repository.NewLetterFileRepository(db, quiet)
	jobs := repository.NewExtractJobRepository(db, quiet)

	seed := func(hash, date, subject string) {
		f, _, err := files.Upsert(ctx, &entity.LetterFile{
			ID: uuid.New(), SourcePath: "/in/" + hash + ".txt", ContentHash: hash, FileExt: "txt", UploadedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
		job, err := jobs.Start(ctx, f.ID, constants.TEXT)
		require.NoError(t, err)
		require.NoError(t, jobs.FinishOCR(ctx, job.ID, repository.OCROutcome{Text: subject, Method: "text"}))
		b, err := rules.MarshalValidated(record(date, subject))
		require.NoError(t, err)
		require.NoError(t, jobs.FinishExtractSuccess(ctx, job.ID, b))
	}
	seed("h1", "15/03/2024", "जुने पत्र")
	seed("h2", "०५/०८/२०२५", "नवीन पत्र")
	seed("h3", "", "तारीख नसलेले पत्र")

	svc := NewService(jobs, files, quiet)

	data, n, err := svc.ExportLettersXLSX(ctx, nil, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, readRows(t, data), 4)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	data, n, err = svc.ExportLettersXLSX(ctx, &from, nil, 0)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	rows := readRows(t, data)
	assert.Equal(t, "नवीन पत्र", rows[1][5])
	assert.Equal(t, "/in/h2.txt", rows[1][13])
}
