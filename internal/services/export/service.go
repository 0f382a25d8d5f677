package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
	"github.com/joseph-ayodele/letters-tracker/internal/repository"
)

const SheetName = "Letters"

// Row is one register line.
type Row struct {
	Record      rules.StructuredRecord
	SourcePath  string
	ExtractedAt time.Time
}

// Headers of the register, in column order.
var Headers = []string{
	"Sr. No.",
	"Letter Date",
	"Received By Office",
	"Recipient Name & Designation",
	"Letter Type",
	"Subject",
	"Mobile Number",
	"Action Type",
	"Letter Medium",
	"Status",
	"Office Type",
	"Office Name",
	"Remarks",
	"File",
}

// Service is a tiny façade over repositories that produces XLSX bytes for exports.
type Service struct {
	jobsRepo  repository.ExtractJobRepository
	filesRepo repository.LetterFileRepository
	logger    *slog.Logger
}

func NewService(jobsRepo repository.ExtractJobRepository, filesRepo repository.LetterFileRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{jobsRepo: jobsRepo, filesRepo: filesRepo, logger: logger}
}

// ExportLettersXLSX returns the register of extracted letters whose letter
// date falls in [from, to]. Either bound may be nil. Letters without a
// parseable date are only included when no bound is given.
func (s *Service) ExportLettersXLSX(ctx context.Context, from, to *time.Time, limit int) ([]byte, int, error) {
	start := time.Now()
	jobs, err := s.jobsRepo.ListSucceeded(ctx, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("query jobs: %w", err)
	}

	filtered := from != nil || to != nil
	paths := map[string]string{}
	rows := make([]Row, 0, len(jobs))
	for _, j := range jobs {
		var rec rules.StructuredRecord
		if err := json.Unmarshal(j.ExtractedJSON, &rec); err != nil {
			s.logger.Warn("skip job with bad extracted_json", "job_id", j.ID, "err", err)
			continue
		}
		if filtered {
			d, ok := ParseLetterDate(rec.LetterDate)
			if !ok || (from != nil && d.Before(dateOnly(*from))) || (to != nil && d.After(dateOnly(*to))) {
				continue
			}
		}

		fid := j.FileID.String()
		path, seen := paths[fid]
		if !seen {
			if f, err := s.filesRepo.GetByID(ctx, j.FileID); err == nil {
				path = f.SourcePath
			}
			paths[fid] = path
		}
		row := Row{Record: rec, SourcePath: path}
		if j.FinishedAt != nil {
			row.ExtractedAt = *j.FinishedAt
		}
		rows = append(rows, row)
	}

	buf, err := WriteRegister(rows)
	if err != nil {
		return nil, 0, err
	}
	s.logger.Info("export.xlsx.ok",
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf, len(rows), nil
}

// WriteRegister renders rows into an XLSX workbook.
func WriteRegister(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}
	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(Headers), 1)
		_ = f.SetCellStyle(SheetName, "A1", last, style)
	}

	for i, r := range rows {
		rec := r.Record
		values := []any{
			i + 1,
			rec.LetterDate,
			rec.ReceivedByOffice,
			rec.RecipientNameAndDesignation,
			rec.LetterType,
			rec.LetterSubject,
			rec.MobileNumber,
			rec.ActionType,
			rec.LetterMedium,
			string(rec.LetterStatus),
			string(rec.OfficeType),
			string(rec.OfficeName),
			rec.Remarks,
			r.SourcePath,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 8)
	_ = f.SetColWidth(SheetName, "B", "B", 14)
	_ = f.SetColWidth(SheetName, "C", "D", 36)
	_ = f.SetColWidth(SheetName, "E", "F", 40)
	_ = f.SetColWidth(SheetName, "G", "L", 16)
	_ = f.SetColWidth(SheetName, "M", "M", 60)
	_ = f.SetColWidth(SheetName, "N", "N", 48)
	_ = f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	reDMY = regexp.MustCompile(`^([0-9]{1,2})[ \t]*[/\-.][ \t]*([0-9]{1,2})[ \t]*[/\-.][ \t]*([0-9]{4})$`)
	reISO = regexp.MustCompile(`^([0-9]{4})-([0-9]{2})-([0-9]{2})$`)
)

// ParseLetterDate reads the numeric date forms the extractor produces
// (dd/mm/yyyy with / - or . separators, and yyyy-mm-dd). Devanagari digits are accepted.
func ParseLetterDate(s string) (time.Time, bool) {
	s = rules.NormalizeDigits(s)
	var y, m, d int
	if mm := reISO.FindStringSubmatch(s); mm != nil {
		y, m, d = atoi(mm[1]), atoi(mm[2]), atoi(mm[3])
	} else if mm := reDMY.FindStringSubmatch(s); mm != nil {
		d, m, y = atoi(mm[1]), atoi(mm[2]), atoi(mm[3])
	} else {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != m {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
