package repository

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	TableLetterFiles = "letter_files"
	TableExtractJobs = "extract_jobs"

	textSize = 2147483647
)

var (
	LetterFilesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "source_path", Type: field.TypeString, Size: textSize},
		{Name: "storage_key", Type: field.TypeString, Size: textSize},
		{Name: "content_hash", Type: field.TypeString, Unique: true},
		{Name: "file_ext", Type: field.TypeString},
		{Name: "file_size", Type: field.TypeInt64},
		{Name: "uploaded_at", Type: field.TypeTime},
	}
	LetterFilesTable = &schema.Table{
		Name:       TableLetterFiles,
		Columns:    LetterFilesColumns,
		PrimaryKey: []*schema.Column{LetterFilesColumns[0]},
	}

	ExtractJobsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "format", Type: field.TypeString},
		{Name: "status", Type: field.TypeString},
		{Name: "ocr_text", Type: field.TypeString, Size: textSize},
		{Name: "ocr_method", Type: field.TypeString},
		{Name: "ocr_confidence", Type: field.TypeFloat32},
		{Name: "page_count", Type: field.TypeInt},
		{Name: "ocr_model", Type: field.TypeString},
		{Name: "extracted_json", Type: field.TypeString, Size: textSize},
		{Name: "error_message", Type: field.TypeString, Size: textSize},
		{Name: "started_at", Type: field.TypeTime},
		{Name: "finished_at", Type: field.TypeTime, Nullable: true},
		{Name: "file_id", Type: field.TypeUUID},
	}
	ExtractJobsTable = &schema.Table{
		Name:       TableExtractJobs,
		Columns:    ExtractJobsColumns,
		PrimaryKey: []*schema.Column{ExtractJobsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "extract_jobs_letter_files_jobs",
				Columns:    []*schema.Column{ExtractJobsColumns[12]},
				RefColumns: []*schema.Column{LetterFilesColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "extractjob_file_id_started_at",
				Unique:  false,
				Columns: []*schema.Column{ExtractJobsColumns[12], ExtractJobsColumns[10]},
			},
			{
				Name:    "extractjob_status",
				Unique:  false,
				Columns: []*schema.Column{ExtractJobsColumns[2]},
			},
		},
	}

	// Tables holds every table in dependency order.
	Tables = []*schema.Table{
		LetterFilesTable,
		ExtractJobsTable,
	}
)

func init() {
	ExtractJobsTable.ForeignKeys[0].RefTable = LetterFilesTable
}

// Migrate creates or updates the letters schema.
func (d *DB) Migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(d.Driver)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	d.logger.Info("schema migrated", "tables", len(Tables))
	return nil
}
