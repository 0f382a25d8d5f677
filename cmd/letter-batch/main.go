package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/core"
	"github.com/joseph-ayodele/letters-tracker/internal/core/extract"
	"github.com/joseph-ayodele/letters-tracker/internal/core/ocr"
	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
	"github.com/joseph-ayodele/letters-tracker/internal/ingest"
	repo "github.com/joseph-ayodele/letters-tracker/internal/repository"
	"github.com/joseph-ayodele/letters-tracker/internal/services/export"
	"github.com/joseph-ayodele/letters-tracker/internal/storage"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	fs := pflag.NewFlagSet("letter-batch", pflag.ExitOnError)
	var (
		inmem       = fs.Bool("inmem", false, "use an in-memory SQLite database")
		dir         = fs.String("dir", "", "directory to process letters from (required)")
		out         = fs.String("out", "", "output XLSX file path (defaults to letters.xlsx next to --dir)")
		fromStr     = fs.String("from", "", "from letter date YYYY-MM-DD")
		toStr       = fs.String("to", "", "to letter date YYYY-MM-DD")
		concurrency = fs.Int("concurrency", 4, "files processed in parallel")
		logLevel    = fs.String("log-level", "info", "log level")
	)
	fs.String("db-driver", common.DBDriverPostgres, "database driver when not --inmem")
	fs.String("db-url", "", "database DSN when not --inmem")
	fs.String("ocr-engine", common.OCREngineTesseract, "OCR engine: tesseract or mistral")
	_ = fs.Parse(os.Args[1:])

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(filepath.Clean(*dir)), "letters.xlsx")
	}

	var from, to *time.Time
	for _, p := range []struct {
		name string
		raw  string
		dst  **time.Time
	}{{"from", *fromStr, &from}, {"to", *toStr, &to}} {
		if p.raw == "" {
			continue
		}
		parsed, err := time.Parse(time.DateOnly, p.raw)
		if err != nil {
			printError("Error: invalid --%s date format, use YYYY-MM-DD: %v\n", p.name, err)
			os.Exit(1)
		}
		*p.dst = &parsed
	}

	logger := common.NewCLILogger(os.Stderr, *logLevel)
	ctx := context.Background()

	cfg, err := common.LoadConfig(fs)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	dbCfg := repo.ConfigFrom(cfg.Database)
	if *inmem {
		dbCfg = repo.Config{Driver: common.DBDriverSQLite, DSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared"}
	}
	db, err := repo.Open(ctx, dbCfg, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	filesRepo := repo.NewLetterFileRepository(db, logger)
	jobsRepo := repo.NewExtractJobRepository(db, logger)

	store, err := storage.New(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	engine, err := ocr.NewEngine(cfg.OCR, logger)
	if err != nil {
		logger.Error("failed to build ocr engine", "error", err)
		os.Exit(1)
	}

	processor := core.NewProcessor(logger,
		extract.NewOCRAdapter(engine, logger),
		extract.NewRulesExtractor(rules.NewExtractor(logger, rules.WithYearWindow(cfg.Engine.DateYearWindow))),
		filesRepo, jobsRepo,
		core.WithStorage(store),
	)
	ingestor := ingest.NewFSIngestor(filesRepo, store, logger, nil)

	logger.Info("starting ingestion", "dir", *dir)
	results, stats, err := ingestor.IngestDirectory(ctx, *dir, true)
	if err != nil {
		logger.Error("failed to ingest directory", "error", err)
		os.Exit(1)
	}

	var ingested []uuid.UUID
	for _, r := range results {
		if r.Err != "" {
			continue
		}
		fileID, err := uuid.Parse(r.FileID)
		if err != nil {
			logger.Error("failed to parse file ID", "file_id", r.FileID, "error", err)
			continue
		}
		ingested = append(ingested, fileID)
	}
	logger.Info("ingestion complete",
		"files_ingested", len(ingested),
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"deduplicated", stats.Deduplicated)

	var processed, failures atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, *concurrency))
	for _, fileID := range ingested {
		g.Go(func() error {
			if _, err := processor.ProcessFile(gctx, fileID); err != nil {
				logger.Error("failed to process file", "file_id", fileID, "error", err)
				failures.Add(1)
				return nil
			}
			processed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	logger.Info("exporting to XLSX", "output", *out)
	xlsx, rows, err := export.NewService(jobsRepo, filesRepo, logger).ExportLettersXLSX(ctx, from, to, 0)
	if err != nil {
		logger.Error("failed to export letters", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsx, 0o644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files ingested: %d\n", len(ingested))
	fmt.Printf("- Files processed: %d\n", processed.Load())
	fmt.Printf("- Failures: %d\n", failures.Load())
	fmt.Printf("- Register rows: %d\n", rows)
	fmt.Printf("- Output: %s\n", *out)
}
