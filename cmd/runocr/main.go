package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/core/ocr"
	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
)

func main() {
	fs := pflag.NewFlagSet("runocr", pflag.ExitOnError)
	engineName := fs.String("ocr-engine", common.OCREngineTesseract, "OCR engine: tesseract or mistral")
	withFields := fs.Bool("fields", false, "also print the extracted record")
	logLevel := fs.String("log-level", "info", "log level")
	_ = fs.Parse(os.Args[1:])

	logger := common.NewCLILogger(os.Stderr, *logLevel)
	if fs.NArg() != 1 {
		logger.Error("usage", "cmd", "runocr [--fields] <letter-file>")
		os.Exit(2)
	}
	path := fs.Arg(0)

	cfg, err := common.LoadConfig(nil)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(2)
	}
	cfg.OCR.Engine = *engineName

	engine, err := ocr.NewEngine(cfg.OCR, logger)
	if err != nil {
		logger.Error("build ocr engine", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	res, err := engine.Extract(ctx, path)
	if err != nil {
		logger.Error("text extraction failed", "path", path, "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}
	logger.Info("text extraction OK",
		"method", res.Method,
		"pages", res.Pages,
		"confidence", res.Confidence,
		"runes", len([]rune(res.Text)),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	fmt.Println(res.Text)

	if *withFields {
		rec := rules.NewExtractor(logger, rules.WithYearWindow(cfg.Engine.DateYearWindow)).
			Extract(rules.Input{Text: res.Text, PageCount: res.Pages, Model: res.Model})
		b, err := rules.MarshalValidated(rec)
		if err != nil {
			logger.Error("record failed validation", "error", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
	}
}
