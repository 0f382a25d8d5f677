package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/letters-tracker/internal/common"
	"github.com/joseph-ayodele/letters-tracker/internal/core/rules"
)

type extractOptions struct {
	yearWindow int
	today      string
	table      bool
	logLevel   string
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

func runExtract(cmd *cobra.Command, opts *extractOptions, args []string) error {
	logger := common.NewCLILogger(cmd.ErrOrStderr(), opts.logLevel)

	ruleOpts := []rules.Option{rules.WithYearWindow(opts.yearWindow)}
	if opts.today != "" {
		today, err := time.Parse(time.DateOnly, opts.today)
		if err != nil {
			return fmt.Errorf("--today must be YYYY-MM-DD: %w", err)
		}
		ruleOpts = append(ruleOpts, rules.WithClock(func() time.Time { return today }))
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	rec := rules.NewExtractor(logger, ruleOpts...).Extract(rules.Input{Text: string(text)})
	out := cmd.OutOrStdout()

	if opts.table {
		for _, f := range rec.Fields() {
			fmt.Fprintf(out, "%-28s %s\n", f.Key, f.Value)
		}
		return nil
	}

	b, err := rules.MarshalValidated(rec)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, b, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(out)
	return err
}

func runValidate(cmd *cobra.Command, args []string) error {
	b, err := readInput(cmd, args)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if err := rules.ValidateRecordJSON(b); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "OK")
	return nil
}
