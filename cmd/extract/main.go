package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &extractOptions{}
	cmd := &cobra.Command{
		Use:           "extract [file]",
		Short:         "Extract the structured record from OCR text of a government letter",
		Long:          "Reads OCR text from file, or from stdin when no file is given, and prints the extracted record as JSON.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.yearWindow, "year-window", 5, "accepted distance in years between a letter date and today")
	f.StringVar(&opts.today, "today", "", "reference date YYYY-MM-DD for the year window (default: now)")
	f.BoolVar(&opts.table, "table", false, "print field/value lines instead of JSON")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	cmd.AddCommand(newValidateCommand())
	return cmd
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a record JSON document against the record schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args)
		},
	}
}
