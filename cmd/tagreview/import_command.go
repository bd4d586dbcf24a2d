package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tagreview/internal/config"
	"tagreview/internal/dataset"
	"tagreview/internal/importer"
	"tagreview/internal/records"
	"tagreview/internal/workspace"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var sheet string
	var fresh bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a dataset worksheet into the review store",
		Long: "Import rows from an xlsx, csv or tsv dataset. Rows already present in the\n" +
			"store (same source, issue and proposed tags) are skipped and keep their\n" +
			"review state, so re-running an import is safe.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve dataset path: %w", err)
			}
			if strings.TrimSpace(sheet) == "" {
				sheet = cfg.Import.DefaultSheet
			}

			table, err := dataset.Open(source, sheet)
			if err != nil {
				return err
			}
			if err := importer.CheckColumns(table); err != nil {
				return err
			}

			var storePath string
			if fresh {
				ws, err := ctx.workspace()
				if err != nil {
					return err
				}
				if err := ws.Ensure(); err != nil {
					return err
				}
				storePath = filepath.Join(ws.Dir(), workspace.NewName(source, time.Now()))
			} else if storePath, err = ctx.storePath(); err != nil {
				return err
			}

			runCtx := ctx.baseContext(cmd)
			var result importer.Result
			err = ctx.withStoreAt(runCtx, storePath, false, func(store *records.Store) error {
				imp := importer.New(store, importer.Options{
					ArrayDelimiter: cfg.Import.ArrayDelimiter,
					Logger:         ctx.loggerValue(),
				})
				result, err = imp.Import(runCtx, table)
				return err
			})
			if err != nil {
				return err
			}

			if asJSON {
				type rowError struct {
					Row    int    `json:"row"`
					Field  string `json:"field,omitempty"`
					Reason string `json:"reason"`
				}
				payload := struct {
					Store string `json:"store"`
					importer.Result
					Rejections []rowError `json:"rejections,omitempty"`
				}{Store: filepath.Base(storePath), Result: result}
				for _, e := range result.RowErrors {
					payload.Rejections = append(payload.Rejections, rowError{Row: e.Row, Field: e.Field, Reason: e.Reason})
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Store:     %s\n", filepath.Base(storePath))
			fmt.Fprintf(out, "Sheet:     %s\n", result.Sheet)
			fmt.Fprintf(out, "Inserted:  %d\n", result.Inserted)
			fmt.Fprintf(out, "Skipped:   %d (already imported)\n", result.SkippedDuplicate)
			fmt.Fprintf(out, "Rejected:  %d\n", result.Rejected)
			for _, e := range result.RowErrors {
				fmt.Fprintf(out, "  %s\n", e.Error())
			}
			if fresh {
				fmt.Fprintf(out, "Select this store with --db %s\n", filepath.Base(storePath))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "Worksheet to import (defaults to import.default_sheet, then the first sheet)")
	cmd.Flags().BoolVar(&fresh, "new", false, "Create a new store named after the dataset file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newSheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "sheets <file>",
		Short:       "List the worksheets of a dataset",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve dataset path: %w", err)
			}
			sheets, err := dataset.Sheets(source)
			if err != nil {
				return err
			}
			for _, name := range sheets {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
