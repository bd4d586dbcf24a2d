package main

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tagreview/internal/config"
	"tagreview/internal/export"
	"tagreview/internal/fileutil"
	"tagreview/internal/records"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write summary or full exports",
	}
	exportCmd.AddCommand(newExportSummaryCommand(ctx))
	exportCmd.AddCommand(newExportFullCommand(ctx))
	return exportCmd
}

func newExportSummaryCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags
	var outPath string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Export Source, Label, ProposedTags, ReviewedTags and Notes as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			f, err := filters.filter()
			if err != nil {
				return err
			}
			runCtx := ctx.baseContext(cmd)
			return ctx.withStore(runCtx, true, func(store *records.Store) error {
				exp := export.New(store, cfg.Export.TagDelimiter, ctx.loggerValue())
				rows, err := exp.Summary(runCtx, f)
				if err != nil {
					return err
				}
				var buf bytes.Buffer
				if err := exp.WriteSummaryCSV(&buf, rows); err != nil {
					return err
				}
				target := exportTarget(cfg, outPath, export.FileName("summary", "csv", time.Now()))
				return deliver(cmd, target, buf.Bytes(), len(rows))
			})
		},
	}

	filters.register(cmd, true)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (\"-\" for stdout; defaults to the export directory)")
	return cmd
}

func newExportFullCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags
	var outPath string
	var format string

	cmd := &cobra.Command{
		Use:   "full",
		Short: "Export all original columns plus ConfirmedTags, Notes, Reviewed and ReviewDate",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			f, err := filters.filter()
			if err != nil {
				return err
			}
			chosen := strings.ToLower(strings.TrimSpace(format))
			if chosen == "" {
				chosen = cfg.Export.Format
			}
			if chosen != "xlsx" && chosen != "csv" {
				return fmt.Errorf("invalid --format %q (want xlsx or csv)", format)
			}

			runCtx := ctx.baseContext(cmd)
			return ctx.withStore(runCtx, true, func(store *records.Store) error {
				exp := export.New(store, cfg.Export.TagDelimiter, ctx.loggerValue())
				table, err := exp.Full(runCtx, f)
				if err != nil {
					return err
				}
				var buf bytes.Buffer
				if chosen == "xlsx" {
					err = exp.WriteFullXLSX(&buf, table)
				} else {
					err = exp.WriteFullCSV(&buf, table)
				}
				if err != nil {
					return err
				}
				target := exportTarget(cfg, outPath, export.FileName("full", chosen, time.Now()))
				return deliver(cmd, target, buf.Bytes(), len(table.Rows))
			})
		},
	}

	filters.register(cmd, true)
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (\"-\" for stdout; defaults to the export directory)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: xlsx or csv (defaults to export.format)")
	return cmd
}

func exportTarget(cfg *config.Config, outPath, defaultName string) string {
	outPath = strings.TrimSpace(outPath)
	if outPath == "-" {
		return "-"
	}
	if outPath == "" {
		return filepath.Join(cfg.Paths.ExportDir, defaultName)
	}
	if expanded, err := config.ExpandPath(outPath); err == nil {
		return expanded
	}
	return outPath
}

// deliver writes the rendered export in one step so a failed export never
// leaves a partial file behind.
func deliver(cmd *cobra.Command, target string, data []byte, rows int) error {
	if target == "-" {
		_, err := io.Copy(cmd.OutOrStdout(), bytes.NewReader(data))
		return err
	}
	if _, err := fileutil.WriteAtomic(target, bytes.NewReader(data), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", rows, target)
	return nil
}
