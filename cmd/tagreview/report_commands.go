package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tagreview/internal/records"
)

func newFiltersCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "List the sources and worksheet labels available for filtering",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx := ctx.baseContext(cmd)
			return ctx.withStore(runCtx, true, func(store *records.Store) error {
				sources, err := store.DistinctSources(runCtx)
				if err != nil {
					return err
				}
				labels, err := store.DistinctWorksheetLabels(runCtx)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, map[string][]string{"sources": sources, "labels": labels})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "Sources:")
				for _, s := range sources {
					fmt.Fprintf(out, "  %s\n", s)
				}
				fmt.Fprintln(out, "Labels:")
				for _, l := range labels {
					fmt.Fprintf(out, "  %s\n", l)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show review progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filters.filter()
			if err != nil {
				return err
			}
			runCtx := ctx.baseContext(cmd)
			return ctx.withStore(runCtx, true, func(store *records.Store) error {
				stats, err := store.Stats(runCtx, f)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, stats)
				}
				out := cmd.OutOrStdout()
				pct := 0.0
				if stats.Total > 0 {
					pct = float64(stats.Reviewed) * 100 / float64(stats.Total)
				}
				fmt.Fprintf(out, "Scope:       %s\n", describeFilter(f))
				fmt.Fprintf(out, "Total:       %d\n", stats.Total)
				fmt.Fprintf(out, "Reviewed:    %d (%.1f%%)\n", stats.Reviewed, pct)
				fmt.Fprintf(out, "Unreviewed:  %d\n", stats.Unreviewed)
				return nil
			})
		},
	}

	filters.register(cmd, false)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the imports applied to the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx := ctx.baseContext(cmd)
			return ctx.withStore(runCtx, true, func(store *records.Store) error {
				batches, err := store.Batches(runCtx)
				if err != nil {
					return err
				}
				if asJSON {
					if batches == nil {
						batches = []records.Batch{}
					}
					return writeJSON(cmd, batches)
				}
				out := cmd.OutOrStdout()
				if len(batches) == 0 {
					fmt.Fprintln(out, "No imports recorded")
					return nil
				}
				rows := make([][]string, 0, len(batches))
				for _, b := range batches {
					rows = append(rows, []string{
						b.ImportedAt.Local().Format("2006-01-02 15:04:05"),
						b.SourceFile,
						b.Sheet,
						strconv.Itoa(b.Inserted),
						strconv.Itoa(b.Skipped),
						strconv.Itoa(b.Rejected),
						b.ID,
					})
				}
				columns := columnsOf("Imported", "File", "Sheet", "Inserted", "Skipped", "Rejected", "Batch")
				for i := 3; i <= 5; i++ {
					columns[i].Align = alignRight
				}
				fmt.Fprintln(out, renderTable(columns, rows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
