package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tagreview/internal/records"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records in import order",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := filters.filter()
			if err != nil {
				return err
			}
			runCtx := ctx.baseContext(cmd)
			return ctx.withStore(runCtx, true, func(store *records.Store) error {
				recs, err := store.List(runCtx, f)
				if err != nil {
					return err
				}
				if asJSON {
					if recs == nil {
						recs = []records.Record{}
					}
					return writeJSON(cmd, recs)
				}
				out := cmd.OutOrStdout()
				if len(recs) == 0 {
					fmt.Fprintf(out, "No records match (%s)\n", describeFilter(f))
					return nil
				}
				colorize := shouldColorize(out)
				rows := make([][]string, 0, len(recs))
				for _, rec := range recs {
					rows = append(rows, []string{
						strconv.FormatInt(rec.ID, 10),
						rec.Source,
						joinOrDash(rec.WorksheetLabels),
						truncate(rec.IssueText, 60),
						joinOrDash(rec.ProposedTags),
						joinOrDash(rec.ConfirmedTags),
						reviewMarker(rec.Reviewed, colorize),
					})
				}
				columns := columnsOf("ID", "Source", "Labels", "Issue", "Proposed", "Confirmed", "Status")
				columns[0].Align = alignRight
				columns[2].MaxWidth = 30
				columns[4].MaxWidth = 40
				columns[5].MaxWidth = 40
				fmt.Fprintln(out, renderTable(columns, rows))
				return nil
			})
		},
	}

	filters.register(cmd, true)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			runCtx := ctx.baseContext(cmd)
			return ctx.withStore(runCtx, true, func(store *records.Store) error {
				rec, err := store.GetByID(runCtx, id)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, rec)
				}
				printRecord(cmd, rec)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func printRecord(cmd *cobra.Command, rec *records.Record) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	fmt.Fprintf(out, "Record %d (%s)\n", rec.ID, reviewMarker(rec.Reviewed, colorize))
	fmt.Fprintf(out, "  Source:        %s\n", rec.Source)
	fmt.Fprintf(out, "  Labels:        %s\n", joinOrDash(rec.WorksheetLabels))
	fmt.Fprintf(out, "  Stakeholders:  %s\n", joinOrDash(rec.StakeholderTypes))
	fmt.Fprintf(out, "  Proposed:      %s\n", joinOrDash(rec.ProposedTags))
	fmt.Fprintf(out, "  Confirmed:     %s\n", joinOrDash(rec.ConfirmedTags))
	fmt.Fprintf(out, "  Reviewed at:   %s\n", formatTimestamp(rec.ReviewedAt))
	notes := rec.Notes
	if notes == "" {
		notes = "-"
	}
	fmt.Fprintf(out, "  Notes:         %s\n", notes)
	fmt.Fprintln(out, "  Issue:")
	fmt.Fprintf(out, "    %s\n", rec.IssueText)
}
