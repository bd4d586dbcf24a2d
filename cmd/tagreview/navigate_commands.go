package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tagreview/internal/records"
)

func newNavigateCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newNeighborCommand(ctx, records.Next, "next", "Show the record after <id> within the filter"),
		newNeighborCommand(ctx, records.Prev, "prev", "Show the record before <id> within the filter"),
		newNextUnreviewedCommand(ctx),
	}
}

func newNeighborCommand(ctx *commandContext, dir records.Direction, use, short string) *cobra.Command {
	var filters filterFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cursor, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			f, err := filters.filter()
			if err != nil {
				return err
			}
			runCtx := ctx.baseContext(cmd)
			return ctx.withStore(runCtx, true, func(store *records.Store) error {
				id, ok, err := store.Neighbor(runCtx, f, cursor, dir)
				if err != nil {
					return err
				}
				if !ok {
					word := "after"
					if dir == records.Prev {
						word = "before"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "No record %s %d (%s)\n", word, cursor, describeFilter(f))
					return nil
				}
				return showByID(runCtx, cmd, store, id, asJSON)
			})
		},
	}

	filters.register(cmd, true)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newNextUnreviewedCommand(ctx *commandContext) *cobra.Command {
	var filters filterFlags
	var after int64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "next-unreviewed",
		Short: "Show the first unreviewed record within the filter",
		Long: "Show the first unreviewed record whose id is greater than --after (or the\n" +
			"first one overall). The search honours --source and --label and does not wrap.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if after < 0 {
				return fmt.Errorf("invalid --after %d", after)
			}
			f, err := filters.filter()
			if err != nil {
				return err
			}
			runCtx := ctx.baseContext(cmd)
			return ctx.withStore(runCtx, true, func(store *records.Store) error {
				id, ok, err := store.FirstUnreviewed(runCtx, f, after)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintf(cmd.OutOrStdout(), "No unreviewed records remain (%s)\n", describeFilter(f))
					return nil
				}
				return showByID(runCtx, cmd, store, id, asJSON)
			})
		},
	}

	filters.register(cmd, false)
	cmd.Flags().Int64Var(&after, "after", 0, "Only consider records after this id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func showByID(runCtx context.Context, cmd *cobra.Command, store *records.Store, id int64, asJSON bool) error {
	rec, err := store.GetByID(runCtx, id)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(cmd, rec)
	}
	printRecord(cmd, rec)
	return nil
}
