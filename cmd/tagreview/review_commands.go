package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tagreview/internal/records"
	"tagreview/internal/review"
)

func newConfirmCommand(ctx *commandContext) *cobra.Command {
	var acceptProposed bool

	cmd := &cobra.Command{
		Use:   "confirm <id> [tag...]",
		Short: "Replace a record's confirmed tags and mark it reviewed",
		Long: "Replace the confirmed tag set of a record and mark it reviewed. The given\n" +
			"tags replace any earlier confirmation; passing no tags confirms an empty\n" +
			"set. Every tag must be part of the vocabulary (see `tagreview vocab`).",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			tags := args[1:]
			if acceptProposed && len(tags) > 0 {
				return fmt.Errorf("--accept-proposed cannot be combined with explicit tags")
			}
			v, err := ctx.vocabulary()
			if err != nil {
				return err
			}

			runCtx := ctx.baseContext(cmd)
			return ctx.withStore(runCtx, false, func(store *records.Store) error {
				mutator := review.New(store, v, ctx.loggerValue())
				var (
					rec     *records.Record
					skipped []string
				)
				if acceptProposed {
					rec, skipped, err = mutator.AcceptProposed(runCtx, id)
				} else {
					rec, err = mutator.ConfirmTags(runCtx, id, tags)
				}
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Record %d reviewed: %s\n", rec.ID, joinOrDash(rec.ConfirmedTags))
				if len(skipped) > 0 {
					fmt.Fprintf(out, "Skipped proposed tags not in the vocabulary: %s\n", joinOrDash(skipped))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&acceptProposed, "accept-proposed", false, "Confirm the record's proposed tags that are in the vocabulary")
	return cmd
}

func newNotesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <id> <text>",
		Short: "Replace a record's notes (review state is unchanged)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			runCtx := ctx.baseContext(cmd)
			return ctx.withStore(runCtx, false, func(store *records.Store) error {
				rec, err := review.New(store, nil, ctx.loggerValue()).SaveNotes(runCtx, id, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Notes saved for record %d\n", rec.ID)
				return nil
			})
		},
	}
}
