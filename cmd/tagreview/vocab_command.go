package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVocabCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var namesOnly bool

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Print the tag vocabulary with example feedback for each tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := ctx.vocabulary()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, v.Entries())
			}
			out := cmd.OutOrStdout()
			if namesOnly {
				for _, tag := range v.All() {
					fmt.Fprintln(out, tag)
				}
				return nil
			}
			rows := make([][]string, 0, v.Len())
			for _, entry := range v.Entries() {
				example := entry.Example
				if example == "" {
					example = "-"
				}
				rows = append(rows, []string{entry.Name, example})
			}
			columns := columnsOf("Tag", "Example")
			columns[0].MaxWidth = 30
			columns[1].MaxWidth = 80
			fmt.Fprintln(out, renderTable(columns, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&namesOnly, "names", false, "Print tag names only, one per line")
	return cmd
}
