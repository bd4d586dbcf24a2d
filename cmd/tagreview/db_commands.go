package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"tagreview/internal/records"
	"tagreview/internal/workspace"
)

func newDBCommand(ctx *commandContext) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Manage review stores",
	}

	dbCmd.AddCommand(newDBListCommand(ctx))
	dbCmd.AddCommand(newDBRenameCommand(ctx))
	dbCmd.AddCommand(newDBDeleteCommand(ctx))
	dbCmd.AddCommand(newDBHealthCommand(ctx))

	return dbCmd
}

func newDBListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List review stores in the store directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := ctx.workspace()
			if err != nil {
				return err
			}
			entries, err := ws.List()
			if err != nil {
				return err
			}
			if asJSON {
				if entries == nil {
					entries = []workspace.Entry{}
				}
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No review stores in %s\n", ws.Dir())
				return nil
			}
			current := ctx.storeRef()
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				marker := ""
				if e.Name == current || e.Path == current {
					marker = "*"
				}
				rows = append(rows, []string{
					marker,
					e.Name,
					humanize.Bytes(uint64(e.Size)),
					e.ModTime.Local().Format("2006-01-02 15:04"),
					yesNo(e.Locked),
				})
			}
			columns := columnsOf("", "Name", "Size", "Modified", "In Use")
			columns[2].Align = alignRight
			fmt.Fprintln(out, renderTable(columns, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newDBRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <store> <new-name>",
		Short: "Rename a review store",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := ctx.workspace()
			if err != nil {
				return err
			}
			newPath, err := ws.Rename(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], newPath)
			return nil
		},
	}
}

func newDBDeleteCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete <store>",
		Short: "Delete a review store and its sidecar files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to delete %s without --yes", args[0])
			}
			ws, err := ctx.workspace()
			if err != nil {
				return err
			}
			if err := ws.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "Confirm deletion")
	return cmd
}

func newDBHealthCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health [store]",
		Short: "Check store schema and integrity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := ctx.storePath()
			if len(args) == 1 {
				var ws *workspace.Workspace
				if ws, err = ctx.workspace(); err == nil {
					path, err = ws.Resolve(args[0])
				}
			}
			if err != nil {
				return err
			}
			runCtx := ctx.baseContext(cmd)
			return ctx.withStoreAt(runCtx, path, true, func(store *records.Store) error {
				health, err := store.CheckHealth(runCtx)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, health)
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintf(out, "Store:          %s\n", health.DBPath)
				fmt.Fprintf(out, "Schema version: %d\n", health.SchemaVersion)
				fmt.Fprintf(out, "Integrity:      %s\n", checkMarker(health.IntegrityCheck, colorize))
				fmt.Fprintf(out, "Records:        %d\n", health.TotalRecords)
				fmt.Fprintf(out, "Imports:        %d\n", health.TotalBatches)
				if msg := strings.TrimSpace(health.Error); msg != "" {
					fmt.Fprintf(out, "Error:          %s\n", msg)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
