package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tagreview/internal/records"
)

// filterFlags binds the record filter to a command's flags.
type filterFlags struct {
	source string
	label  string
	status string
}

func (f *filterFlags) register(cmd *cobra.Command, withStatus bool) {
	cmd.Flags().StringVar(&f.source, "source", "", "Only records with this source")
	cmd.Flags().StringVar(&f.label, "label", "", "Only records carrying this worksheet label")
	if withStatus {
		cmd.Flags().StringVar(&f.status, "status", "", "Only reviewed or unreviewed records")
	}
}

func (f *filterFlags) filter() (records.Filter, error) {
	out := records.Filter{
		Source:         strings.TrimSpace(f.source),
		WorksheetLabel: strings.TrimSpace(f.label),
	}
	switch status := records.ReviewStatus(strings.ToLower(strings.TrimSpace(f.status))); status {
	case records.StatusAny, records.StatusReviewed, records.StatusUnreviewed:
		out.Status = status
	default:
		return records.Filter{}, fmt.Errorf("invalid --status %q (want reviewed or unreviewed)", f.status)
	}
	return out, nil
}

func describeFilter(f records.Filter) string {
	var parts []string
	if f.Source != "" {
		parts = append(parts, "source="+f.Source)
	}
	if f.WorksheetLabel != "" {
		parts = append(parts, "label="+f.WorksheetLabel)
	}
	if f.Status != records.StatusAny {
		parts = append(parts, "status="+string(f.Status))
	}
	if len(parts) == 0 {
		return "all records"
	}
	return strings.Join(parts, ", ")
}
