package importer

import (
	"fmt"

	"tagreview/internal/records"
)

// Required dataset columns.
const (
	ColumnSource           = "source"
	ColumnIssue            = "Issue"
	ColumnStakeholderTypes = "StakeholderTypeArray"
	ColumnWorksheetLabels  = "WorksheetLabelArray"
)

// TagColumn returns the name of the n-th proposed tag column, 1-based.
func TagColumn(n int) string {
	return fmt.Sprintf("IssueTag%d", n)
}

// RequiredColumns lists every column a dataset must expose, in canonical order.
func RequiredColumns() []string {
	cols := []string{ColumnSource, ColumnIssue, ColumnStakeholderTypes, ColumnWorksheetLabels}
	for i := 1; i <= records.MaxProposedTags; i++ {
		cols = append(cols, TagColumn(i))
	}
	return cols
}
