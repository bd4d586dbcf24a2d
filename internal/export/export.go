package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tagreview/internal/logging"
	"tagreview/internal/records"
)

// Review columns appended after the original dataset columns.
const (
	ColumnConfirmedTags = "ConfirmedTags"
	ColumnNotes         = "Notes"
	ColumnReviewed      = "Reviewed"
	ColumnReviewDate    = "ReviewDate"
)

// SummaryHeader is the header row of the summary CSV.
var SummaryHeader = []string{"Source", "Label", "ProposedTags", "ReviewedTags", "Notes"}

// Store is the read surface exports need.
type Store interface {
	List(ctx context.Context, f records.Filter) ([]records.Record, error)
	Columns(ctx context.Context) ([]string, error)
}

// SummaryRow is the condensed projection of one record.
type SummaryRow struct {
	Source          string   `json:"source"`
	WorksheetLabels []string `json:"worksheet_labels"`
	ProposedTags    []string `json:"proposed_tags"`
	ConfirmedTags   []string `json:"confirmed_tags"`
	Notes           string   `json:"notes"`
}

// FullRow carries a record's original cells aligned with FullTable.Original
// plus its review state.
type FullRow struct {
	RecordID      int64
	Original      []string
	ConfirmedTags []string
	Notes         string
	Reviewed      bool
	ReviewedAt    *time.Time
}

// FullTable is the full export: every original column plus review columns.
// Review holds the review column names after any renaming needed to keep
// them distinct from the original headers.
type FullTable struct {
	Original []string
	Review   []string
	Rows     []FullRow
}

// Header returns the complete header row.
func (t *FullTable) Header() []string {
	review := t.Review
	if review == nil {
		review = reviewColumns(t.Original)
	}
	header := make([]string, 0, len(t.Original)+len(review))
	header = append(header, t.Original...)
	return append(header, review...)
}

// reviewColumns names the appended review columns. A name already used by
// an original header gets a " (review)" suffix, so exporting a dataset that
// came from an earlier full export keeps both sets of values apart.
func reviewColumns(original []string) []string {
	taken := make(map[string]bool, len(original)+4)
	for _, col := range original {
		taken[col] = true
	}
	base := []string{ColumnConfirmedTags, ColumnNotes, ColumnReviewed, ColumnReviewDate}
	out := make([]string, len(base))
	for i, name := range base {
		candidate := name
		for n := 1; taken[candidate]; n++ {
			if n == 1 {
				candidate = name + " (review)"
			} else {
				candidate = fmt.Sprintf("%s (review %d)", name, n)
			}
		}
		taken[candidate] = true
		out[i] = candidate
	}
	return out
}

// Exporter builds export projections.
type Exporter struct {
	store     Store
	delimiter string
	logger    *slog.Logger
}

// New constructs an exporter. delimiter joins list values in text outputs.
func New(store Store, delimiter string, logger *slog.Logger) *Exporter {
	if delimiter == "" {
		delimiter = ", "
	}
	return &Exporter{
		store:     store,
		delimiter: delimiter,
		logger:    logging.NewComponentLogger(logger, "export"),
	}
}

// Summary returns one condensed row per selected record, in id order.
func (e *Exporter) Summary(ctx context.Context, f records.Filter) ([]SummaryRow, error) {
	recs, err := e.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("summary export: %w", err)
	}
	out := make([]SummaryRow, 0, len(recs))
	for _, rec := range recs {
		out = append(out, SummaryRow{
			Source:          rec.Source,
			WorksheetLabels: rec.WorksheetLabels,
			ProposedTags:    rec.ProposedTags,
			ConfirmedTags:   rec.ConfirmedTags,
			Notes:           rec.Notes,
		})
	}
	e.logger.Debug("summary export built", logging.Int("rows", len(out)))
	return out, nil
}

// Full returns every selected record with all original columns. Columns a
// record's dataset did not have are left empty.
func (e *Exporter) Full(ctx context.Context, f records.Filter) (*FullTable, error) {
	columns, err := e.store.Columns(ctx)
	if err != nil {
		return nil, fmt.Errorf("full export columns: %w", err)
	}
	recs, err := e.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("full export: %w", err)
	}
	position := make(map[string]int, len(columns))
	for i, col := range columns {
		position[col] = i
	}

	table := &FullTable{Original: columns, Review: reviewColumns(columns), Rows: make([]FullRow, 0, len(recs))}
	for _, rec := range recs {
		cells := make([]string, len(columns))
		for _, cell := range rec.Original {
			if idx, ok := position[cell.Column]; ok {
				cells[idx] = cell.Value
			}
		}
		table.Rows = append(table.Rows, FullRow{
			RecordID:      rec.ID,
			Original:      cells,
			ConfirmedTags: rec.ConfirmedTags,
			Notes:         rec.Notes,
			Reviewed:      rec.Reviewed,
			ReviewedAt:    rec.ReviewedAt,
		})
	}
	e.logger.Debug("full export built", logging.Int("rows", len(table.Rows)), logging.Int("columns", len(columns)))
	return table, nil
}

// Join renders a list value with the exporter's delimiter.
func (e *Exporter) Join(values []string) string {
	return strings.Join(values, e.delimiter)
}

// FileName returns the default export file name for kind ("summary" or
// "full") and extension.
func FileName(kind, ext string, now time.Time) string {
	stamp := now.Format("20060102")
	if kind == "summary" {
		return fmt.Sprintf("reviewed_tags_subset_%s.%s", stamp, ext)
	}
	return fmt.Sprintf("reviewed_full_data_%s.%s", stamp, ext)
}

func formatReviewDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatReviewed(reviewed bool) string {
	if reviewed {
		return "True"
	}
	return "False"
}
