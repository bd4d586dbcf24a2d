package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet written by WriteFullXLSX.
const SheetName = "Reviewed Data"

// WriteSummaryCSV writes rows under SummaryHeader.
func (e *Exporter) WriteSummaryCSV(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write([]string{
			row.Source,
			e.Join(row.WorksheetLabels),
			e.Join(row.ProposedTags),
			e.Join(row.ConfirmedTags),
			row.Notes,
		}); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFullCSV writes the full table as CSV.
func (e *Exporter) WriteFullCSV(w io.Writer, table *FullTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Header()); err != nil {
		return fmt.Errorf("write full header: %w", err)
	}
	for _, row := range table.Rows {
		if err := cw.Write(e.fullRecord(row)); err != nil {
			return fmt.Errorf("write full row %d: %w", row.RecordID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (e *Exporter) fullRecord(row FullRow) []string {
	out := make([]string, 0, len(row.Original)+4)
	out = append(out, row.Original...)
	return append(out,
		e.Join(row.ConfirmedTags),
		row.Notes,
		formatReviewed(row.Reviewed),
		formatReviewDate(row.ReviewedAt),
	)
}

// WriteFullXLSX writes the full table as a single-sheet workbook. Original
// cells are written as text so values survive unchanged; Reviewed is a
// boolean cell.
func (e *Exporter) WriteFullXLSX(w io.Writer, table *FullTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("open sheet writer: %w", err)
	}

	header := table.Header()
	if err := sw.SetRow("A1", toRow(header)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := toRow(row.Original)
		values = append(values,
			e.Join(row.ConfirmedTags),
			row.Notes,
			row.Reviewed,
			formatReviewDate(row.ReviewedAt),
		)
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("write row %d: %w", row.RecordID, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func toRow(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
