package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"tagreview/internal/reviewerr"
)

// Row is one data row. Cells are aligned with Table.Columns.
type Row struct {
	Number int
	Cells  []string
}

// Table is a single worksheet read into memory.
type Table struct {
	Source  string
	Sheet   string
	Columns []string
	Rows    []Row
}

// Index returns the position of column name, or -1.
func (t *Table) Index(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Value returns the cell of row r in column name, or "" when the column is absent.
func (t *Table) Value(r Row, name string) string {
	idx := t.Index(name)
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	return r.Cells[idx]
}

type format int

const (
	formatUnknown format = iota
	formatXLSX
	formatCSV
	formatTSV
)

func detect(path string) format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return formatXLSX
	case ".csv":
		return formatCSV
	case ".tsv", ".tab":
		return formatTSV
	default:
		return formatUnknown
	}
}

// Sheets lists the worksheets available in the file, in workbook order.
// Delimited text files expose a single sheet named after the file.
func Sheets(path string) ([]string, error) {
	switch detect(path) {
	case formatXLSX:
		return xlsxSheets(path)
	case formatCSV, formatTSV:
		return []string{textSheetName(path)}, nil
	default:
		return nil, unsupported(path)
	}
}

// Open reads one worksheet. An empty sheet selects the first worksheet.
// Failures that make the whole file unusable are reported as
// *reviewerr.SchemaError.
func Open(path, sheet string) (*Table, error) {
	var (
		name string
		grid [][]string
		err  error
	)
	switch detect(path) {
	case formatXLSX:
		name, grid, err = readXLSX(path, sheet)
	case formatCSV:
		name, grid, err = readText(path, sheet, ',')
	case formatTSV:
		name, grid, err = readText(path, sheet, '\t')
	default:
		return nil, unsupported(path)
	}
	if err != nil {
		return nil, err
	}
	return build(path, name, grid)
}

func unsupported(path string) error {
	return &reviewerr.SchemaError{Reason: fmt.Sprintf("unsupported dataset type %q (want .xlsx, .csv or .tsv)", filepath.Ext(path))}
}

func build(path, sheet string, grid [][]string) (*Table, error) {
	if len(grid) == 0 {
		return nil, &reviewerr.SchemaError{Sheet: sheet, Reason: "worksheet is empty"}
	}
	table := &Table{
		Source:  filepath.Base(path),
		Sheet:   sheet,
		Columns: headerNames(grid[0], dataWidth(grid[1:])),
	}
	for i, raw := range grid[1:] {
		if blank(raw) {
			continue
		}
		cells := make([]string, len(table.Columns))
		copy(cells, raw)
		table.Rows = append(table.Rows, Row{Number: i + 2, Cells: cells})
	}
	return table, nil
}

// dataWidth returns the number of columns up to the last non-blank data cell.
func dataWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		for i := len(row) - 1; i >= width; i-- {
			if strings.TrimSpace(row[i]) != "" {
				width = i + 1
				break
			}
		}
	}
	return width
}

// headerNames cleans the header row. Trailing blank headers are dropped
// unless data reaches into them; those columns, and data columns past the
// end of the header, are named like any other blank header.
func headerNames(raw []string, width int) []string {
	for len(raw) > width && strings.TrimSpace(raw[len(raw)-1]) == "" {
		raw = raw[:len(raw)-1]
	}
	if len(raw) < width {
		raw = append(append(make([]string, 0, width), raw...), make([]string, width-len(raw))...)
	}
	used := make(map[string]bool, len(raw))
	counts := make(map[string]int)
	out := make([]string, len(raw))
	for i, cell := range raw {
		base := strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
		if base == "" {
			base = fmt.Sprintf("Unnamed: %d", i)
		}
		name := base
		for used[name] {
			counts[base]++
			name = fmt.Sprintf("%s.%d", base, counts[base])
		}
		used[name] = true
		out[i] = name
	}
	return out
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
