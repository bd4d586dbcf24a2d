package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"tagreview/internal/vocab"
)

// DatasetHeader is the column layout the importer requires.
var DatasetHeader = []string{
	"source", "Issue", "StakeholderTypeArray", "WorksheetLabelArray",
	"IssueTag1", "IssueTag2", "IssueTag3", "IssueTag4",
	"IssueTag5", "IssueTag6", "IssueTag7", "IssueTag8",
}

// Row builds a dataset row in DatasetHeader order. Missing tags are padded
// with empty cells.
func Row(source, issue, stakeholders, labels string, tags ...string) []string {
	row := []string{source, issue, stakeholders, labels}
	for i := 0; i < 8; i++ {
		if i < len(tags) {
			row = append(row, tags[i])
		} else {
			row = append(row, "")
		}
	}
	return row
}

// NewVocabulary builds a vocabulary or fails the test.
func NewVocabulary(t testing.TB, tags ...string) *vocab.Vocabulary {
	t.Helper()
	v, err := vocab.New(tags...)
	if err != nil {
		t.Fatalf("vocab.New: %v", err)
	}
	return v
}

// WriteCSV writes header and rows as a CSV dataset under dir and returns the path.
func WriteCSV(t testing.TB, dir, name string, header []string, rows ...[]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	return path
}

// Sheet is one worksheet of an xlsx fixture.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// WriteXLSX writes the sheets as an xlsx workbook under dir and returns the path.
func WriteXLSX(t testing.TB, dir, name string, sheets ...Sheet) string {
	t.Helper()
	if len(sheets) == 0 {
		t.Fatalf("WriteXLSX requires at least one sheet")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}

	f := excelize.NewFile()
	defer f.Close()
	defaultSheet := f.GetSheetName(0)
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			t.Fatalf("new sheet %s: %v", sheet.Name, err)
		}
		all := append([][]string{sheet.Header}, sheet.Rows...)
		for r, values := range all {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			row := make([]any, len(values))
			for c, v := range values {
				row[c] = v
			}
			if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
	return path
}

// VocabularyExample is the example text WithVocabularyFile writes for tag.
func VocabularyExample(tag string) string {
	return "Feedback about " + strings.ToLower(tag)
}

func writeVocabulary(t testing.TB, path string, tags []string) {
	t.Helper()
	entries := make([]vocab.Entry, len(tags))
	for i, tag := range tags {
		entries[i] = vocab.Entry{Name: tag, Example: VocabularyExample(tag)}
	}
	data, err := yaml.Marshal(map[string][]vocab.Entry{"tags": entries})
	if err != nil {
		t.Fatalf("marshal vocabulary: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write vocabulary: %v", err)
	}
}
