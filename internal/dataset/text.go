package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"tagreview/internal/reviewerr"
)

func textSheetName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func readText(path, sheet string, comma rune) (string, [][]string, error) {
	name := textSheetName(path)
	if sheet != "" && sheet != name {
		return "", nil, &reviewerr.SchemaError{Sheet: sheet, Reason: fmt.Sprintf("worksheet not found (delimited files have one sheet, %q)", name)}
	}
	f, err := os.Open(path)
	if err != nil {
		return "", nil, &reviewerr.SchemaError{Sheet: name, Reason: fmt.Sprintf("open dataset: %v", err)}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	grid, err := r.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return "", nil, &reviewerr.SchemaError{Sheet: name, Reason: fmt.Sprintf("malformed line %d: %v", parseErr.Line, parseErr.Err)}
		}
		return "", nil, &reviewerr.SchemaError{Sheet: name, Reason: fmt.Sprintf("read dataset: %v", err)}
	}
	return name, grid, nil
}
