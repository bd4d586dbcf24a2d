package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"tagreview/internal/reviewerr"
)

func xlsxSheets(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &reviewerr.SchemaError{Reason: fmt.Sprintf("open workbook: %v", err)}
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func readXLSX(path, sheet string) (string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", nil, &reviewerr.SchemaError{Sheet: sheet, Reason: fmt.Sprintf("open workbook: %v", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil, &reviewerr.SchemaError{Reason: "workbook has no worksheets"}
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return "", nil, &reviewerr.SchemaError{Sheet: sheet, Reason: "worksheet not found"}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", nil, &reviewerr.SchemaError{Sheet: sheet, Reason: fmt.Sprintf("read worksheet: %v", err)}
	}
	return sheet, rows, nil
}
