// Package dataset reads tabular review datasets from xlsx workbooks and
// delimited text files into a uniform Table.
//
// Header names are trimmed. Blank and repeated headers are renamed the way
// spreadsheet tooling does ("Unnamed: 3", "Issue.1") so every cell keeps a
// unique column key. Fully blank rows are dropped; every other row keeps its
// 1-based sheet row number for error reporting.
package dataset
