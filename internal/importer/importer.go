package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"tagreview/internal/dataset"
	"tagreview/internal/logging"
	"tagreview/internal/records"
	"tagreview/internal/reviewerr"
)

// Store is the persistence surface the importer needs.
type Store interface {
	InsertBatch(ctx context.Context, batch records.Batch, rows []records.NewRecord) (records.BatchResult, error)
}

// Options tunes dataset parsing.
type Options struct {
	ArrayDelimiter string
	Logger         *slog.Logger
	Now            func() time.Time
}

// Result summarizes one import.
type Result struct {
	BatchID          string                `json:"batch_id"`
	Sheet            string                `json:"sheet"`
	Inserted         int                   `json:"inserted"`
	SkippedDuplicate int                   `json:"skipped_duplicate"`
	Rejected         int                   `json:"rejected"`
	RowErrors        []*reviewerr.RowError `json:"-"`
	InsertedIDs      []int64               `json:"inserted_ids,omitempty"`
}

// Importer converts dataset tables into stored records.
type Importer struct {
	store     Store
	delimiter string
	logger    *slog.Logger
	now       func() time.Time
}

// New constructs an importer writing to store.
func New(store Store, opts Options) *Importer {
	delimiter := opts.ArrayDelimiter
	if delimiter == "" {
		delimiter = ","
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Importer{
		store:     store,
		delimiter: delimiter,
		logger:    logging.NewComponentLogger(opts.Logger, "importer"),
		now:       now,
	}
}

// Import stores every acceptable row of table. A missing required column
// fails with *reviewerr.SchemaError before anything is written.
func (i *Importer) Import(ctx context.Context, table *dataset.Table) (Result, error) {
	if err := CheckColumns(table); err != nil {
		return Result{}, err
	}

	batch := records.Batch{
		ID:         uuid.NewString(),
		SourceFile: table.Source,
		Sheet:      table.Sheet,
		Columns:    append([]string(nil), table.Columns...),
		ImportedAt: i.now().UTC(),
	}
	ctx = logging.WithBatchID(ctx, batch.ID)
	logger := logging.WithContext(ctx, i.logger)

	result := Result{BatchID: batch.ID, Sheet: table.Sheet}
	seen := make(map[string]struct{}, len(table.Rows))
	rows := make([]records.NewRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		rec, rowErrs := i.convert(table, row)
		if len(rowErrs) > 0 {
			result.Rejected++
			result.RowErrors = append(result.RowErrors, rowErrs...)
			for _, rowErr := range rowErrs {
				logging.WarnWithContext(logger, "row rejected", "import_row_rejected",
					logging.Int("row", rowErr.Row),
					logging.String("field", rowErr.Field),
					logging.String("reason", rowErr.Reason),
				)
			}
			continue
		}
		if _, dup := seen[rec.Fingerprint]; dup {
			result.SkippedDuplicate++
			continue
		}
		seen[rec.Fingerprint] = struct{}{}
		rows = append(rows, rec)
	}
	batch.Rejected = result.Rejected

	stored, err := i.store.InsertBatch(ctx, batch, rows)
	if err != nil {
		return Result{}, fmt.Errorf("store import batch: %w", err)
	}
	result.Inserted = len(stored.InsertedIDs)
	result.InsertedIDs = stored.InsertedIDs
	result.SkippedDuplicate += stored.Skipped

	logger.Info("import complete",
		logging.String("source_file", table.Source),
		logging.String("sheet", table.Sheet),
		logging.Int("inserted", result.Inserted),
		logging.Int("skipped_duplicate", result.SkippedDuplicate),
		logging.Int("rejected", result.Rejected),
	)
	return result, nil
}

// CheckColumns reports every required column the table lacks as a single
// *reviewerr.SchemaError.
func CheckColumns(table *dataset.Table) error {
	if table == nil {
		return &reviewerr.SchemaError{Reason: "no dataset"}
	}
	var missing []string
	for _, col := range RequiredColumns() {
		if table.Index(col) < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &reviewerr.SchemaError{Sheet: table.Sheet, Missing: missing}
	}
	return nil
}

func (i *Importer) convert(table *dataset.Table, row dataset.Row) (records.NewRecord, []*reviewerr.RowError) {
	tagCells := make([]string, 0, records.MaxProposedTags)
	for n := 1; n <= records.MaxProposedTags; n++ {
		tagCells = append(tagCells, table.Value(row, TagColumn(n)))
	}
	in := rowInput{
		Source:       strings.TrimSpace(table.Value(row, ColumnSource)),
		Issue:        strings.TrimSpace(table.Value(row, ColumnIssue)),
		ProposedTags: CompactTags(tagCells),
	}
	if errs := in.check(row.Number); len(errs) > 0 {
		return records.NewRecord{}, errs
	}

	original := make([]records.Cell, len(table.Columns))
	for idx, col := range table.Columns {
		original[idx] = records.Cell{Column: col, Value: row.Cells[idx]}
	}
	return records.NewRecord{
		Fingerprint:      Fingerprint(in.Source, in.Issue, in.ProposedTags),
		SourceRow:        row.Number,
		Source:           in.Source,
		IssueText:        in.Issue,
		StakeholderTypes: ParseArray(table.Value(row, ColumnStakeholderTypes), i.delimiter),
		WorksheetLabels:  ParseArray(table.Value(row, ColumnWorksheetLabels), i.delimiter),
		ProposedTags:     in.ProposedTags,
		Original:         original,
	}, nil
}
