package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tagreview/internal/logging"
	"tagreview/internal/reviewerr"
)

// InsertBatch persists one import run atomically. Rows whose fingerprint is
// already stored are skipped and leave the existing record untouched.
// batch.Inserted and batch.Skipped are computed here; batch.Rejected is
// recorded as supplied by the caller.
func (s *Store) InsertBatch(ctx context.Context, batch Batch, rows []NewRecord) (BatchResult, error) {
	if err := s.ensureWritable(); err != nil {
		return BatchResult{}, err
	}
	if batch.ID == "" {
		return BatchResult{}, errors.New("insert batch: missing batch id")
	}
	for _, row := range rows {
		if row.Fingerprint == "" {
			return BatchResult{}, fmt.Errorf("insert batch: row %d has no fingerprint", row.SourceRow)
		}
		if len(row.ProposedTags) > MaxProposedTags {
			return BatchResult{}, fmt.Errorf("insert batch: row %d has %d proposed tags (max %d)", row.SourceRow, len(row.ProposedTags), MaxProposedTags)
		}
	}
	if batch.ImportedAt.IsZero() {
		batch.ImportedAt = time.Now().UTC()
	}
	columnsJSON, err := encodeList(batch.Columns)
	if err != nil {
		return BatchResult{}, fmt.Errorf("encode batch columns: %w", err)
	}

	var result BatchResult
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		result = BatchResult{}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO import_batches (id, source_file, sheet, columns_json, rejected, imported_at)
             VALUES (?, ?, ?, ?, ?, ?)`,
			batch.ID, batch.SourceFile, batch.Sheet, columnsJSON, batch.Rejected, formatTime(batch.ImportedAt),
		); err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO records (
                fingerprint, batch_id, source_row, source, issue_text,
                stakeholder_types_json, worksheet_labels_json, proposed_tags_json,
                original_json, created_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT(fingerprint) DO NOTHING`)
		if err != nil {
			return fmt.Errorf("prepare record insert: %w", err)
		}
		defer stmt.Close()

		created := formatTime(batch.ImportedAt)
		for _, row := range rows {
			args, err := insertArgs(batch.ID, row, created)
			if err != nil {
				return err
			}
			res, err := stmt.ExecContext(ctx, args...)
			if err != nil {
				return fmt.Errorf("insert record from row %d: %w", row.SourceRow, err)
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("rows affected: %w", err)
			}
			if affected == 0 {
				result.Skipped++
				continue
			}
			id, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("last insert id: %w", err)
			}
			result.InsertedIDs = append(result.InsertedIDs, id)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE import_batches SET inserted = ?, skipped = ? WHERE id = ?`,
			len(result.InsertedIDs), result.Skipped, batch.ID,
		); err != nil {
			return fmt.Errorf("update batch counts: %w", err)
		}
		return nil
	})
	if err != nil {
		return BatchResult{}, err
	}

	s.logger.Info("batch stored",
		logging.String(logging.FieldBatchID, batch.ID),
		logging.Int("inserted", len(result.InsertedIDs)),
		logging.Int("skipped", result.Skipped),
	)
	return result, nil
}

func insertArgs(batchID string, row NewRecord, created string) ([]any, error) {
	stakeholders, err := encodeList(row.StakeholderTypes)
	if err != nil {
		return nil, fmt.Errorf("encode stakeholder types: %w", err)
	}
	labels, err := encodeList(row.WorksheetLabels)
	if err != nil {
		return nil, fmt.Errorf("encode worksheet labels: %w", err)
	}
	proposed, err := encodeList(row.ProposedTags)
	if err != nil {
		return nil, fmt.Errorf("encode proposed tags: %w", err)
	}
	original := row.Original
	if original == nil {
		original = []Cell{}
	}
	originalJSON, err := json.Marshal(original)
	if err != nil {
		return nil, fmt.Errorf("encode original cells: %w", err)
	}
	return []any{
		row.Fingerprint,
		batchID,
		row.SourceRow,
		row.Source,
		row.IssueText,
		stakeholders,
		labels,
		proposed,
		string(originalJSON),
		created,
	}, nil
}

// GetByID fetches a record or returns a NotFoundError.
func (s *Store) GetByID(ctx context.Context, id int64) (*Record, error) {
	return getByID(ctx, s.db, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getByID(ctx context.Context, q queryRower, id int64) (*Record, error) {
	row := q.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &reviewerr.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// FindByFingerprint returns the record stored for a fingerprint, or nil.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM records WHERE fingerprint = ?`, fingerprint)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find by fingerprint: %w", err)
	}
	return rec, nil
}

// List returns the records selected by f ordered by id ascending, which is
// import order.
func (s *Store) List(ctx context.Context, f Filter) ([]Record, error) {
	where, args := whereClause(f)
	rows, err := s.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM records`+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	out, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

// SetConfirmedTags replaces the confirmed tag set wholesale and marks the
// record reviewed. Tags must already be validated by the caller.
func (s *Store) SetConfirmedTags(ctx context.Context, id int64, tags []string, at time.Time) (*Record, error) {
	if err := s.ensureWritable(); err != nil {
		return nil, err
	}
	encoded, err := encodeList(tags)
	if err != nil {
		return nil, fmt.Errorf("encode confirmed tags: %w", err)
	}
	return s.updateRecord(ctx, id,
		`UPDATE records SET confirmed_tags_json = ?, reviewed = 1, reviewed_at = ? WHERE id = ?`,
		encoded, formatTime(at), id,
	)
}

// SetNotes replaces the record's notes without touching review state.
func (s *Store) SetNotes(ctx context.Context, id int64, notes string, at time.Time) (*Record, error) {
	if err := s.ensureWritable(); err != nil {
		return nil, err
	}
	return s.updateRecord(ctx, id,
		`UPDATE records SET notes = ?, notes_updated_at = ? WHERE id = ?`,
		notes, formatTime(at), id,
	)
}

func (s *Store) updateRecord(ctx context.Context, id int64, query string, args ...any) (*Record, error) {
	var updated *Record
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update record: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return &reviewerr.NotFoundError{ID: id}
		}
		updated, err = getByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
