package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"
)

// DistinctSources returns every distinct source value in ascending order.
func (s *Store) DistinctSources(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx, `SELECT DISTINCT source FROM records ORDER BY source`)
}

// DistinctWorksheetLabels returns every label that appears on at least one
// record, in ascending order.
func (s *Store) DistinctWorksheetLabels(ctx context.Context) ([]string, error) {
	return s.queryStrings(ctx,
		`SELECT DISTINCT json_each.value FROM records, json_each(records.worksheet_labels_json)
         WHERE json_each.value <> '' ORDER BY json_each.value`)
}

func (s *Store) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query values: %w", err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, rows.Err()
}

// Stats counts the records selected by f. The filter's Status field is
// ignored so both halves of the split are always reported.
func (s *Store) Stats(ctx context.Context, f Filter) (Stats, error) {
	f.Status = StatusAny
	where, args := whereClause(f)
	var stats Stats
	var reviewed sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), SUM(reviewed) FROM records`+where, args...,
	).Scan(&stats.Total, &reviewed)
	if err != nil {
		return Stats{}, fmt.Errorf("record stats: %w", err)
	}
	stats.Reviewed = int(reviewed.Int64)
	stats.Unreviewed = stats.Total - stats.Reviewed
	return stats, nil
}

// Batches lists import runs, oldest first.
func (s *Store) Batches(ctx context.Context) ([]Batch, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_file, sheet, columns_json, inserted, skipped, rejected, imported_at
         FROM import_batches ORDER BY imported_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []Batch
	for rows.Next() {
		var (
			b           Batch
			columnsJSON string
			importedRaw string
		)
		if err := rows.Scan(&b.ID, &b.SourceFile, &b.Sheet, &columnsJSON, &b.Inserted, &b.Skipped, &b.Rejected, &importedRaw); err != nil {
			return nil, err
		}
		if b.Columns, err = decodeList(columnsJSON); err != nil {
			return nil, fmt.Errorf("batch %s columns: %w", b.ID, err)
		}
		if t, err := parseTimeString(importedRaw); err == nil {
			b.ImportedAt = t
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Columns returns the union of original dataset headers across all batches,
// in first-seen order.
func (s *Store) Columns(ctx context.Context) ([]string, error) {
	batches, err := s.Batches(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, b := range batches {
		for _, col := range b.Columns {
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			out = append(out, col)
		}
	}
	return out, nil
}

// CheckHealth returns diagnostic information about the store file.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}

	info, err := os.Stat(s.path)
	if err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("stat store: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("store path %q is a directory", s.path)
	}
	if s.db == nil {
		return health, errors.New("store connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ensureContext(ctx), 2*time.Second)
	defer cancel()

	if err := s.db.QueryRowContext(connCtx, "SELECT version FROM schema_version LIMIT 1").Scan(&health.SchemaVersion); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("read schema version: %w", err)
	}

	var integrity string
	if err := s.db.QueryRowContext(connCtx, "PRAGMA integrity_check").Scan(&integrity); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = integrity == "ok"
	if !health.IntegrityCheck {
		health.Error = integrity
	}

	if err := s.db.QueryRowContext(connCtx, "SELECT COUNT(1) FROM records").Scan(&health.TotalRecords); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("count records: %w", err)
	}
	if err := s.db.QueryRowContext(connCtx, "SELECT COUNT(1) FROM import_batches").Scan(&health.TotalBatches); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("count batches: %w", err)
	}
	return health, nil
}
