package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Direction selects a neighbor relative to a cursor.
type Direction int

const (
	Prev Direction = iota
	Next
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// FirstUnreviewed returns the id of the first unreviewed record in the
// filtered list whose id is greater than after. Pass 0 to search from the
// start. The boolean is false when no such record exists.
func (s *Store) FirstUnreviewed(ctx context.Context, f Filter, after int64) (int64, bool, error) {
	f.Status = StatusUnreviewed
	where, args := whereClause(f)
	args = append(args, after)
	return s.queryID(ctx, `SELECT id FROM records`+where+` AND id > ? ORDER BY id LIMIT 1`, args...)
}

// Neighbor returns the id adjacent to cursor within the filtered list.
// Navigation does not wrap; the boolean is false at either boundary. The
// cursor itself need not match the filter.
func (s *Store) Neighbor(ctx context.Context, f Filter, cursor int64, dir Direction) (int64, bool, error) {
	where, args := whereClause(f)
	if where == "" {
		where = " WHERE 1=1"
	}
	args = append(args, cursor)
	query := `SELECT id FROM records` + where + ` AND id > ? ORDER BY id ASC LIMIT 1`
	if dir == Prev {
		query = `SELECT id FROM records` + where + ` AND id < ? ORDER BY id DESC LIMIT 1`
	}
	return s.queryID(ctx, query, args...)
}

func (s *Store) queryID(ctx context.Context, query string, args ...any) (int64, bool, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("navigate records: %w", err)
	}
	return id, true, nil
}
