package records

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const recordColumns = "id, batch_id, source_row, fingerprint, source, issue_text, stakeholder_types_json, worksheet_labels_json, proposed_tags_json, confirmed_tags_json, notes, reviewed, reviewed_at, notes_updated_at, created_at, original_json"

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		rec             Record
		stakeholderJSON string
		labelsJSON      string
		proposedJSON    string
		confirmedJSON   string
		reviewed        int64
		reviewedRaw     sql.NullString
		notesRaw        sql.NullString
		createdRaw      string
		originalJSON    string
	)

	if err := scanner.Scan(
		&rec.ID,
		&rec.BatchID,
		&rec.SourceRow,
		&rec.Fingerprint,
		&rec.Source,
		&rec.IssueText,
		&stakeholderJSON,
		&labelsJSON,
		&proposedJSON,
		&confirmedJSON,
		&rec.Notes,
		&reviewed,
		&reviewedRaw,
		&notesRaw,
		&createdRaw,
		&originalJSON,
	); err != nil {
		return nil, err
	}

	var err error
	if rec.StakeholderTypes, err = decodeList(stakeholderJSON); err != nil {
		return nil, fmt.Errorf("record %d stakeholder types: %w", rec.ID, err)
	}
	if rec.WorksheetLabels, err = decodeList(labelsJSON); err != nil {
		return nil, fmt.Errorf("record %d worksheet labels: %w", rec.ID, err)
	}
	if rec.ProposedTags, err = decodeList(proposedJSON); err != nil {
		return nil, fmt.Errorf("record %d proposed tags: %w", rec.ID, err)
	}
	if rec.ConfirmedTags, err = decodeList(confirmedJSON); err != nil {
		return nil, fmt.Errorf("record %d confirmed tags: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(originalJSON), &rec.Original); err != nil {
		return nil, fmt.Errorf("record %d original cells: %w", rec.ID, err)
	}
	rec.Reviewed = reviewed != 0
	rec.ReviewedAt = parseNullableTime(reviewedRaw)
	rec.NotesUpdatedAt = parseNullableTime(notesRaw)
	if created, err := parseTimeString(createdRaw); err == nil {
		rec.CreatedAt = created
	}
	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// encodeList always yields a JSON array so SQL json_each sees a list.
func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(raw string) ([]string, error) {
	out := []string{}
	if strings.TrimSpace(raw) == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseNullableTime(value sql.NullString) *time.Time {
	if !value.Valid {
		return nil
	}
	t, err := parseTimeString(value.String)
	if err != nil {
		return nil
	}
	return &t
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

// whereClause renders the filter as SQL with positional arguments.
func whereClause(f Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Source != "" {
		conds = append(conds, "source = ?")
		args = append(args, f.Source)
	}
	if f.WorksheetLabel != "" {
		conds = append(conds, "EXISTS (SELECT 1 FROM json_each(records.worksheet_labels_json) WHERE json_each.value = ?)")
		args = append(args, f.WorksheetLabel)
	}
	switch f.Status {
	case StatusReviewed:
		conds = append(conds, "reviewed = 1")
	case StatusUnreviewed:
		conds = append(conds, "reviewed = 0")
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
