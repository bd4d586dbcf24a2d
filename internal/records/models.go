package records

import "time"

// MaxProposedTags bounds the proposed tag sequence captured at import time.
const MaxProposedTags = 8

// Cell is one original dataset value, kept verbatim for full exports.
type Cell struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Record is one reviewable unit.
type Record struct {
	ID               int64      `json:"id"`
	BatchID          string     `json:"batch_id"`
	SourceRow        int        `json:"source_row"`
	Fingerprint      string     `json:"fingerprint"`
	Source           string     `json:"source"`
	IssueText        string     `json:"issue_text"`
	StakeholderTypes []string   `json:"stakeholder_types"`
	WorksheetLabels  []string   `json:"worksheet_labels"`
	ProposedTags     []string   `json:"proposed_tags"`
	ConfirmedTags    []string   `json:"confirmed_tags"`
	Notes            string     `json:"notes"`
	Reviewed         bool       `json:"reviewed"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	NotesUpdatedAt   *time.Time `json:"notes_updated_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	Original         []Cell     `json:"original,omitempty"`
}

// HasLabel reports whether label is one of the record's worksheet labels.
func (r Record) HasLabel(label string) bool {
	for _, l := range r.WorksheetLabels {
		if l == label {
			return true
		}
	}
	return false
}

// NewRecord is the importer's input for one row.
type NewRecord struct {
	Fingerprint      string
	SourceRow        int
	Source           string
	IssueText        string
	StakeholderTypes []string
	WorksheetLabels  []string
	ProposedTags     []string
	Original         []Cell
}

// Batch describes one import run.
type Batch struct {
	ID         string    `json:"id"`
	SourceFile string    `json:"source_file"`
	Sheet      string    `json:"sheet"`
	Columns    []string  `json:"columns"`
	Inserted   int       `json:"inserted"`
	Skipped    int       `json:"skipped"`
	Rejected   int       `json:"rejected"`
	ImportedAt time.Time `json:"imported_at"`
}

// BatchResult reports what InsertBatch persisted.
type BatchResult struct {
	InsertedIDs []int64
	Skipped     int
}

// ReviewStatus narrows a listing to reviewed or unreviewed records.
type ReviewStatus string

const (
	StatusAny        ReviewStatus = ""
	StatusReviewed   ReviewStatus = "reviewed"
	StatusUnreviewed ReviewStatus = "unreviewed"
)

// Filter selects records. Empty fields do not constrain the result.
type Filter struct {
	Source         string
	WorksheetLabel string
	Status         ReviewStatus
}

// IsZero reports whether the filter selects every record.
func (f Filter) IsZero() bool {
	return f.Source == "" && f.WorksheetLabel == "" && f.Status == StatusAny
}

// Stats summarizes review progress.
type Stats struct {
	Total      int `json:"total"`
	Reviewed   int `json:"reviewed"`
	Unreviewed int `json:"unreviewed"`
}

// DatabaseHealth captures diagnostic information about a store file.
type DatabaseHealth struct {
	DBPath         string `json:"db_path"`
	SchemaVersion  int    `json:"schema_version"`
	IntegrityCheck bool   `json:"integrity_check"`
	TotalRecords   int    `json:"total_records"`
	TotalBatches   int    `json:"total_batches"`
	Error          string `json:"error,omitempty"`
}
