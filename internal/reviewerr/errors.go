package reviewerr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSchema     = errors.New("schema error")
	ErrValidation = errors.New("validation error")
	ErrInvalidTag = errors.New("invalid tag")
	ErrNotFound   = errors.New("not found")
	ErrLocked     = errors.New("store locked")
)

// SchemaError reports a dataset that cannot be imported at all.
type SchemaError struct {
	Sheet   string
	Missing []string
	Reason  string
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("schema error")
	if e.Sheet != "" {
		fmt.Fprintf(&b, ": sheet %q", e.Sheet)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing columns: %s", strings.Join(e.Missing, ", "))
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	return b.String()
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchema }

// RowError describes a single dataset row that failed minimal field checks.
// Row is the 1-based row number as the reviewer sees it in the source sheet.
type RowError struct {
	Row    int
	Field  string
	Reason string
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("row %d: %s: %s", e.Row, e.Field, e.Reason)
}

func (e *RowError) Is(target error) bool { return target == ErrValidation }

// InvalidTagError names every tag that is not part of the vocabulary.
type InvalidTagError struct {
	Tags []string
}

func (e *InvalidTagError) Error() string {
	quoted := make([]string, len(e.Tags))
	for i, tag := range e.Tags {
		quoted[i] = fmt.Sprintf("%q", tag)
	}
	return "invalid tag: not in vocabulary: " + strings.Join(quoted, ", ")
}

func (e *InvalidTagError) Is(target error) bool { return target == ErrInvalidTag }

// NotFoundError reports a reference to a record id that does not exist.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinels.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrValidation
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short classification used by the CLI when reporting failures.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSchema):
		return "schema"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrInvalidTag):
		return "invalid_tag"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrLocked):
		return "locked"
	default:
		return "internal"
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "review failure"
	}
	return strings.Join(parts, ": ")
}
