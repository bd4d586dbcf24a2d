package reviewerr_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"tagreview/internal/reviewerr"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		marker error
		kind   string
	}{
		{"schema", &reviewerr.SchemaError{Missing: []string{"Issue"}}, reviewerr.ErrSchema, "schema"},
		{"row", &reviewerr.RowError{Row: 4, Field: "source", Reason: "required"}, reviewerr.ErrValidation, "validation"},
		{"tag", &reviewerr.InvalidTagError{Tags: []string{"bogus"}}, reviewerr.ErrInvalidTag, "invalid_tag"},
		{"missing", &reviewerr.NotFoundError{ID: 9}, reviewerr.ErrNotFound, "not_found"},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("outer: %w", tc.err)
		if !errors.Is(wrapped, tc.marker) {
			t.Fatalf("%s: expected errors.Is to match marker", tc.name)
		}
		if got := reviewerr.Kind(wrapped); got != tc.kind {
			t.Fatalf("%s: kind = %q, want %q", tc.name, got, tc.kind)
		}
	}
}

func TestErrorMessagesCarryDetail(t *testing.T) {
	schema := &reviewerr.SchemaError{Sheet: "Sheet1", Missing: []string{"source", "Issue"}}
	if msg := schema.Error(); !strings.Contains(msg, "Sheet1") || !strings.Contains(msg, "source, Issue") {
		t.Fatalf("unexpected schema message %q", msg)
	}
	tags := &reviewerr.InvalidTagError{Tags: []string{"a", "b"}}
	if msg := tags.Error(); !strings.Contains(msg, `"a", "b"`) {
		t.Fatalf("unexpected tag message %q", msg)
	}
	row := &reviewerr.RowError{Row: 3, Reason: "empty row"}
	if msg := row.Error(); msg != "row 3: empty row" {
		t.Fatalf("unexpected row message %q", msg)
	}
}

func TestWrapKeepsMarkerAndCause(t *testing.T) {
	cause := errors.New("disk full")
	err := reviewerr.Wrap(reviewerr.ErrLocked, "records", "open", "store in use", cause)
	if !errors.Is(err, reviewerr.ErrLocked) || !errors.Is(err, cause) {
		t.Fatalf("expected marker and cause in chain: %v", err)
	}
	if !strings.Contains(err.Error(), "records: open: store in use") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if got := reviewerr.Kind(errors.New("plain")); got != "internal" {
		t.Fatalf("kind = %q", got)
	}
}
