package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tagreview/internal/records"
	"tagreview/internal/reviewerr"
	"tagreview/internal/testsupport"
	"tagreview/internal/vocab"
)

func TestImportIsIdempotent(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.seedDataset(t)

	out, _, err := runCLI(t, []string{"import", path}, env.configPath)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	requireContains(t, out, "Inserted:  0")
	requireContains(t, out, "Skipped:   3 (already imported)")

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var batches []records.Batch
	if err := json.Unmarshal([]byte(out), &batches); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(batches) != 2 || batches[0].Inserted != 3 || batches[1].Skipped != 3 {
		t.Fatalf("unexpected history: %+v", batches)
	}
}

func TestImportMissingColumnFails(t *testing.T) {
	env := setupCLITestEnv(t)
	path := writeDataset(t, env.baseDir, "broken.csv", []string{"source", "Issue"}, []string{"Survey", "text"})

	_, _, err := runCLI(t, []string{"import", "--new", path}, env.configPath)
	if err == nil {
		t.Fatal("expected schema error")
	}
	if reviewerr.Kind(err) != "schema" {
		t.Fatalf("expected schema error, got %v", err)
	}

	out, _, err := runCLI(t, []string{"db", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("db list: %v", err)
	}
	requireContains(t, out, "No review stores")
}

func TestListFiltersAndJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedDataset(t)

	out, _, err := runCLI(t, []string{"list", "--label", "Finance", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var recs []records.Record
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(recs) != 1 || recs[0].IssueText != "Bills arrive late" {
		t.Fatalf("unexpected records: %+v", recs)
	}

	out, _, err = runCLI(t, []string{"list", "--source", "Nowhere"}, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	requireContains(t, out, "No records match (source=Nowhere)")

	if _, _, err := runCLI(t, []string{"list", "--status", "maybe"}, env.configPath); err == nil {
		t.Fatal("expected invalid status error")
	}
}

func TestConfirmAndNotes(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedDataset(t)

	out, _, err := runCLI(t, []string{"confirm", "2", "Safety", "Billing"}, env.configPath)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	requireContains(t, out, "Record 2 reviewed: Billing, Safety")

	_, _, err = runCLI(t, []string{"confirm", "2", "Unknown"}, env.configPath)
	var invalid *reviewerr.InvalidTagError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected invalid tag error, got %v", err)
	}

	if _, _, err := runCLI(t, []string{"notes", "1", "check the invoice date"}, env.configPath); err != nil {
		t.Fatalf("notes: %v", err)
	}

	out, _, err = runCLI(t, []string{"show", "2", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var rec records.Record
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if diff := cmp.Diff([]string{"Billing", "Safety"}, rec.ConfirmedTags); diff != "" {
		t.Fatalf("confirmed tags mismatch (-want +got):\n%s", diff)
	}
	if !rec.Reviewed || rec.ReviewedAt == nil {
		t.Fatalf("expected record 2 reviewed, got %+v", rec)
	}

	out, _, err = runCLI(t, []string{"show", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "check the invoice date")
	requireContains(t, out, "pending")

	_, _, err = runCLI(t, []string{"confirm", "99", "Billing"}, env.configPath)
	if !errors.Is(err, reviewerr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestConfirmAcceptProposed(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedDataset(t)

	out, _, err := runCLI(t, []string{"confirm", "2", "--accept-proposed"}, env.configPath)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	requireContains(t, out, "Record 2 reviewed: Access, Safety")

	if _, _, err := runCLI(t, []string{"confirm", "2", "Billing", "--accept-proposed"}, env.configPath); err == nil {
		t.Fatal("expected error when combining tags with --accept-proposed")
	}
}

func TestNavigation(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedDataset(t)

	if _, _, err := runCLI(t, []string{"confirm", "1", "Billing"}, env.configPath); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	out, _, err := runCLI(t, []string{"next-unreviewed"}, env.configPath)
	if err != nil {
		t.Fatalf("next-unreviewed: %v", err)
	}
	requireContains(t, out, "Record 2 (pending)")

	out, _, err = runCLI(t, []string{"next-unreviewed", "--source", "Survey", "--after", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("next-unreviewed: %v", err)
	}
	requireContains(t, out, "Record 3 (pending)")

	out, _, err = runCLI(t, []string{"next", "1", "--source", "Survey"}, env.configPath)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	requireContains(t, out, "Record 3")

	out, _, err = runCLI(t, []string{"prev", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("prev: %v", err)
	}
	requireContains(t, out, "No record before 1 (all records)")
}

func TestStatsAndFilters(t *testing.T) {
	env := setupCLITestEnv(t)
	env.seedDataset(t)

	if _, _, err := runCLI(t, []string{"confirm", "3"}, env.configPath); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	out, _, err := runCLI(t, []string{"stats", "--source", "Survey", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var stats records.Stats
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if diff := cmp.Diff(records.Stats{Total: 2, Reviewed: 1, Unreviewed: 1}, stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}

	out, _, err = runCLI(t, []string{"filters"}, env.configPath)
	if err != nil {
		t.Fatalf("filters: %v", err)
	}
	for _, want := range []string{"Hotline", "Survey", "Finance", "Ops"} {
		requireContains(t, out, want)
	}
	if strings.Index(out, "Hotline") > strings.Index(out, "Survey") {
		t.Fatalf("expected sorted sources, got %q", out)
	}
}

func TestVocabCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	tags := []string{"Billing", "Access", "Safety", "Noise"}

	out, _, err := runCLI(t, []string{"vocab", "--names"}, env.configPath)
	if err != nil {
		t.Fatalf("vocab --names: %v", err)
	}
	if got := strings.Fields(out); !cmp.Equal(got, tags) {
		t.Fatalf("unexpected vocabulary output %q", out)
	}

	out, _, err = runCLI(t, []string{"vocab"}, env.configPath)
	if err != nil {
		t.Fatalf("vocab: %v", err)
	}
	requireContains(t, out, "Example")
	for _, tag := range tags {
		requireContains(t, out, testsupport.VocabularyExample(tag))
	}

	out, _, err = runCLI(t, []string{"vocab", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("vocab --json: %v", err)
	}
	var entries []vocab.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode vocabulary: %v", err)
	}
	if len(entries) != len(tags) || entries[1] != (vocab.Entry{Name: "Access", Example: testsupport.VocabularyExample("Access")}) {
		t.Fatalf("unexpected entries %+v", entries)
	}
}
