package review

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"tagreview/internal/logging"
	"tagreview/internal/records"
	"tagreview/internal/vocab"
)

// Store is the persistence surface the mutator needs.
type Store interface {
	GetByID(ctx context.Context, id int64) (*records.Record, error)
	SetConfirmedTags(ctx context.Context, id int64, tags []string, at time.Time) (*records.Record, error)
	SetNotes(ctx context.Context, id int64, notes string, at time.Time) (*records.Record, error)
}

// Mutator validates and applies review actions.
type Mutator struct {
	store  Store
	vocab  *vocab.Vocabulary
	logger *slog.Logger
	now    func() time.Time
}

// Option customizes a Mutator.
type Option func(*Mutator)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Mutator) {
		if now != nil {
			m.now = now
		}
	}
}

// New constructs a mutator bound to a store and vocabulary.
func New(store Store, v *vocab.Vocabulary, logger *slog.Logger, opts ...Option) *Mutator {
	m := &Mutator{
		store:  store,
		vocab:  v,
		logger: logging.NewComponentLogger(logger, "review"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ConfirmTags replaces the record's confirmed tags with selection and marks
// it reviewed. An empty selection is a valid confirmation. Any tag outside
// the vocabulary fails the whole call with *reviewerr.InvalidTagError.
func (m *Mutator) ConfirmTags(ctx context.Context, id int64, selection []string) (*records.Record, error) {
	tags, err := m.vocab.Canonicalize(selection)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, m.logger), "confirm rejected", "invalid_tag",
			logging.Int64(logging.FieldRecordID, id),
			logging.Error(err),
		)
		return nil, err
	}
	rec, err := m.store.SetConfirmedTags(ctx, id, tags, m.now().UTC())
	if err != nil {
		return nil, err
	}
	logging.WithContext(ctx, m.logger).Info("tags confirmed",
		logging.Int64(logging.FieldRecordID, id),
		logging.String("tags", strings.Join(tags, "|")),
	)
	return rec, nil
}

// SaveNotes replaces the record's notes. Review state is untouched.
func (m *Mutator) SaveNotes(ctx context.Context, id int64, text string) (*records.Record, error) {
	rec, err := m.store.SetNotes(ctx, id, text, m.now().UTC())
	if err != nil {
		return nil, err
	}
	logging.WithContext(ctx, m.logger).Info("notes saved",
		logging.Int64(logging.FieldRecordID, id),
		logging.Int("length", len(text)),
	)
	return rec, nil
}

// AcceptProposed confirms the record's proposed tags that exist in the
// vocabulary, skipping the rest. It returns the skipped values.
func (m *Mutator) AcceptProposed(ctx context.Context, id int64) (*records.Record, []string, error) {
	rec, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	var keep, skipped []string
	for _, tag := range rec.ProposedTags {
		if m.vocab.Contains(tag) {
			keep = append(keep, tag)
		} else {
			skipped = append(skipped, tag)
		}
	}
	updated, err := m.ConfirmTags(ctx, id, keep)
	if err != nil {
		return nil, nil, err
	}
	return updated, skipped, nil
}
