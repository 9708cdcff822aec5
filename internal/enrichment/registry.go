package enrichment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/enrich/internal/chips"
	"github.com/zjrosen/enrich/internal/log"
)

// Registry is the ordered, in-memory list of records plus the per-title
// sequence counters used to name them. It is not safe for concurrent use;
// the UI update loop is its only caller.
type Registry struct {
	records  []Record
	counters map[string]int
	clock    Clock
	newID    func() string
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock sets the clock used for CreatedAt.
func WithClock(c Clock) Option {
	return func(r *Registry) { r.clock = c }
}

// WithIDGenerator replaces uuid generation for record IDs.
func WithIDGenerator(fn func() string) Option {
	return func(r *Registry) { r.newID = fn }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		counters: make(map[string]int),
		clock:    RealClock{},
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Now reads the registry clock.
func (r *Registry) Now() time.Time {
	return r.clock.Now()
}

// Count returns how many records have ever been created for title.
func (r *Registry) Count(title string) int {
	return r.counters[title]
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// List returns copies of all records in insertion order.
func (r *Registry) List() []Record {
	out := make([]Record, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.clone()
	}
	return out
}

// Record returns a copy of the record at i.
func (r *Registry) Record(i int) (Record, bool) {
	if i < 0 || i >= len(r.records) {
		return Record{}, false
	}
	return r.records[i].clone(), true
}

// OpenDraft starts a new draft from the template for kind. The proposed name
// uses the next sequence number; counters are untouched until ConfirmCreate.
func (r *Registry) OpenDraft(kind Kind) (Draft, error) {
	t, ok := Lookup(kind)
	if !ok {
		return Draft{}, fmt.Errorf("open draft: %w: %d", ErrUnknownKind, int(kind))
	}
	return Draft{
		Kind:           kind,
		Title:          t.Title,
		Description:    t.Description,
		Icon:           t.Icon,
		EnrichmentName: defaultName(t.Title, r.counters[t.Title]+1),
	}, nil
}

// OpenEditDraft copies the record at index into an edit draft. The chips
// are rebuilt from the record's saved emails.
func (r *Registry) OpenEditDraft(index int) (Draft, error) {
	rec, ok := r.Record(index)
	if !ok {
		return Draft{}, fmt.Errorf("open edit draft %d of %d: %w", index, len(r.records), ErrIndexOutOfRange)
	}
	t, _ := Lookup(rec.Kind)
	return Draft{
		Kind:           rec.Kind,
		Title:          rec.Title,
		Description:    t.Description,
		Icon:           t.Icon,
		EnrichmentName: rec.EnrichmentName,
		AIModel:        rec.AIModel,
		Objective:      rec.Objective,
		Chips:          chips.New(rec.Emails...),
		IsEdit:         true,
		Index:          index,
	}, nil
}

// ConfirmCreate commits draft as a new record. canCreate is the chip gate;
// when false nothing changes and ErrCreateBlocked is returned. The record
// name is always regenerated as "{Title} {n}", replacing any typed name.
func (r *Registry) ConfirmCreate(draft Draft, canCreate bool) (Record, error) {
	if draft.IsEdit {
		return Record{}, fmt.Errorf("confirm create: %w", ErrEditDraft)
	}
	if !canCreate {
		log.Warn(log.CatRegistry, "create refused", "title", draft.Title, "invalid", len(draft.Chips.Invalid()))
		return Record{}, fmt.Errorf("confirm create %q: %w", draft.Title, ErrCreateBlocked)
	}

	r.counters[draft.Title]++
	n := r.counters[draft.Title]
	rec := Record{
		ID:             r.newID(),
		Kind:           draft.Kind,
		Title:          draft.Title,
		EnrichmentName: defaultName(draft.Title, n),
		AIModel:        draft.AIModel,
		Objective:      draft.Objective,
		Emails:         draft.Chips.Tokens(),
		SequenceNumber: n,
		CreatedAt:      r.clock.Now(),
	}
	r.records = append(r.records, rec)

	log.Info(log.CatRegistry, "record created", "id", rec.ID, "name", rec.EnrichmentName, "emails", len(rec.Emails))
	return rec.clone(), nil
}

// ConfirmEdit overwrites the record at draft.Index with the draft's name,
// model, objective and emails. Identity, sequence number and creation time
// are kept and no gate applies.
func (r *Registry) ConfirmEdit(draft Draft) (Record, error) {
	if !draft.IsEdit {
		return Record{}, fmt.Errorf("confirm edit: %w", ErrNotEditDraft)
	}
	if draft.Index < 0 || draft.Index >= len(r.records) {
		return Record{}, fmt.Errorf("confirm edit %d of %d: %w", draft.Index, len(r.records), ErrIndexOutOfRange)
	}

	rec := &r.records[draft.Index]
	rec.EnrichmentName = draft.EnrichmentName
	rec.AIModel = draft.AIModel
	rec.Objective = draft.Objective
	rec.Emails = draft.Chips.Tokens()

	log.Info(log.CatRegistry, "record updated", "id", rec.ID, "index", draft.Index, "name", rec.EnrichmentName)
	return rec.clone(), nil
}

func defaultName(title string, n int) string {
	return fmt.Sprintf("%s %d", title, n)
}
