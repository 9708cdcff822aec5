package enrichment

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/enrich/internal/chips"
	"github.com/zjrosen/enrich/internal/flags"
	"github.com/zjrosen/enrich/internal/log"
	"github.com/zjrosen/enrich/internal/pubsub"
	"github.com/zjrosen/enrich/internal/tracing"
)

// Mode is the draft lifecycle state.
type Mode int

const (
	ModeClosed Mode = iota
	ModeNew
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeClosed:
		return "closed"
	case ModeNew:
		return "new"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Session routes modal input events to the chip engine and the registry.
// At most one draft is open at a time.
type Session struct {
	registry  *Registry
	flags     *flags.Registry
	publisher pubsub.Publisher[Record]
	tracer    trace.Tracer

	mode  Mode
	draft Draft
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithFlags sets the feature flags consulted by CanCreate.
func WithFlags(f *flags.Registry) SessionOption {
	return func(s *Session) { s.flags = f }
}

// WithPublisher receives a CreatedEvent or UpdatedEvent per committed record.
func WithPublisher(p pubsub.Publisher[Record]) SessionOption {
	return func(s *Session) { s.publisher = p }
}

// WithTracer overrides the global tracer.
func WithTracer(t trace.Tracer) SessionOption {
	return func(s *Session) { s.tracer = t }
}

// NewSession returns a closed session over registry.
func NewSession(registry *Registry, opts ...SessionOption) *Session {
	s := &Session{
		registry: registry,
		tracer:   otel.Tracer(tracing.ServiceName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetFlags swaps the flag registry, used after a config reload.
func (s *Session) SetFlags(f *flags.Registry) {
	s.flags = f
}

// Mode returns the lifecycle state.
func (s *Session) Mode() Mode {
	return s.mode
}

// Draft returns a copy of the open draft.
func (s *Session) Draft() (Draft, bool) {
	return s.draft, s.mode != ModeClosed
}

// Registry returns the backing registry.
func (s *Session) Registry() *Registry {
	return s.registry
}

// SelectTemplate opens a new draft for kind.
func (s *Session) SelectTemplate(kind Kind) error {
	if s.mode != ModeClosed {
		return fmt.Errorf("select template: %w", ErrWrongMode)
	}
	d, err := s.registry.OpenDraft(kind)
	if err != nil {
		return err
	}
	s.open(ModeNew, d)
	return nil
}

// SelectRecord opens an edit draft for the record at index.
func (s *Session) SelectRecord(index int) error {
	if s.mode != ModeClosed {
		return fmt.Errorf("select record: %w", ErrWrongMode)
	}
	d, err := s.registry.OpenEditDraft(index)
	if err != nil {
		return err
	}
	s.open(ModeEdit, d)
	return nil
}

func (s *Session) open(m Mode, d Draft) {
	s.mode = m
	s.draft = d
	log.Debug(log.CatRegistry, "draft opened", "mode", m, "title", d.Title, "index", d.Index)
}

// TextChange mirrors the objective field: it becomes both the chip buffer
// and the draft objective.
func (s *Session) TextChange(text string) error {
	if s.mode == ModeClosed {
		return ErrNoDraft
	}
	s.draft.Chips.SetBuffer(text)
	s.draft.Objective = text
	return nil
}

// KeyDown forwards Enter, Space or Backspace to the chip engine. consumed
// reports whether the key changed the chips and must not reach the field.
func (s *Session) KeyDown(k chips.Key) (consumed bool, err error) {
	if s.mode == ModeClosed {
		return false, ErrNoDraft
	}
	consumed = s.draft.Chips.HandleKey(k)
	if consumed {
		log.Debug(log.CatChips, "chips changed",
			"tokens", s.draft.Chips.Len(),
			"state", s.draft.Chips.ErrorState())
	}
	return consumed, nil
}

// ChipClose removes the chip at index.
func (s *Session) ChipClose(index int) error {
	if s.mode == ModeClosed {
		return ErrNoDraft
	}
	if !s.draft.Chips.RemoveAt(index) {
		return fmt.Errorf("close chip %d: %w", index, ErrIndexOutOfRange)
	}
	return nil
}

// SetName updates the draft name. On create it is replaced by the
// generated name.
func (s *Session) SetName(name string) error {
	if s.mode == ModeClosed {
		return ErrNoDraft
	}
	s.draft.EnrichmentName = name
	return nil
}

// SetModel updates the draft AI model.
func (s *Session) SetModel(model string) error {
	if s.mode == ModeClosed {
		return ErrNoDraft
	}
	s.draft.AIModel = model
	return nil
}

// Create commits a new draft and closes the session. A blocked gate leaves
// the draft open.
func (s *Session) Create(ctx context.Context) (Record, error) {
	if err := s.expect(ModeNew); err != nil {
		return Record{}, fmt.Errorf("create: %w", err)
	}

	_, span := s.tracer.Start(ctx, tracing.SpanCreate, trace.WithAttributes(s.draftAttrs()...))
	defer span.End()

	rec, err := s.registry.ConfirmCreate(s.draft, s.CanCreate())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Record{}, err
	}
	span.SetAttributes(
		attribute.String(tracing.AttrName, rec.EnrichmentName),
		attribute.Int(tracing.AttrSequence, rec.SequenceNumber),
	)

	s.close()
	s.publish(pubsub.CreatedEvent, rec)
	return rec, nil
}

// Edit applies an edit draft and closes the session.
func (s *Session) Edit(ctx context.Context) (Record, error) {
	if err := s.expect(ModeEdit); err != nil {
		return Record{}, fmt.Errorf("edit: %w", err)
	}

	_, span := s.tracer.Start(ctx, tracing.SpanEdit, trace.WithAttributes(
		append(s.draftAttrs(), attribute.Int(tracing.AttrIndex, s.draft.Index))...,
	))
	defer span.End()

	rec, err := s.registry.ConfirmEdit(s.draft)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Record{}, err
	}

	s.close()
	s.publish(pubsub.UpdatedEvent, rec)
	return rec, nil
}

// Cancel discards the open draft without touching the registry.
func (s *Session) Cancel() error {
	if s.mode == ModeClosed {
		return ErrNoDraft
	}
	log.Debug(log.CatRegistry, "draft discarded", "mode", s.mode, "title", s.draft.Title)
	s.close()
	return nil
}

func (s *Session) close() {
	s.mode = ModeClosed
	s.draft = Draft{}
}

func (s *Session) expect(m Mode) error {
	switch s.mode {
	case ModeClosed:
		return ErrNoDraft
	case m:
		return nil
	default:
		return ErrWrongMode
	}
}

func (s *Session) publish(t pubsub.EventType, rec Record) {
	if s.publisher != nil {
		s.publisher.Publish(t, rec)
	}
}

func (s *Session) draftAttrs() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(tracing.AttrKind, s.draft.Kind.String()),
		attribute.String(tracing.AttrTitle, s.draft.Title),
		attribute.Int(tracing.AttrTokenCount, s.draft.Chips.Len()),
		attribute.Int(tracing.AttrInvalid, len(s.draft.Chips.Invalid())),
		attribute.String(tracing.AttrErrorState, s.draft.Chips.ErrorState().String()),
	}
}

// Tokens returns the committed chips of the open draft.
func (s *Session) Tokens() []string {
	return s.draft.Chips.Tokens()
}

// Buffer returns the pending objective text.
func (s *Session) Buffer() string {
	return s.draft.Chips.Buffer()
}

// ErrorState returns the chip error state of the open draft.
func (s *Session) ErrorState() chips.ErrorState {
	return s.draft.Chips.ErrorState()
}

// ErrorMessage returns the chip error text of the open draft.
func (s *Session) ErrorMessage() string {
	return s.draft.Chips.Message()
}

// HasInvalid reports whether the objective field should render as invalid.
func (s *Session) HasInvalid() bool {
	return s.draft.Chips.HasInvalid()
}

// CanCreate is the creation gate for the open new draft.
func (s *Session) CanCreate() bool {
	if s.mode != ModeNew {
		return false
	}
	return CanCreate(s.draft.Chips, s.flags)
}

// CanCreate applies the feature flags on top of the engine gate: invalid
// emails always block, duplicates only when FlagDuplicatesBlockCreate is on.
// A nil registry leaves every flag off.
func CanCreate(state chips.State, f *flags.Registry) bool {
	if !state.CanCreate() {
		return false
	}
	return !(f.Enabled(flags.FlagDuplicatesBlockCreate) && state.HasDuplicates())
}

// Records returns the registry contents.
func (s *Session) Records() []Record {
	return s.registry.List()
}
