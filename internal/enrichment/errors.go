package enrichment

import "errors"

var (
	// ErrUnknownKind is returned for a Kind or name outside the template table.
	ErrUnknownKind = errors.New("unknown enrichment kind")

	// ErrCreateBlocked is returned when a create is confirmed while the
	// creation gate is closed.
	ErrCreateBlocked = errors.New("create blocked by invalid emails")

	// ErrNotEditDraft is returned when ConfirmEdit gets a draft from OpenDraft,
	// or ConfirmCreate gets one from OpenEditDraft.
	ErrNotEditDraft = errors.New("draft is not an edit draft")
	ErrEditDraft    = errors.New("draft is an edit draft")

	ErrIndexOutOfRange = errors.New("record index out of range")

	// ErrNoDraft is returned by Session events that need an open draft.
	ErrNoDraft = errors.New("no draft is open")

	// ErrWrongMode is returned when an event does not fit the open draft,
	// such as Edit on a new draft or SelectTemplate while one is open.
	ErrWrongMode = errors.New("event does not apply to the current draft")
)
