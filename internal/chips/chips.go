// Package chips implements the email chip input engine.
//
// Free text typed into the objective field is committed as tokens ("chips").
// Each token is classified as a valid or invalid email address, and a single
// error state is derived from the whole token set after every mutation:
//
//   - ErrorDuplicate when a valid address appears more than once
//   - ErrorInvalid when at least one token failed the format check
//   - ErrorNone otherwise
//
// Duplicate wins when both conditions hold. Only invalid tokens close the
// creation gate (see State.CanCreate); duplicates are reported but do not block.
package chips

import (
	"regexp"
	"slices"
	"strings"
)

// ErrorState is the single validation error derived from the token set.
type ErrorState int

const (
	ErrorNone ErrorState = iota
	ErrorDuplicate
	ErrorInvalid
)

func (e ErrorState) String() string {
	switch e {
	case ErrorNone:
		return "none"
	case ErrorDuplicate:
		return "duplicate"
	case ErrorInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Key is one of the keys the engine reacts to.
type Key int

const (
	KeyEnter Key = iota
	KeySpace
	KeyBackspace
)

// DuplicateMessage is shown when a valid address was entered twice.
const DuplicateMessage = "You have duplicate emails."

// invalidPrefix precedes the comma separated list of invalid tokens.
const invalidPrefix = "Some emails are invalid: "

// space is the whitespace a JavaScript \s matches, which is wider than
// Go's ASCII-only \s.
const space = `\s\v\p{Z}\x{FEFF}`

var emailPattern = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)

// IsValidEmail reports whether s looks like local@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// State is the chip input state. The zero value is an empty, valid input.
type State struct {
	tokens  []string
	invalid []string
	buffer  string
	err     ErrorState
}

// New returns a State pre-populated with tokens, as if each had been typed
// and committed in order.
func New(tokens ...string) State {
	var s State
	for _, t := range tokens {
		s.Append(t)
	}
	return s
}

// Tokens returns a copy of the committed tokens in insertion order.
func (s State) Tokens() []string {
	return slices.Clone(s.tokens)
}

// Invalid returns a copy of the invalid tokens in the order they were recorded.
func (s State) Invalid() []string {
	return slices.Clone(s.invalid)
}

// Len returns the number of committed tokens.
func (s State) Len() int {
	return len(s.tokens)
}

// Buffer returns the pending, uncommitted text.
func (s State) Buffer() string {
	return s.buffer
}

// SetBuffer replaces the pending text.
func (s *State) SetBuffer(text string) {
	s.buffer = text
}

// ErrorState returns the error derived after the last mutation.
func (s State) ErrorState() ErrorState {
	return s.err
}

// Message returns the user-facing error message for the current state.
func (s State) Message() string {
	return Message(s.err, s.invalid)
}

// HasInvalid reports whether any invalid token exists. It drives the invalid
// styling of the field and stays true under ErrorDuplicate.
func (s State) HasInvalid() bool {
	return len(s.invalid) > 0
}

// HasDuplicates reports whether the current error is ErrorDuplicate.
func (s State) HasDuplicates() bool {
	return s.err == ErrorDuplicate
}

// CanCreate is the creation gate: true iff there are no invalid tokens.
// Duplicate valid addresses do not close the gate.
func (s State) CanCreate() bool {
	return len(s.invalid) == 0
}

// Append trims raw and commits it as a new token. Empty input is a no-op and
// returns false. The buffer is cleared on success.
func (s *State) Append(raw string) bool {
	text := strings.TrimSpace(raw)
	if text == "" {
		return false
	}
	// Clip so copies of a State never share a backing array.
	s.tokens = append(slices.Clip(s.tokens), text)
	if !IsValidEmail(text) {
		s.invalid = append(slices.Clip(s.invalid), text)
	}
	s.buffer = ""
	s.recompute()
	return true
}

// RemoveLast pops the last token back into the buffer for correction.
// It only applies when the buffer is empty and at least one token exists.
func (s *State) RemoveLast() (string, bool) {
	if s.buffer != "" || len(s.tokens) == 0 {
		return "", false
	}
	last := s.tokens[len(s.tokens)-1]
	s.tokens = s.tokens[:len(s.tokens)-1]
	s.invalid = removeFirst(s.invalid, last)
	s.buffer = last
	s.recompute()
	return last, true
}

// RemoveAt removes the token at index i. One matching invalid entry is
// removed with it, never all of them.
func (s *State) RemoveAt(i int) bool {
	if i < 0 || i >= len(s.tokens) {
		return false
	}
	removed := s.tokens[i]
	s.tokens = slices.Delete(slices.Clone(s.tokens), i, i+1)
	s.invalid = removeFirst(s.invalid, removed)
	s.recompute()
	return true
}

// HandleKey applies a key press and reports whether the key was consumed.
// Enter and Space commit a non-blank buffer; Backspace on an empty buffer
// reopens the last chip. Unconsumed keys belong to the text field.
func (s *State) HandleKey(k Key) bool {
	switch k {
	case KeyEnter, KeySpace:
		if strings.TrimSpace(s.buffer) == "" {
			return false
		}
		return s.Append(s.buffer)
	case KeyBackspace:
		_, ok := s.RemoveLast()
		return ok
	}
	return false
}

// Reset clears tokens, invalid tokens and the buffer.
func (s *State) Reset() {
	*s = State{}
}

func (s *State) recompute() {
	s.err = RecomputeErrorState(s.tokens, s.invalid)
}

// RecomputeErrorState derives the error state from a token set and its
// invalid subset. It has no side effects.
func RecomputeErrorState(tokens, invalid []string) ErrorState {
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if !IsValidEmail(t) {
			continue
		}
		if _, dup := seen[t]; dup {
			return ErrorDuplicate
		}
		seen[t] = struct{}{}
	}
	if len(invalid) > 0 {
		return ErrorInvalid
	}
	return ErrorNone
}

// Message maps an error state to its display text.
func Message(e ErrorState, invalid []string) string {
	switch e {
	case ErrorDuplicate:
		return DuplicateMessage
	case ErrorInvalid:
		return invalidPrefix + strings.Join(invalid, ", ")
	default:
		return ""
	}
}

func removeFirst(list []string, value string) []string {
	if i := slices.Index(list, value); i >= 0 {
		return slices.Delete(slices.Clone(list), i, i+1)
	}
	return list
}
