// Package chipinput is the objective field of the enrichment modal: a text
// input that turns typed addresses into removable chips.
//
// All chip state lives in an Engine (the enrichment session). The component
// only translates keys and clicks into engine events and keeps the text
// input in sync with the engine buffer.
package chipinput

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/enrich/internal/chips"
	"github.com/zjrosen/enrich/internal/log"
	"github.com/zjrosen/enrich/internal/ui/styles"
)

const (
	closeMark   = "×"
	placeholder = "Type an email and press enter"
	title       = "Objective"
)

// Engine receives chip events and exposes the resulting state.
type Engine interface {
	TextChange(text string) error
	KeyDown(k chips.Key) (consumed bool, err error)
	ChipClose(index int) error
	Tokens() []string
	Buffer() string
	HasInvalid() bool
	ErrorMessage() string
}

// Model is the chip input component.
type Model struct {
	engine     Engine
	input      textinput.Model
	zonePrefix string
	focused    bool
	// chipCursor is the highlighted chip while navigating with left/right,
	// -1 when the caret is in the text input.
	chipCursor int
	width      int
}

// New creates an input bound to engine, seeded with the engine buffer.
func New(engine Engine) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.SetValue(engine.Buffer())

	return Model{
		engine:     engine,
		input:      ti,
		zonePrefix: zone.NewPrefix(),
		chipCursor: -1,
		width:      50,
	}
}

// SetWidth sets the outer width of the field.
func (m Model) SetWidth(width int) Model {
	m.width = max(width, 12)
	m.input.Width = max(m.width-4, 1)
	return m
}

// Focus gives the field keyboard focus.
func (m Model) Focus() (Model, tea.Cmd) {
	m.focused = true
	cmd := m.input.Focus()
	return m, cmd
}

// Blur removes keyboard focus and leaves chip navigation.
func (m Model) Blur() Model {
	m.focused = false
	m.chipCursor = -1
	m.input.Blur()
	return m
}

// Focused reports whether the field has keyboard focus.
func (m Model) Focused() bool {
	return m.focused
}

// Value returns the text currently in the input.
func (m Model) Value() string {
	return m.input.Value()
}

// ChipCursor returns the highlighted chip index, or -1.
func (m Model) ChipCursor() int {
	return m.chipCursor
}

// Update handles keys while focused and chip close clicks at any time.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if m.chipCursor >= 0 {
			var handled bool
			if m, handled = m.handleChipKey(msg); handled {
				return m, nil
			}
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.sendKey(chips.KeyEnter), nil
	case tea.KeySpace:
		if consumed := m.keyDown(chips.KeySpace); consumed {
			return m.syncFromEngine(), nil
		}
	case tea.KeyBackspace:
		if m.input.Value() == "" {
			return m.sendKey(chips.KeyBackspace), nil
		}
	case tea.KeyLeft:
		if m.input.Value() == "" && len(m.engine.Tokens()) > 0 {
			m.chipCursor = len(m.engine.Tokens()) - 1
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		if err := m.engine.TextChange(after); err != nil {
			log.ErrorErr(log.CatUI, "objective text change", err)
		}
	}
	return m, cmd
}

// handleChipKey processes a key while a chip is highlighted. Keys it does
// not handle leave chip navigation and fall through to the text input.
func (m Model) handleChipKey(msg tea.KeyMsg) (Model, bool) {
	n := len(m.engine.Tokens())
	switch msg.String() {
	case "left", "h":
		m.chipCursor = max(m.chipCursor-1, 0)
	case "right", "l":
		m.chipCursor++
		if m.chipCursor >= n {
			m.chipCursor = -1
		}
	case "backspace", "delete", "x":
		m = m.closeChip(m.chipCursor)
		if remaining := len(m.engine.Tokens()); remaining == 0 {
			m.chipCursor = -1
		} else {
			m.chipCursor = min(m.chipCursor, remaining-1)
		}
	case "esc":
		m.chipCursor = -1
	default:
		m.chipCursor = -1
		return m, false
	}
	return m, true
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return m
	}
	for i := range m.engine.Tokens() {
		if z := zone.Get(m.closeZoneID(i)); z != nil && z.InBounds(msg) {
			m.chipCursor = -1
			return m.closeChip(i)
		}
	}
	return m
}

func (m Model) sendKey(k chips.Key) Model {
	if m.keyDown(k) {
		return m.syncFromEngine()
	}
	return m
}

func (m Model) keyDown(k chips.Key) bool {
	consumed, err := m.engine.KeyDown(k)
	if err != nil {
		log.ErrorErr(log.CatUI, "objective key", err)
		return false
	}
	return consumed
}

func (m Model) closeChip(i int) Model {
	if err := m.engine.ChipClose(i); err != nil {
		log.ErrorErr(log.CatUI, "close chip", err, "index", i)
	}
	return m
}

// syncFromEngine copies the engine buffer into the input after the engine
// consumed a key: cleared after a commit, the reopened chip after Backspace.
func (m Model) syncFromEngine() Model {
	m.input.SetValue(m.engine.Buffer())
	m.input.CursorEnd()
	return m
}

func (m Model) closeZoneID(i int) string {
	return fmt.Sprintf("%sclose-%d", m.zonePrefix, i)
}

// View renders the chips, the input and the error message.
func (m Model) View() string {
	inner := m.width - 2
	content := m.chipLines(inner)
	content = append(content, m.input.View())

	border := lipgloss.TerminalColor(styles.BorderDefaultColor)
	switch {
	case m.engine.HasInvalid():
		border = styles.StatusErrorColor
	case m.focused:
		border = styles.AccentColor
	}

	hint := ""
	if m.focused {
		hint = "enter to add"
	}
	view := styles.RenderFormSection(content, title, hint, m.width, border)

	if msg := m.engine.ErrorMessage(); msg != "" {
		view += "\n" + styles.ErrorTextStyle.Render(wordwrap.String(msg, m.width))
	}
	return view
}

// chipLines lays chips out left to right, wrapping at width.
func (m Model) chipLines(width int) []string {
	tokens := m.engine.Tokens()
	if len(tokens) == 0 {
		return nil
	}

	var (
		lines []string
		line  strings.Builder
		used  int
	)
	for i, tok := range tokens {
		chip := m.renderChip(i, tok, width)
		w := lipgloss.Width(chip)
		if used > 0 && used+1+w > width {
			lines = append(lines, line.String())
			line.Reset()
			used = 0
		}
		if used > 0 {
			line.WriteString(" ")
			used++
		}
		line.WriteString(chip)
		used += w
	}
	return append(lines, line.String())
}

func (m Model) renderChip(i int, tok string, width int) string {
	style := styles.ChipStyle
	switch {
	case i == m.chipCursor:
		style = styles.ChipSelectedStyle
	case !chips.IsValidEmail(tok):
		style = styles.ChipInvalidStyle
	}
	// padding (2) + space + close mark
	label := styles.TruncateString(tok, max(width-4, 1))
	return style.Render(label + " " + zone.Mark(m.closeZoneID(i), closeMark))
}
