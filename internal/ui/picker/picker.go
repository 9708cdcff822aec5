// Package picker provides the option list used for the template menu, the
// saved-enrichments menu and the AI model selector.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/enrich/internal/ui/overlay"
	"github.com/zjrosen/enrich/internal/ui/styles"
)

const defaultBoxWidth = 30

// Option is one selectable row.
type Option struct {
	Icon     string
	Label    string
	Value    string
	Subtitle string // second, muted line
}

// SelectMsg is sent when an option is chosen with enter or a click.
type SelectMsg struct {
	PickerID string
	Index    int
	Option   Option
}

// CancelMsg is sent when the picker is dismissed with esc.
type CancelMsg struct {
	PickerID string
}

// Model holds the picker state.
type Model struct {
	id         string
	zonePrefix string
	title      string
	emptyText  string
	options    []Option
	selected   int
	boxWidth   int

	viewportWidth  int
	viewportHeight int
}

// New creates a picker. id is echoed in SelectMsg and CancelMsg so a parent
// hosting several pickers can tell them apart.
func New(id, title string, options []Option) Model {
	return Model{
		id:         id,
		zonePrefix: zone.NewPrefix(),
		title:      title,
		options:    options,
	}
}

// ID returns the picker id.
func (m Model) ID() string {
	return m.id
}

// SetOptions replaces the options, keeping the cursor in range.
func (m Model) SetOptions(options []Option) Model {
	m.options = options
	m.selected = min(m.selected, max(len(options)-1, 0))
	return m
}

// Options returns the current options.
func (m Model) Options() []Option {
	return m.options
}

// SetEmptyText sets the line shown when there are no options.
func (m Model) SetEmptyText(text string) Model {
	m.emptyText = text
	return m
}

// SetSize sets the viewport dimensions used by Overlay.
func (m Model) SetSize(width, height int) Model {
	m.viewportWidth = width
	m.viewportHeight = height
	return m
}

// SetBoxWidth sets the inner width of the box.
func (m Model) SetBoxWidth(width int) Model {
	m.boxWidth = width
	return m
}

// SetSelected moves the cursor. Out of range indexes are ignored.
func (m Model) SetSelected(index int) Model {
	if index >= 0 && index < len(m.options) {
		m.selected = index
	}
	return m
}

// Selected returns the option under the cursor.
func (m Model) Selected() (Option, bool) {
	if m.selected >= 0 && m.selected < len(m.options) {
		return m.options[m.selected], true
	}
	return Option{}, false
}

// Update handles navigation, selection and dismissal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down", "ctrl+n":
			if m.selected < len(m.options)-1 {
				m.selected++
			}
		case "k", "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
		case "enter":
			return m, m.choose(m.selected)
		case "esc":
			return m, m.cancel()
		}

	case tea.MouseMsg:
		if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		for i := range m.options {
			if z := zone.Get(m.zoneID(i)); z != nil && z.InBounds(msg) {
				m.selected = i
				return m, m.choose(i)
			}
		}
	}
	return m, nil
}

func (m Model) choose(i int) tea.Cmd {
	if i < 0 || i >= len(m.options) {
		return nil
	}
	sel := SelectMsg{PickerID: m.id, Index: i, Option: m.options[i]}
	return func() tea.Msg { return sel }
}

func (m Model) cancel() tea.Cmd {
	id := m.id
	return func() tea.Msg { return CancelMsg{PickerID: id} }
}

func (m Model) zoneID(i int) string {
	return fmt.Sprintf("%soption-%d", m.zonePrefix, i)
}

// View renders the box without positioning.
func (m Model) View() string {
	width := m.boxWidth
	if width == 0 {
		width = defaultBoxWidth
	}

	var rows []string
	if m.title != "" {
		rows = append(rows,
			styles.TitleStyle.PaddingLeft(1).Render(m.title),
			lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width)),
		)
	}

	if len(m.options) == 0 {
		rows = append(rows, styles.MutedTextStyle.PaddingLeft(1).Render(m.emptyText))
	}
	for i, opt := range m.options {
		rows = append(rows, zone.Mark(m.zoneID(i), m.renderOption(opt, i == m.selected, width)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width).
		Render(strings.Join(rows, "\n"))
}

func (m Model) renderOption(opt Option, selected bool, width int) string {
	label := opt.Label
	if opt.Icon != "" {
		label = opt.Icon + " " + label
	}
	label = styles.TruncateString(label, width-1)

	prefix := " "
	labelStyle := lipgloss.NewStyle()
	if selected {
		prefix = styles.SelectionIndicatorStyle.Render(">")
		labelStyle = labelStyle.Bold(true).Foreground(styles.AccentColor)
	}
	line := prefix + labelStyle.Render(label)
	if opt.Subtitle == "" {
		return line
	}
	sub := styles.TruncateString(opt.Subtitle, width-1)
	return line + "\n " + styles.MutedTextStyle.Render(sub)
}

// Overlay renders the picker centered on background.
func (m Model) Overlay(background string) string {
	return overlay.Place(overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Center,
	}, m.View(), background)
}

// OverlayAt renders the picker with its top-left corner at x, y, as a
// dropdown below a button.
func (m Model) OverlayAt(background string, x, y int) string {
	return overlay.Place(overlay.Config{
		Width:    m.viewportWidth,
		Height:   m.viewportHeight,
		Position: overlay.Anchor,
		X:        x,
		Y:        y,
	}, m.View(), background)
}

// FindIndexByValue returns the index of the option with value, or 0.
func FindIndexByValue(options []Option, value string) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return 0
}
