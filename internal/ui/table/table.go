package table

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/enrich/internal/ui/styles"
)

const columnGap = " "

// HeaderClickMsg is sent when a marked header cell is clicked.
type HeaderClickMsg struct {
	Column int
	Key    string
}

// Model is the table state: configuration, rows and the row cursor.
type Model struct {
	config Config
	rows   []any
	cursor int
	width  int
	height int
}

// New creates a table with the given configuration.
func New(cfg Config) Model {
	return Model{config: cfg}
}

// SetConfig replaces the configuration, typically after the column set
// changed.
func (m Model) SetConfig(cfg Config) Model {
	m.config = cfg
	return m
}

// SetRows replaces the rows, keeping the cursor in range.
func (m Model) SetRows(rows []any) Model {
	m.rows = rows
	m.cursor = min(m.cursor, max(len(rows)-1, 0))
	return m
}

// SetSize sets the viewport the table is clipped to.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Cursor returns the selected row index.
func (m Model) Cursor() int {
	return m.cursor
}

// Row returns the row under the cursor.
func (m Model) Row() (any, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil, false
	}
	return m.rows[m.cursor], true
}

// Update moves the cursor and maps header clicks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		}
	case tea.MouseMsg:
		if m.config.HeaderZoneID == nil || msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		for i, col := range m.config.Columns {
			if z := zone.Get(m.config.HeaderZoneID(i, col)); z != nil && z.InBounds(msg) {
				click := HeaderClickMsg{Column: i, Key: col.Key}
				return m, func() tea.Msg { return click }
			}
		}
	}
	return m, nil
}

// View renders header and rows, clipped to the configured size.
func (m Model) View() string {
	if err := m.config.Validate(); err != nil {
		return styles.ErrorTextStyle.Render(err.Error())
	}

	var lines []string
	if m.config.ShowHeader {
		lines = append(lines, m.renderHeader())
	}
	if len(m.rows) == 0 && m.config.EmptyMessage != "" {
		lines = append(lines, styles.MutedTextStyle.Render(m.config.EmptyMessage))
	}
	for i, row := range m.rows {
		lines = append(lines, m.renderRow(row, i == m.cursor))
	}

	if m.height > 0 && len(lines) > m.height {
		lines = lines[:m.height]
	}
	if m.width > 0 {
		for i, l := range lines {
			lines[i] = ansi.Truncate(l, m.width, "")
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.TextDescriptionColor)
	parts := make([]string, len(m.config.Columns))
	for i, col := range m.config.Columns {
		w := max(col.Width, 1)
		cell := headerStyle.Render(align(styles.TruncateString(col.Header, w), w, col.Align))
		if m.config.HeaderZoneID != nil {
			cell = zone.Mark(m.config.HeaderZoneID(i, col), cell)
		}
		parts[i] = cell
	}
	return strings.Join(parts, columnGap)
}

func (m Model) renderRow(row any, selected bool) string {
	parts := make([]string, len(m.config.Columns))
	for i, col := range m.config.Columns {
		w := max(col.Width, 1)
		text := col.Render(row, col.Key, w, selected)
		if lipgloss.Width(text) > w {
			text = ansi.Truncate(text, w, "")
		}
		parts[i] = align(text, w, col.Align)
	}
	line := strings.Join(parts, columnGap)
	if selected {
		return lipgloss.NewStyle().Bold(true).Render(line)
	}
	return line
}

func align(text string, width int, pos lipgloss.Position) string {
	return lipgloss.PlaceHorizontal(width, pos, text)
}
