package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/enrich/internal/keys"
	"github.com/zjrosen/enrich/internal/ui/styles"
)

// headerHeight is the height of the bordered header buttons.
const headerHeight = 3

const (
	appTitle    = "enrich"
	savedLabel  = "Enrich ▾"
	newLabel    = "+"
	headerGap   = 1
	titleIndent = 1
)

// headerLayout returns the rendered header and the column where each
// button starts, so dropdowns can open underneath.
func (m Model) headerLayout() (header string, savedX, newX int) {
	title := lipgloss.NewStyle().
		PaddingLeft(titleIndent).
		PaddingRight(2).
		Height(headerHeight).
		AlignVertical(lipgloss.Center).
		Render(styles.TitleStyle.Foreground(styles.AccentColor).Render(appTitle))

	savedStyle, newStyle := styles.HeaderButtonStyle, styles.HeaderButtonStyle
	switch m.menu {
	case menuSaved:
		savedStyle = styles.HeaderButtonActiveStyle
	case menuTemplates:
		newStyle = styles.HeaderButtonActiveStyle
	}
	saved := savedStyle.Render(savedLabel)
	add := newStyle.Render(newLabel)
	gap := strings.Repeat(" ", headerGap)

	savedX = lipgloss.Width(title)
	newX = savedX + lipgloss.Width(saved) + headerGap
	header = lipgloss.JoinHorizontal(lipgloss.Top,
		title,
		zone.Mark(m.zonePrefix+"saved", saved),
		gap,
		zone.Mark(m.zonePrefix+"new", add),
	)
	return header, savedX, newX
}

// View implements tea.Model.
func (m Model) View() string {
	header, savedX, newX := m.headerLayout()

	sections := []string{header, "", m.table.View()}
	body := strings.Join(sections, "\n")

	if m.cfg.UI.ShowHelp {
		helpView := m.help.View(keys.App)
		if m.modalOpen {
			helpView = m.help.View(keys.Modal)
		}
		used := lipgloss.Height(body) + lipgloss.Height(helpView)
		if pad := m.height - used; pad > 0 {
			body += strings.Repeat("\n", pad)
		}
		body += "\n" + helpView
	}

	view := body
	switch m.menu {
	case menuTemplates:
		view = m.templates.OverlayAt(view, newX, headerHeight)
	case menuSaved:
		view = m.saved.OverlayAt(view, savedX, headerHeight)
	}
	if m.modalOpen {
		view = m.modal.Overlay(view, m.width, m.height)
	}
	view = m.toaster.Overlay(view, m.width, m.height)

	return zone.Scan(view)
}
