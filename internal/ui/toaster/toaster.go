// Package toaster shows short notifications at the bottom of the screen:
// enrichment created or updated, config reloaded, reload failures.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/enrich/internal/ui/overlay"
	"github.com/zjrosen/enrich/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 3 * time.Second

// Style selects the toast border and marker.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
)

func (s Style) marker() (string, lipgloss.TerminalColor) {
	switch s {
	case StyleError:
		return "✗", styles.StatusErrorColor
	case StyleInfo:
		return "i", styles.StatusInfoColor
	default:
		return "✓", styles.StatusSuccessColor
	}
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	seq int
}

// Model holds the toaster state. Each Show bumps seq so a dismiss timer
// from an earlier toast cannot hide a newer one.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show displays message and returns the command that dismisses it after d.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.seq++
	m.message = message
	m.style = style
	m.visible = true
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Hide dismisses the toast immediately.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}
	mark, color := m.style.marker()
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Render(lipgloss.NewStyle().Foreground(color).Render(mark) + " " + m.message)
}

// Overlay draws the toast bottom-center over bg.
func (m Model) Overlay(bg string, width, height int) string {
	fg := m.View()
	if fg == "" {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, fg, bg)
}
