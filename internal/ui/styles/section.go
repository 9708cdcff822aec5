package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	lineH    = "─"
	lineV    = "│"
)

// RenderFormSection draws content inside a rounded box of the given outer
// width with the title inset in the top edge:
//
//	╭─ Title (hint) ─────╮
//	│content             │
//	╰────────────────────╯
//
// borderColor is used for the frame and title; the hint is always muted.
func RenderFormSection(content []string, title, hint string, width int, borderColor lipgloss.TerminalColor) string {
	frame := lipgloss.NewStyle().Foreground(borderColor)
	inner := max(width-2, 1)

	var top strings.Builder
	top.WriteString(frame.Render(cornerTL))
	used := 0
	if title != "" {
		top.WriteString(frame.Render(lineH+" ") + frame.Bold(true).Render(title))
		used = 2 + lipgloss.Width(title)
		if hint != "" {
			top.WriteString(" " + MutedTextStyle.Render("("+hint+")"))
			used += 3 + lipgloss.Width(hint)
		}
		top.WriteString(frame.Render(" "))
		used++
	}
	top.WriteString(frame.Render(strings.Repeat(lineH, max(inner-used, 0)) + cornerTR))

	lines := make([]string, 0, len(content)+2)
	lines = append(lines, top.String())
	for _, row := range content {
		pad := max(inner-lipgloss.Width(row), 0)
		lines = append(lines, frame.Render(lineV)+row+strings.Repeat(" ", pad)+frame.Render(lineV))
	}
	lines = append(lines, frame.Render(cornerBL+strings.Repeat(lineH, inner)+cornerBR))
	return strings.Join(lines, "\n")
}
