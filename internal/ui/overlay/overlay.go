// Package overlay composites a foreground block (a dropdown, the modal, a
// toast) over an already rendered background view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position selects how the foreground is anchored.
type Position int

const (
	Center Position = iota
	Top
	Bottom
	// Anchor places the top-left corner at Config.X, Config.Y. Used for
	// dropdown menus opened from a header button.
	Anchor
)

// Config describes the viewport and the placement.
type Config struct {
	Width    int
	Height   int
	Position Position
	X, Y     int // Anchor only
	PadY     int // Top and Bottom only
}

// Place draws fg over bg. Both may contain ANSI styling; background cells
// left and right of each foreground line are kept. The foreground is
// shifted left when it would overflow the right edge.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, "")
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))

	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}
	return strings.Join(bgLines, "\n")
}

// splice replaces the cells of bg starting at column x with fg.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(fg)
	right := ""
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

func origin(cfg Config, fgWidth, fgHeight int) (x, y int) {
	x = (cfg.Width - fgWidth) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - fgHeight - cfg.PadY
	case Anchor:
		x, y = cfg.X, cfg.Y
		if cfg.Width > 0 && x+fgWidth > cfg.Width {
			x = cfg.Width - fgWidth
		}
	default:
		y = (cfg.Height - fgHeight) / 2
	}
	return max(x, 0), max(y, 0)
}
