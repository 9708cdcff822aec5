package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestNew(t *testing.T) {
	m := New()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New().Show("Created AI Agent 1", StyleSuccess, time.Millisecond)

	require.NotNil(t, cmd)
	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "✓ Created AI Agent 1")
}

func TestStyles(t *testing.T) {
	tests := []struct {
		style Style
		mark  string
	}{
		{StyleSuccess, "✓"},
		{StyleError, "✗"},
		{StyleInfo, "i"},
	}
	for _, tt := range tests {
		m, _ := New().Show("msg", tt.style, time.Second)
		assert.Contains(t, m.View(), tt.mark+" msg")
	}
}

func TestDismiss(t *testing.T) {
	m, cmd := New().Show("hello", StyleInfo, time.Millisecond)

	m = m.Update(cmd())
	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestStaleDismissIgnored(t *testing.T) {
	m, first := New().Show("first", StyleSuccess, time.Millisecond)
	m, _ = m.Show("second", StyleSuccess, time.Hour)

	m = m.Update(first())
	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "second")
	assert.NotContains(t, m.View(), "first")
}

func TestOverlay(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 30)+"\n", 9) + strings.Repeat(".", 30)

	assert.Equal(t, bg, New().Overlay(bg, 30, 10))

	m, _ := New().Show("saved", StyleSuccess, time.Second)
	lines := strings.Split(m.Overlay(bg, 30, 10), "\n")
	require.Len(t, lines, 10)
	assert.Contains(t, lines[7], "✓ saved")
	assert.Equal(t, strings.Repeat(".", 30), lines[9])
}
