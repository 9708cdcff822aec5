package chipinput

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/enrich/internal/chips"
	"github.com/zjrosen/enrich/internal/enrichment"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newInput(t *testing.T) (Model, *enrichment.Session) {
	t.Helper()
	s := enrichment.NewSession(enrichment.NewRegistry())
	require.NoError(t, s.SelectTemplate(enrichment.AIAgent))
	m, _ := New(s).SetWidth(40).Focus()
	return m, s
}

func typeString(m Model, text string) Model {
	for _, r := range text {
		if r == ' ' {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, k tea.KeyType) Model {
	m, _ = m.Update(tea.KeyMsg{Type: k})
	return m
}

func TestTypingMirrorsEngineBuffer(t *testing.T) {
	m, s := newInput(t)

	m = typeString(m, "a@b")
	require.Equal(t, "a@b", m.Value())
	require.Equal(t, "a@b", s.Buffer())
	require.Empty(t, s.Tokens())
}

func TestEnterAndSpaceCommit(t *testing.T) {
	m, s := newInput(t)

	m = typeString(m, "ceo@wavenest.io")
	m = press(m, tea.KeyEnter)
	require.Equal(t, []string{"ceo@wavenest.io"}, s.Tokens())
	require.Empty(t, m.Value())

	m = typeString(m, "cfo@wavenest.io ")
	require.Equal(t, []string{"ceo@wavenest.io", "cfo@wavenest.io"}, s.Tokens())
	require.Empty(t, m.Value())
	require.Empty(t, s.Buffer())
}

func TestEnterOnBlankIsIgnored(t *testing.T) {
	m, s := newInput(t)

	m = press(m, tea.KeyEnter)
	require.Empty(t, s.Tokens())

	m = typeString(m, " ")
	require.Empty(t, s.Tokens(), "space on a blank buffer is plain text")
	require.Equal(t, " ", m.Value())
}

func TestBackspaceReopensLastChip(t *testing.T) {
	m, s := newInput(t)
	m = typeString(m, "bad")
	m = press(m, tea.KeyEnter)
	require.True(t, s.HasInvalid())

	m = press(m, tea.KeyBackspace)
	require.Empty(t, s.Tokens())
	require.Equal(t, "bad", m.Value())
	require.Equal(t, "bad", s.Buffer())
	require.False(t, s.HasInvalid())

	// With text present, backspace edits the text.
	m = press(m, tea.KeyBackspace)
	require.Equal(t, "ba", m.Value())
	require.Equal(t, "ba", s.Buffer())
}

func TestChipNavigationAndDelete(t *testing.T) {
	m, s := newInput(t)
	for _, e := range []string{"a@b.com", "bad", "c@d.com"} {
		m = typeString(m, e)
		m = press(m, tea.KeyEnter)
	}

	m = press(m, tea.KeyLeft)
	require.Equal(t, 2, m.ChipCursor())
	m = press(m, tea.KeyLeft)
	require.Equal(t, 1, m.ChipCursor())

	m = press(m, tea.KeyDelete)
	require.Equal(t, []string{"a@b.com", "c@d.com"}, s.Tokens())
	require.False(t, s.HasInvalid())
	require.Equal(t, 1, m.ChipCursor())

	m = press(m, tea.KeyRight)
	require.Equal(t, -1, m.ChipCursor())

	m = press(m, tea.KeyLeft)
	m = press(m, tea.KeyEsc)
	require.Equal(t, -1, m.ChipCursor())
}

func TestTypingLeavesChipNavigation(t *testing.T) {
	m, s := newInput(t)
	m = typeString(m, "a@b.com")
	m = press(m, tea.KeyEnter)
	m = press(m, tea.KeyLeft)
	require.Zero(t, m.ChipCursor())

	m = typeString(m, "z")
	require.Equal(t, -1, m.ChipCursor())
	require.Equal(t, "z", s.Buffer())
}

func TestBlurredIgnoresKeys(t *testing.T) {
	m, s := newInput(t)
	m = m.Blur()

	m = typeString(m, "abc")
	require.Empty(t, m.Value())
	require.Empty(t, s.Buffer())
}

func TestView(t *testing.T) {
	m, _ := newInput(t)
	m = typeString(m, "a@b.com")
	m = press(m, tea.KeyEnter)
	m = typeString(m, "bad")
	m = press(m, tea.KeyEnter)

	view := ansi.Strip(zone.Scan(m.View()))
	lines := strings.Split(view, "\n")

	require.Contains(t, lines[0], "Objective (enter to add)")
	require.Contains(t, lines[1], "a@b.com ×")
	require.Contains(t, lines[1], "bad ×")
	require.Contains(t, view, "Some emails are invalid: bad")
}

func TestView_Duplicate(t *testing.T) {
	m, s := newInput(t)
	for range 2 {
		m = typeString(m, "a@b.com")
		m = press(m, tea.KeyEnter)
	}
	require.Equal(t, chips.ErrorDuplicate, s.ErrorState())
	require.Contains(t, ansi.Strip(zone.Scan(m.View())), chips.DuplicateMessage)
}

func TestChipLinesWrap(t *testing.T) {
	m, _ := newInput(t)
	m = m.SetWidth(24)
	for _, e := range []string{"one@x.io", "two@x.io", "three@x.io"} {
		m = typeString(m, e)
		m = press(m, tea.KeyEnter)
	}

	lines := m.chipLines(22)
	require.Len(t, lines, 3)
	for _, l := range lines {
		require.LessOrEqual(t, lipgloss.Width(zone.Scan(l)), 22)
	}
}

func TestClickCloseRemovesChip(t *testing.T) {
	m, s := newInput(t)
	for _, e := range []string{"a@b.com", "c@d.com"} {
		m = typeString(m, e)
		m = press(m, tea.KeyEnter)
	}

	var z *zone.ZoneInfo
	for range 10 {
		_ = zone.Scan(m.View())
		z = zone.Get(m.closeZoneID(0))
		if z != nil && !z.IsZero() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z)
	require.False(t, z.IsZero())

	m, _ = m.Update(tea.MouseMsg{
		X:      z.StartX,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	require.Equal(t, []string{"c@d.com"}, s.Tokens())
}
