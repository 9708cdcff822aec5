package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/enrich/internal/config"
	"github.com/zjrosen/enrich/internal/enrichment"
	"github.com/zjrosen/enrich/internal/pubsub"
	"github.com/zjrosen/enrich/internal/ui/enrichmodal"
	"github.com/zjrosen/enrich/internal/ui/picker"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

// createTestModel builds an app without a config file or watcher.
func createTestModel(t *testing.T) (Model, *fixedClock) {
	t.Helper()
	clock := &fixedClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	reg := enrichment.NewRegistry(enrichment.WithClock(clock))
	m := New(config.Defaults(), "", reg)
	t.Cleanup(func() { _ = m.Close() })

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), clock
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys and feeds each resulting message back, the way the
// bubbletea runtime would for synchronous commands.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = update(t, m, keyMsg(k))
		m = drain(t, m, cmd)
	}
	return m
}

// drain feeds picker and modal messages produced by cmd back into the
// model. Commands that do not return promptly (blink timers, listeners) are
// abandoned.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range runCmd(cmd) {
		switch msg.(type) {
		case enrichmodal.SubmitMsg, enrichmodal.CancelMsg, picker.SelectMsg, picker.CancelMsg:
			m, _ = update(t, m, msg)
		}
	}
	return m
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// nextRecordEvent waits for the session's publish and applies it.
func nextRecordEvent(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.recordListener.Listen()()
	ev, ok := msg.(pubsub.Event[enrichment.Record])
	require.True(t, ok, "expected record event, got %T", msg)
	m, _ = update(t, m, ev)
	return m
}

func plainView(m Model) string {
	return ansi.Strip(m.View())
}

func createAgent(t *testing.T, m Model, emails ...string) Model {
	t.Helper()
	m = press(t, m, "n", "j", "enter")
	require.True(t, m.modalOpen)
	m = press(t, m, "tab", "tab")
	for _, e := range emails {
		m = typeText(t, m, e)
		m = press(t, m, "enter")
	}
	m = press(t, m, "ctrl+s")
	return m
}

func TestApp_WindowSizeMsg(t *testing.T) {
	m, _ := createTestModel(t)

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
	assert.Len(t, strings.Split(m.View(), "\n"), 40)
}

func TestApp_InitialView(t *testing.T) {
	m, _ := createTestModel(t)
	view := plainView(m)

	assert.Contains(t, view, "enrich")
	assert.Contains(t, view, "Enrich ▾")
	assert.Contains(t, view, "Company Name")
	assert.Contains(t, view, "CFO Name")
	assert.Contains(t, view, "SynetecHQ")
	assert.Contains(t, view, "Wavenest")
	assert.NotContains(t, view, "{}")
}

func TestApp_TemplateMenu(t *testing.T) {
	m, _ := createTestModel(t)
	m = press(t, m, "n")

	view := plainView(m)
	for _, tpl := range enrichment.Templates() {
		assert.Contains(t, view, tpl.Title)
	}

	m = press(t, m, "esc")
	assert.Equal(t, menuNone, m.menu)
}

func TestApp_CreateFlow(t *testing.T) {
	m, _ := createTestModel(t)
	m = createAgent(t, m, "ceo@wavenest.io", "cfo@wavenest.io")

	require.False(t, m.modalOpen)
	require.Len(t, m.session.Records(), 1)
	rec := m.session.Records()[0]
	assert.Equal(t, "AI Agent 1", rec.EnrichmentName)
	assert.Equal(t, []string{"ceo@wavenest.io", "cfo@wavenest.io"}, rec.Emails)

	m = nextRecordEvent(t, m)
	view := plainView(m)
	assert.Contains(t, view, "✦ AI Agent 1")
	assert.Contains(t, view, "{}")
	assert.Contains(t, view, "Created AI Agent 1")
}

func TestApp_CreateBlockedByInvalidEmail(t *testing.T) {
	m, _ := createTestModel(t)
	m = createAgent(t, m, "not-an-email")

	assert.True(t, m.modalOpen, "create is disabled while an invalid email is present")
	assert.Empty(t, m.session.Records())
	assert.Contains(t, plainView(m), "Some emails are invalid: not-an-email")
}

func TestApp_SequenceNumbering(t *testing.T) {
	m, _ := createTestModel(t)
	m = createAgent(t, m)
	m = nextRecordEvent(t, m)
	m = createAgent(t, m)
	m = nextRecordEvent(t, m)

	recs := m.session.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "AI Agent 1", recs[0].EnrichmentName)
	assert.Equal(t, "AI Agent 2", recs[1].EnrichmentName)
}

func TestApp_TemplateMenuReopensAtFirstTemplate(t *testing.T) {
	m, _ := createTestModel(t)
	m = createAgent(t, m)
	last, _ := m.templates.Selected()
	require.Equal(t, "AI Agent", last.Label)

	m = press(t, m, "n")
	opt, ok := m.templates.Selected()
	require.True(t, ok)
	assert.Equal(t, "Deep Research Agent", opt.Label)
}

func TestApp_SubmitRefreshesTableWithoutEvent(t *testing.T) {
	m, _ := createTestModel(t)
	m = createAgent(t, m, "a@b.com")

	// The record event has not been delivered yet.
	view := plainView(m)
	assert.Contains(t, view, "✦ AI Agent 1")
	assert.Contains(t, view, "{}")
	assert.NotContains(t, view, "Created AI Agent 1")
}

func TestApp_CancelDiscardsDraft(t *testing.T) {
	m, _ := createTestModel(t)
	m = press(t, m, "n", "enter")
	require.True(t, m.modalOpen)

	m = press(t, m, "esc")
	assert.False(t, m.modalOpen)
	assert.Equal(t, enrichment.ModeClosed, m.session.Mode())
	assert.Empty(t, m.session.Records())
	assert.Zero(t, m.session.Registry().Count("Deep Research Agent"))
}

func TestApp_SavedMenuAndEdit(t *testing.T) {
	m, clock := createTestModel(t)

	m = press(t, m, "e")
	assert.Contains(t, plainView(m), "No enrichments")
	m = press(t, m, "esc")

	m = createAgent(t, m, "a@b.com")
	m = nextRecordEvent(t, m)
	clock.t = clock.t.Add(3 * time.Minute)

	m = press(t, m, "e")
	assert.Contains(t, plainView(m), "Created 3 min ago")

	m = press(t, m, "enter")
	require.True(t, m.modalOpen)
	require.True(t, m.modal.IsEdit())
	assert.Contains(t, plainView(m), "Edit")

	m = press(t, m, "tab", "tab")
	m = typeText(t, m, "bad")
	m = press(t, m, "enter", "ctrl+s")
	require.False(t, m.modalOpen, "edit is not gated")

	m = nextRecordEvent(t, m)
	rec := m.session.Records()[0]
	assert.Equal(t, []string{"a@b.com", "bad"}, rec.Emails)
	assert.Equal(t, 1, m.session.Registry().Count("AI Agent"))
	assert.Contains(t, plainView(m), "Updated AI Agent 1")
}

func TestApp_HeaderClickOpensEdit(t *testing.T) {
	m, _ := createTestModel(t)
	m = createAgent(t, m)
	m = nextRecordEvent(t, m)

	m, _ = update(t, m, tableHeaderClick("record-0"))
	assert.True(t, m.modalOpen)
	assert.Equal(t, enrichment.ModeEdit, m.session.Mode())
}

func TestApp_CheckboxToggle(t *testing.T) {
	m, _ := createTestModel(t)
	m = press(t, m, "x")
	assert.Contains(t, plainView(m), "[x] SynetecHQ")

	m = press(t, m, "j", "x", "k", "x")
	view := plainView(m)
	assert.Contains(t, view, "[ ] SynetecHQ")
	assert.Contains(t, view, "[x] Wavenest")
}

func TestApp_ConfigReload(t *testing.T) {
	m, _ := createTestModel(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte(`
enrichment:
  companies: [Acme]
flags:
  duplicates-block-create: true
`), 0o600))

	m, _ = update(t, m, pubsub.Event[string]{Type: pubsub.ReloadedEvent, Payload: path})
	view := plainView(m)
	assert.Contains(t, view, "Acme")
	assert.NotContains(t, view, "SynetecHQ")
	assert.Contains(t, view, "Config reloaded")

	m = press(t, m, "n", "enter", "tab", "tab")
	for range 2 {
		m = typeText(t, m, "a@b.com")
		m = press(t, m, "enter")
	}
	assert.False(t, m.session.CanCreate(), "flag makes duplicates block create")
}

func TestApp_ConfigReloadInvalidKeepsConfig(t *testing.T) {
	m, _ := createTestModel(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  accent: red\n"), 0o600))

	m, _ = update(t, m, pubsub.Event[string]{Type: pubsub.ReloadedEvent, Payload: path})
	view := plainView(m)
	assert.Contains(t, view, "Config not reloaded")
	assert.Contains(t, view, "SynetecHQ")
}

func TestApp_QuitKeys(t *testing.T) {
	m, _ := createTestModel(t)

	_, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	m = press(t, m, "n", "enter")
	m = press(t, m, "q")
	require.True(t, m.modalOpen, "q is text inside the modal")
	d, _ := m.session.Draft()
	assert.Equal(t, "Deep Research Agent 1q", d.EnrichmentName)

	_, cmd = update(t, m, keyMsg("ctrl+c"))
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestRecordIndex(t *testing.T) {
	i, ok := recordIndex(recordKey(7))
	assert.True(t, ok)
	assert.Equal(t, 7, i)

	_, ok = recordIndex("company")
	assert.False(t, ok)
	_, ok = recordIndex("record-x")
	assert.False(t, ok)
}

func TestApp_Teatest(t *testing.T) {
	m := New(config.Defaults(), "", nil)
	t.Cleanup(func() { _ = m.Close() })

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Company Name"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keyMsg("n"))
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("LinkedIn"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keyMsg("ctrl+c"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}
