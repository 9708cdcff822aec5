// Package enrichmodal is the create/edit dialog for one enrichment: name,
// AI model, objective chips and the Cancel / Create (or Edit) buttons.
//
// The modal reads and writes the open draft through a Session. It never
// commits: Create and Edit are requested with SubmitMsg and the parent
// decides what to do with them.
package enrichmodal

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/enrich/internal/enrichment"
	"github.com/zjrosen/enrich/internal/log"
	"github.com/zjrosen/enrich/internal/ui/chipinput"
	"github.com/zjrosen/enrich/internal/ui/markdown"
	"github.com/zjrosen/enrich/internal/ui/overlay"
	"github.com/zjrosen/enrich/internal/ui/picker"
	"github.com/zjrosen/enrich/internal/ui/styles"
)

const (
	defaultWidth = 60
	modelPicker  = "model"
)

// Session is the draft the modal edits.
type Session interface {
	chipinput.Engine
	Draft() (enrichment.Draft, bool)
	SetName(name string) error
	SetModel(model string) error
	CanCreate() bool
}

// SubmitMsg requests Create (Edit false) or Edit (Edit true).
type SubmitMsg struct {
	Edit bool
}

// CancelMsg requests closing the modal without saving.
type CancelMsg struct{}

type field int

const (
	fieldName field = iota
	fieldModel
	fieldObjective
	fieldCancel
	fieldSubmit
	fieldCount
)

// Model is the modal state.
type Model struct {
	session Session
	draft   enrichment.Draft

	name      textinput.Model
	objective chipinput.Model

	models     []picker.Option
	modelIndex int
	picker     picker.Model
	pickerOpen bool

	md         *markdown.Renderer
	zonePrefix string
	focus      field
	width      int
	height     int
}

// New builds a modal over the session's open draft. models are the choices
// for the model field; defaultModel is the entry that stands for "no
// explicit model". md may be nil, in which case the description is plain.
func New(session Session, models []string, defaultModel string, md *markdown.Renderer) Model {
	draft, _ := session.Draft()

	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = draft.Title + " 1"
	name.CharLimit = 80
	name.SetValue(draft.EnrichmentName)
	name.Focus()

	options, index := modelOptions(models, defaultModel, draft.AIModel)

	m := Model{
		session:    session,
		draft:      draft,
		name:       name,
		objective:  chipinput.New(session),
		models:     options,
		modelIndex: index,
		md:         md,
		zonePrefix: zone.NewPrefix(),
		width:      defaultWidth,
	}
	m.picker = picker.New(modelPicker, "AI Model", options).SetSelected(index)
	return m.SetSize(0, 0)
}

// modelOptions lists models with the default one mapped to the empty value.
// A current model missing from the list is appended so it stays selectable.
func modelOptions(models []string, defaultModel, current string) ([]picker.Option, int) {
	if len(models) == 0 {
		models = enrichment.DefaultModels
	}
	if defaultModel == "" {
		defaultModel = enrichment.DefaultModelLabel
	}
	options := make([]picker.Option, 0, len(models)+1)
	for _, name := range models {
		value := name
		if name == defaultModel {
			value = ""
		}
		options = append(options, picker.Option{Label: name, Value: value})
	}
	if current != "" && !slices.ContainsFunc(options, func(o picker.Option) bool { return o.Value == current }) {
		options = append(options, picker.Option{Label: current, Value: current})
	}
	return options, picker.FindIndexByValue(options, current)
}

// Init starts the cursor blink of the focused name field.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize sets the viewport. The modal is at most defaultWidth wide.
func (m Model) SetSize(width, height int) Model {
	m.height = height
	m.width = defaultWidth
	if width > 0 {
		m.width = min(defaultWidth, width-4)
	}
	inner := m.width - 4
	m.name.Width = max(inner-4, 1)
	m.objective = m.objective.SetWidth(inner)
	m.picker = m.picker.SetSize(width, height).SetBoxWidth(max(inner/2, 24))
	return m
}

// Draft returns the draft the modal was opened with.
func (m Model) Draft() enrichment.Draft {
	return m.draft
}

// IsEdit reports whether the modal edits an existing record.
func (m Model) IsEdit() bool {
	return m.draft.IsEdit
}

// PickerOpen reports whether the model picker is showing.
func (m Model) PickerOpen() bool {
	return m.pickerOpen
}

// SelectedModel returns the model field option.
func (m Model) SelectedModel() picker.Option {
	if m.modelIndex < 0 || m.modelIndex >= len(m.models) {
		return picker.Option{}
	}
	return m.models[m.modelIndex]
}

// Update handles keys, clicks and picker results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case picker.SelectMsg:
		if msg.PickerID != modelPicker {
			return m, nil
		}
		m.pickerOpen = false
		m.setModel(msg.Index)
		return m, nil

	case picker.CancelMsg:
		if msg.PickerID == modelPicker {
			m.pickerOpen = false
		}
		return m, nil

	case tea.MouseMsg:
		if m.pickerOpen {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.pickerOpen {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	cmds = append(cmds, cmd)
	m.objective, cmd = m.objective.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// Chip navigation owns esc and arrows while a chip is highlighted.
	if m.focus == fieldObjective && m.objective.ChipCursor() >= 0 {
		var cmd tea.Cmd
		m.objective, cmd = m.objective.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		return m, cancel
	case "tab":
		return m.setFocus((m.focus + 1) % fieldCount)
	case "shift+tab":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case "ctrl+s":
		return m, m.submit()
	}

	switch m.focus {
	case fieldName:
		if msg.Type == tea.KeyEnter {
			return m.setFocus(fieldModel)
		}
		before := m.name.Value()
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		if after := m.name.Value(); after != before {
			if err := m.session.SetName(after); err != nil {
				log.ErrorErr(log.CatUI, "set name", err)
			}
		}
		return m, cmd

	case fieldModel:
		switch msg.String() {
		case "left", "h":
			m.setModel((m.modelIndex + len(m.models) - 1) % len(m.models))
		case "right", "l":
			m.setModel((m.modelIndex + 1) % len(m.models))
		case "enter", " ":
			m.picker = m.picker.SetSelected(m.modelIndex)
			m.pickerOpen = true
		}
		return m, nil

	case fieldObjective:
		var cmd tea.Cmd
		m.objective, cmd = m.objective.Update(msg)
		return m, cmd

	case fieldCancel:
		if msg.Type == tea.KeyEnter {
			return m, cancel
		}
		if msg.String() == "right" {
			return m.setFocus(fieldSubmit)
		}

	case fieldSubmit:
		if msg.Type == tea.KeyEnter {
			return m, m.submit()
		}
		if msg.String() == "left" {
			return m.setFocus(fieldCancel)
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		if z := zone.Get(m.zonePrefix + "submit"); z != nil && z.InBounds(msg) {
			return m, m.submit()
		}
		if z := zone.Get(m.zonePrefix + "cancel"); z != nil && z.InBounds(msg) {
			return m, cancel
		}
		if z := zone.Get(m.zonePrefix + "model"); z != nil && z.InBounds(msg) {
			m.focus = fieldModel
			m.picker = m.picker.SetSelected(m.modelIndex)
			m.pickerOpen = true
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.objective, cmd = m.objective.Update(msg)
	return m, cmd
}

func (m Model) setFocus(f field) (Model, tea.Cmd) {
	m.focus = f
	m.name.Blur()
	m.objective = m.objective.Blur()

	var cmd tea.Cmd
	switch f {
	case fieldName:
		cmd = m.name.Focus()
	case fieldObjective:
		m.objective, cmd = m.objective.Focus()
	}
	return m, cmd
}

func (m *Model) setModel(i int) {
	if i < 0 || i >= len(m.models) {
		return
	}
	m.modelIndex = i
	if err := m.session.SetModel(m.models[i].Value); err != nil {
		log.ErrorErr(log.CatUI, "set model", err)
	}
}

// submit returns the request for the primary button, or nil while the
// creation gate is closed.
func (m Model) submit() tea.Cmd {
	if !m.draft.IsEdit && !m.session.CanCreate() {
		return nil
	}
	sub := SubmitMsg{Edit: m.draft.IsEdit}
	return func() tea.Msg { return sub }
}

func cancel() tea.Msg {
	return CancelMsg{}
}

// View renders the modal box.
func (m Model) View() string {
	inner := m.width - 4
	pad := lipgloss.NewStyle().PaddingLeft(1)
	rule := lipgloss.NewStyle().Foreground(styles.BorderDefaultColor).Render(strings.Repeat("─", m.width-2))

	var b strings.Builder
	b.WriteString(pad.Render(styles.TitleStyle.Render(m.draft.Icon + "  " + m.draft.Title)))
	b.WriteString("\n")
	b.WriteString(pad.Render(styles.MutedTextStyle.Render(m.description())))
	b.WriteString("\n")
	b.WriteString(rule)
	b.WriteString("\n\n")

	b.WriteString(pad.Render(styles.RenderFormSection(
		[]string{" " + m.name.View()}, "Enrichment Name", "", inner, m.sectionColor(fieldName))))
	b.WriteString("\n")
	b.WriteString(pad.Render(zone.Mark(m.zonePrefix+"model", styles.RenderFormSection(
		[]string{m.modelLine(inner - 2)}, "AI Model", m.modelHint(), inner, m.sectionColor(fieldModel)))))
	b.WriteString("\n")
	b.WriteString(pad.Render(m.objective.View()))
	b.WriteString("\n\n")
	b.WriteString(pad.Render(m.buttons()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(m.width - 2).
		Render(b.String())
}

func (m Model) description() string {
	if m.md == nil {
		return m.draft.Description
	}
	return m.md.RenderOrPlain(m.draft.Description)
}

func (m Model) sectionColor(f field) lipgloss.TerminalColor {
	if m.focus == f {
		return styles.AccentColor
	}
	return styles.BorderDefaultColor
}

func (m Model) modelHint() string {
	if m.focus == fieldModel {
		return "←/→ or enter"
	}
	return ""
}

func (m Model) modelLine(width int) string {
	label := styles.TruncateString(m.SelectedModel().Label, max(width-4, 1))
	if m.focus != fieldModel {
		return " " + label
	}
	return " " + styles.MutedTextStyle.Render("‹ ") + label + styles.MutedTextStyle.Render(" ›")
}

func (m Model) buttons() string {
	cancelStyle := styles.SecondaryButtonStyle
	if m.focus == fieldCancel {
		cancelStyle = styles.SecondaryButtonFocusedStyle
	}

	label := "Create"
	if m.draft.IsEdit {
		label = "Edit"
	}
	submitStyle := styles.PrimaryButtonStyle
	switch {
	case !m.draft.IsEdit && !m.session.CanCreate():
		submitStyle = styles.DisabledButtonStyle
	case m.focus == fieldSubmit:
		submitStyle = styles.PrimaryButtonFocusedStyle
	}

	return zone.Mark(m.zonePrefix+"cancel", cancelStyle.Render("Cancel")) + "  " +
		zone.Mark(m.zonePrefix+"submit", submitStyle.Render(label))
}

// Overlay draws the modal centered over background, with the model picker
// on top when open.
func (m Model) Overlay(background string, width, height int) string {
	out := overlay.Place(overlay.Config{Width: width, Height: height, Position: overlay.Center}, m.View(), background)
	if m.pickerOpen {
		out = m.picker.Overlay(out)
	}
	return out
}
