// Package app contains the root application model: the header menus, the
// company table, the enrichment modal and the notifications.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/enrich/internal/config"
	"github.com/zjrosen/enrich/internal/enrichment"
	"github.com/zjrosen/enrich/internal/flags"
	"github.com/zjrosen/enrich/internal/keys"
	"github.com/zjrosen/enrich/internal/log"
	"github.com/zjrosen/enrich/internal/pubsub"
	"github.com/zjrosen/enrich/internal/ui/enrichmodal"
	"github.com/zjrosen/enrich/internal/ui/markdown"
	"github.com/zjrosen/enrich/internal/ui/picker"
	"github.com/zjrosen/enrich/internal/ui/styles"
	"github.com/zjrosen/enrich/internal/ui/table"
	"github.com/zjrosen/enrich/internal/ui/toaster"
	"github.com/zjrosen/enrich/internal/watcher"
)

const (
	templatesPicker = "templates"
	savedPicker     = "saved"
)

// menu is the header dropdown currently open.
type menu int

const (
	menuNone menu = iota
	menuTemplates
	menuSaved
)

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string

	session *enrichment.Session
	records *pubsub.Broker[enrichment.Record]

	ctx             context.Context
	cancel          context.CancelFunc
	recordListener  *pubsub.Listener[enrichment.Record]
	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.Listener[string]

	md        *markdown.Renderer
	table     table.Model
	checked   map[int]bool
	modal     enrichmodal.Model
	modalOpen bool
	menu      menu
	templates picker.Model
	saved     picker.Model
	toaster   toaster.Model
	help      help.Model

	zonePrefix string
	width      int
	height     int
}

// New creates the application. registry may be nil for an empty one. The
// config file at configPath is watched when cfg.AutoReload is set.
func New(cfg config.Config, configPath string, registry *enrichment.Registry) Model {
	if registry == nil {
		registry = enrichment.NewRegistry()
	}
	ctx, cancel := context.WithCancel(context.Background())

	records := pubsub.NewBroker[enrichment.Record]()
	session := enrichment.NewSession(registry,
		enrichment.WithFlags(flags.New(cfg.Flags)),
		enrichment.WithPublisher(records),
	)

	m := Model{
		cfg:            cfg,
		configPath:     configPath,
		session:        session,
		records:        records,
		ctx:            ctx,
		cancel:         cancel,
		recordListener: pubsub.NewListener(ctx, records),
		checked:        map[int]bool{},
		templates:      picker.New(templatesPicker, "New enrichment", templateOptions()),
		saved:          picker.New(savedPicker, "Enrichments", nil).SetEmptyText("No enrichments"),
		toaster:        toaster.New(),
		help:           help.New(),
		zonePrefix:     zone.NewPrefix(),
	}
	m.templates = m.templates.SetBoxWidth(34)
	m.saved = m.saved.SetBoxWidth(34)
	m.applyTheme()
	m.md = newRenderer(cfg.UI.MarkdownStyle)
	m.table = table.New(m.tableConfig()).SetRows(m.companyRows())

	if cfg.AutoReload && configPath != "" {
		m.startWatcher()
	}
	return m
}

func (m *Model) startWatcher() {
	w, err := watcher.New(watcher.DefaultConfig(m.configPath))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "create watcher", err)
		return
	}
	if err := w.Start(); err != nil {
		log.ErrorErr(log.CatWatcher, "start watcher", err, "path", m.configPath)
		_ = w.Stop()
		return
	}
	m.watcherHandle = w
	m.watcherListener = pubsub.NewListener(m.ctx, w.Broker())
}

func newRenderer(style string) *markdown.Renderer {
	r, err := markdown.New(style, 50)
	if err != nil {
		log.ErrorErr(log.CatUI, "markdown renderer unavailable", err)
		return nil
	}
	return r
}

func templateOptions() []picker.Option {
	ts := enrichment.Templates()
	opts := make([]picker.Option, len(ts))
	for i, t := range ts {
		opts[i] = picker.Option{Icon: t.Icon, Label: t.Title, Value: t.Slug}
	}
	return opts
}

// Session exposes the enrichment session.
func (m Model) Session() *enrichment.Session {
	return m.session
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.recordListener.Listen()}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.templates = m.templates.SetSize(msg.Width, msg.Height)
		m.saved = m.saved.SetSize(msg.Width, msg.Height)
		m.table = m.table.SetSize(msg.Width, m.tableHeight())
		if m.modalOpen {
			m.modal = m.modal.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case pubsub.Event[enrichment.Record]:
		return m.handleRecordEvent(msg)

	case pubsub.Event[string]:
		return m.handleConfigChanged(msg)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case picker.SelectMsg:
		switch msg.PickerID {
		case templatesPicker:
			m.menu = menuNone
			return m.openTemplate(enrichment.Kind(msg.Index))
		case savedPicker:
			m.menu = menuNone
			return m.openRecord(msg.Index)
		}

	case picker.CancelMsg:
		if msg.PickerID == templatesPicker || msg.PickerID == savedPicker {
			m.menu = menuNone
			return m, nil
		}

	case table.HeaderClickMsg:
		if i, ok := recordIndex(msg.Key); ok {
			return m.openRecord(i)
		}
		return m, nil

	case enrichmodal.SubmitMsg:
		return m.submit(msg)

	case enrichmodal.CancelMsg:
		if err := m.session.Cancel(); err != nil {
			log.ErrorErr(log.CatUI, "cancel draft", err)
		}
		m.modalOpen = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.modalOpen {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.modalOpen {
		var cmd tea.Cmd
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	}

	switch m.menu {
	case menuTemplates:
		var cmd tea.Cmd
		m.templates, cmd = m.templates.Update(msg)
		return m, cmd
	case menuSaved:
		var cmd tea.Cmd
		m.saved, cmd = m.saved.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.App.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.App.NewEnrichment):
		m.openTemplateMenu()
	case key.Matches(msg, keys.App.SavedMenu):
		m.openSavedMenu()
	case key.Matches(msg, keys.App.Help):
		m.help.ShowAll = !m.help.ShowAll
	case msg.String() == " " || msg.String() == "x":
		m.checked[m.table.Cursor()] = !m.checked[m.table.Cursor()]
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.modalOpen:
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	case m.menu == menuTemplates:
		m.templates, cmd = m.templates.Update(msg)
		return m, cmd
	case m.menu == menuSaved:
		m.saved, cmd = m.saved.Update(msg)
		return m, cmd
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		if z := zone.Get(m.zonePrefix + "new"); z != nil && z.InBounds(msg) {
			m.openTemplateMenu()
			return m, nil
		}
		if z := zone.Get(m.zonePrefix + "saved"); z != nil && z.InBounds(msg) {
			m.openSavedMenu()
			return m, nil
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// openTemplateMenu opens the "+" menu on the first template.
func (m *Model) openTemplateMenu() {
	m.templates = m.templates.SetSelected(0)
	m.menu = menuTemplates
}

// openSavedMenu refreshes the record list with current ages and opens it.
func (m *Model) openSavedMenu() {
	now := m.session.Registry().Now()
	records := m.session.Records()
	opts := make([]picker.Option, len(records))
	for i, r := range records {
		opts[i] = picker.Option{
			Icon:     r.Icon(),
			Label:    r.EnrichmentName,
			Value:    r.ID,
			Subtitle: enrichment.CreatedLabel(r, now),
		}
	}
	m.saved = m.saved.SetOptions(opts)
	m.menu = menuSaved
}

func (m Model) openTemplate(kind enrichment.Kind) (tea.Model, tea.Cmd) {
	if err := m.session.SelectTemplate(kind); err != nil {
		log.ErrorErr(log.CatUI, "open template", err, "kind", kind)
		return m, nil
	}
	return m.showModal()
}

func (m Model) openRecord(index int) (tea.Model, tea.Cmd) {
	if err := m.session.SelectRecord(index); err != nil {
		log.ErrorErr(log.CatUI, "open record", err, "index", index)
		return m, nil
	}
	return m.showModal()
}

func (m Model) showModal() (tea.Model, tea.Cmd) {
	m.modal = enrichmodal.New(m.session, m.cfg.Enrichment.Models, m.cfg.Enrichment.DefaultModel, m.md).
		SetSize(m.width, m.height)
	m.modalOpen = true
	return m, m.modal.Init()
}

func (m Model) submit(msg enrichmodal.SubmitMsg) (tea.Model, tea.Cmd) {
	var err error
	if msg.Edit {
		_, err = m.session.Edit(m.ctx)
	} else {
		_, err = m.session.Create(m.ctx)
	}
	if err != nil {
		log.ErrorErr(log.CatUI, "save enrichment", err, "edit", msg.Edit)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(err.Error(), toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}
	// The success toast follows the record event.
	m.modalOpen = false
	m.refreshTable()
	return m, nil
}

func (m Model) handleRecordEvent(ev pubsub.Event[enrichment.Record]) (tea.Model, tea.Cmd) {
	verb := "Created"
	if ev.Type == pubsub.UpdatedEvent {
		verb = "Updated"
	}
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(fmt.Sprintf("%s %s", verb, ev.Payload.EnrichmentName), toaster.StyleSuccess, toaster.DefaultDuration)
	return m, tea.Batch(cmd, m.recordListener.Listen())
}

func (m *Model) refreshTable() {
	m.table = m.table.SetConfig(m.tableConfig()).SetRows(m.companyRows())
}

func (m Model) tableHeight() int {
	return max(m.height-headerHeight-2, 1)
}

func (m *Model) applyTheme() {
	t := m.cfg.Theme
	styles.ApplyTheme(t.Accent, t.Muted, t.Error, t.Success)
}

// Close releases the watcher and subscriptions.
func (m *Model) Close() error {
	m.cancel()
	m.records.Close()
	if m.watcherHandle != nil {
		return m.watcherHandle.Stop()
	}
	return nil
}
