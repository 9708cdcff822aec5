package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/enrich/internal/config"
	"github.com/zjrosen/enrich/internal/flags"
	"github.com/zjrosen/enrich/internal/log"
	"github.com/zjrosen/enrich/internal/pubsub"
	"github.com/zjrosen/enrich/internal/ui/toaster"
)

// handleConfigChanged reloads the config file after the watcher reported an
// edit. An invalid file keeps the running configuration.
func (m Model) handleConfigChanged(ev pubsub.Event[string]) (tea.Model, tea.Cmd) {
	listen := m.watcherListener.Listen()
	if ev.Type != pubsub.ReloadedEvent {
		return m, listen
	}

	cfg, err := config.Load(ev.Payload)
	if err != nil {
		log.ErrorErr(log.CatConfig, "config reload failed", err, "path", ev.Payload)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Config not reloaded: "+err.Error(), toaster.StyleError, toaster.DefaultDuration)
		return m, tea.Batch(cmd, listen)
	}

	m = m.applyConfig(cfg)
	log.Info(log.CatConfig, "config reloaded", "path", ev.Payload)
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show("Config reloaded", toaster.StyleInfo, toaster.DefaultDuration)
	return m, tea.Batch(cmd, listen)
}

// applyConfig swaps in cfg: theme, flags, markdown style and companies. An
// open modal keeps its model list until it is reopened.
func (m Model) applyConfig(cfg config.Config) Model {
	styleChanged := cfg.UI.MarkdownStyle != m.cfg.UI.MarkdownStyle
	m.cfg = cfg

	m.applyTheme()
	m.session.SetFlags(flags.New(cfg.Flags))
	if styleChanged || m.md == nil {
		m.md = newRenderer(cfg.UI.MarkdownStyle)
	}
	m.refreshTable()
	return m
}
