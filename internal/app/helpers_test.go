package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/enrich/internal/ui/table"
)

const cmdTimeout = 50 * time.Millisecond

// runCmd executes cmd, flattening batches. Each command gets cmdTimeout to
// produce its message.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return nil
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case tea.Msg:
		return []tea.Msg{msg}
	}
	return nil
}

func tableHeaderClick(key string) table.HeaderClickMsg {
	i, _ := recordIndex(key)
	return table.HeaderClickMsg{Column: i + 2, Key: key}
}
