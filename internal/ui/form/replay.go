package form

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cloze/internal/simulate"
)

// replayMsg triggers the replay event at index.
type replayMsg struct {
	index int
}

// scheduleReplay emits the next replay step after its delay.
func (m Model) scheduleReplay() tea.Cmd {
	if m.next >= len(m.replay) {
		return nil
	}
	index := m.next
	var delay time.Duration
	if m.realtime {
		delay = m.replay[index].At
		if index > 0 {
			delay -= m.replay[index-1].At
		}
	}
	if delay <= 0 {
		return func() tea.Msg { return replayMsg{index: index} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return replayMsg{index: index} })
}

// applyReplay performs one timeline event as if typed by the participant.
func (m Model) applyReplay(msg replayMsg) (tea.Model, tea.Cmd) {
	if msg.index != m.next || msg.index >= len(m.replay) {
		return m, nil
	}
	event := m.replay[msg.index]
	m.next++
	switch event.Kind {
	case simulate.EventFill:
		if event.Field < 0 || event.Field >= len(m.inputs) {
			m.err = fmt.Errorf("replay: unknown field %d", event.Field)
			return m, tea.Quit
		}
		m.setFocus(event.Field)
		m.inputs[event.Field].SetValue(event.Value)
		return m, m.scheduleReplay()
	case simulate.EventSubmit:
		m.setFocus(len(m.inputs))
		model, cmd := m.submit()
		if cmd == nil {
			// A rejected replay has no further input to offer.
			cmd = tea.Quit
		}
		return model, cmd
	}
	return m, m.scheduleReplay()
}
