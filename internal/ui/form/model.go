package form

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cloze/internal/simulate"
	"cloze/internal/trial"
)

// DefaultMistakeMessage is shown after a rejected submit.
const DefaultMistakeMessage = "Some answers are missing or incorrect."

// Options configures the terminal form.
type Options struct {
	NoColor        bool
	MistakeMessage string
	// Replay drives the form from a simulated timeline instead of the keyboard.
	Replay []simulate.Event
	// Realtime paces replay events by their offsets; otherwise they run back to back.
	Realtime bool
}

// Model renders one cloze trial as a terminal form using Bubble Tea.
type Model struct {
	trial   *trial.Trial
	inputs  []textinput.Model
	focus   int
	styles  styles
	message string
	mistake bool

	replay   []simulate.Event
	realtime bool
	next     int

	outcome trial.Outcome
	err     error
	aborted bool
}

// NewModel builds a form with one text input per blank of tr.
func NewModel(tr *trial.Trial, opts Options) Model {
	fields := tr.Fields()
	inputs := make([]textinput.Model, len(fields))
	for i, field := range fields {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = "____"
		input.Width = 12
		input.SetValue(field.Value)
		inputs[i] = input
	}
	message := opts.MistakeMessage
	if message == "" {
		message = DefaultMistakeMessage
	}
	m := Model{
		trial:    tr,
		inputs:   inputs,
		focus:    -1,
		styles:   newStyles(opts.NoColor),
		message:  message,
		replay:   opts.Replay,
		realtime: opts.Realtime,
	}
	if focus := tr.Focus(); focus >= 0 {
		m.setFocus(focus)
	}
	return m
}

// Init starts the cursor blink or the first replay step.
func (m Model) Init() tea.Cmd {
	if len(m.replay) > 0 {
		return m.scheduleReplay()
	}
	return textinput.Blink
}

// Update handles key presses and replay steps.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		switch typed.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		case tea.KeyTab, tea.KeyDown:
			return m, m.setFocus(m.wrapFocus(m.focus + 1))
		case tea.KeyShiftTab, tea.KeyUp:
			return m, m.setFocus(m.wrapFocus(m.focus - 1))
		case tea.KeyEnter:
			if m.onButton() || len(m.inputs) == 0 {
				return m.submit()
			}
			return m, m.setFocus(m.focus + 1)
		}
	case replayMsg:
		return m.applyReplay(typed)
	}
	return m.updateFocused(msg)
}

// View renders the template text with inline inputs, the button and any mistake message.
func (m Model) View() string {
	return render(m)
}

// Outcome returns the last submit outcome.
func (m Model) Outcome() trial.Outcome {
	return m.outcome
}

// Err returns the error that stopped the form, if any.
func (m Model) Err() error {
	return m.err
}

// Aborted reports whether the participant quit without finishing.
func (m Model) Aborted() bool {
	return m.aborted
}

// Focus returns the focused input index, len(inputs) for the button, or -1.
func (m Model) Focus() int {
	return m.focus
}

func (m Model) onButton() bool {
	return m.focus == len(m.inputs)
}

// wrapFocus cycles focus over the inputs and the button.
func (m Model) wrapFocus(target int) int {
	slots := len(m.inputs) + 1
	return ((target % slots) + slots) % slots
}

// setFocus moves focus to target, blurring every other input.
func (m *Model) setFocus(target int) tea.Cmd {
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == target {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	m.focus = target
	return cmd
}

// updateFocused forwards msg to the focused input.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus < 0 || m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit copies the input values into the trial and submits it.
func (m Model) submit() (tea.Model, tea.Cmd) {
	for i := range m.inputs {
		if err := m.trial.SetValue(i, m.inputs[i].Value()); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}
	outcome, err := m.trial.Submit()
	m.outcome = outcome
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	if outcome.Finished {
		m.mistake = false
		return m, tea.Quit
	}
	m.mistake = true
	return m, nil
}
