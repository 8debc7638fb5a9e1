package form

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cloze/internal/cloze"
)

type styles struct {
	text    lipgloss.Style
	flagged lipgloss.Style
	button  lipgloss.Style
	active  lipgloss.Style
	mistake lipgloss.Style
	done    lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{text: plain, flagged: plain, button: plain, active: plain, mistake: plain, done: plain}
	}
	return styles{
		text:    lipgloss.NewStyle(),
		flagged: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Underline(true),
		button:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		active:  lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		mistake: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		done:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

// render lays out the form.
func render(m Model) string {
	if m.trial.Finished() {
		return m.styles.done.Render("Response recorded.") + "\n"
	}
	fields := m.trial.Fields()
	var body strings.Builder
	for _, segment := range m.trial.Segments() {
		if segment.Kind == cloze.SegmentText {
			body.WriteString(m.styles.text.Render(segment.Text))
			continue
		}
		view := m.inputs[segment.Blank].View()
		if fields[segment.Blank].Flagged {
			view = m.styles.flagged.Render(view)
		}
		body.WriteString(view)
	}

	button := "[ " + m.trial.Button() + " ]"
	if m.onButton() {
		button = m.styles.active.Render(button)
	} else {
		button = m.styles.button.Render(button)
	}
	lines := []string{body.String(), "", button}
	if m.mistake {
		lines = append(lines, "", m.styles.mistake.Render(m.message))
	}
	lines = append(lines, "", m.styles.button.Render("tab: next field  enter: confirm  esc: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}
