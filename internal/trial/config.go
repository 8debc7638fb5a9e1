package trial

import "go.uber.org/zap"

// DefaultButtonText labels the submit control when no label is configured.
const DefaultButtonText = "OK"

// Config holds the settings of one cloze trial.
type Config struct {
	// Text is the template with blanks delimited by cloze.Marker.
	Text string
	// ButtonText labels the submit control.
	ButtonText string
	// CheckAnswers enables the correctness gate.
	CheckAnswers bool
	// AllowBlanks disables the completeness gate.
	AllowBlanks bool
	// CaseSensitive keeps answer casing when matching.
	CaseSensitive bool
	// Autofocus focuses the first input when the form is first shown.
	Autofocus bool
	// Mistake is called synchronously when a submit fails a gate.
	Mistake func()
}

// DefaultConfig returns a config for text with the standard defaults.
func DefaultConfig(text string) Config {
	return Config{
		Text:          text,
		ButtonText:    DefaultButtonText,
		AllowBlanks:   true,
		CaseSensitive: true,
		Autofocus:     true,
	}
}

// Options wires the host services a trial depends on.
type Options struct {
	Finisher Finisher
	Logger   *zap.Logger
}
