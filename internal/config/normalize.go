package config

import (
	"strings"

	"cloze/internal/simulate"
	"cloze/internal/spec"
	"cloze/internal/trial"
)

// Normalize trims identifiers and fills unset trial flags with their defaults.
func Normalize(file *spec.TrialFile) {
	for i := range file.Trials {
		t := &file.Trials[i]
		t.ID = strings.TrimSpace(t.ID)
		if strings.TrimSpace(t.ButtonText) == "" {
			t.ButtonText = trial.DefaultButtonText
		}
		t.MistakeMessage = strings.TrimSpace(t.MistakeMessage)
		t.AllowBlanks = orDefault(t.AllowBlanks, true)
		t.CaseSensitivity = orDefault(t.CaseSensitivity, true)
		t.Autofocus = orDefault(t.Autofocus, true)
	}
	file.Simulation.Mode = strings.ToLower(strings.TrimSpace(file.Simulation.Mode))
	if file.Simulation.Mode == "" {
		file.Simulation.Mode = simulate.Headless{}.Name()
	}
}

func orDefault(value *bool, def bool) *bool {
	if value != nil {
		return value
	}
	return &def
}

// TrialConfig converts a normalized trial declaration into a trial configuration.
// The mistake callback is left for the caller to wire.
func TrialConfig(t spec.TrialSpec) trial.Config {
	cfg := trial.DefaultConfig(t.Text)
	cfg.ButtonText = t.ButtonText
	cfg.CheckAnswers = t.CheckAnswers
	if t.AllowBlanks != nil {
		cfg.AllowBlanks = *t.AllowBlanks
	}
	if t.CaseSensitivity != nil {
		cfg.CaseSensitive = *t.CaseSensitivity
	}
	if t.Autofocus != nil {
		cfg.Autofocus = *t.Autofocus
	}
	return cfg
}
