package cli

import (
	"context"
	"os"
	"os/signal"

	"cloze/internal/config"
	"cloze/internal/spec"
	"cloze/internal/ui/form"
)

// commandContext is a test seam for the context commands run under.
var commandContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// loadTrials loads the trials file and selects trials by id.
func loadTrials(filePath string, ids []string) (spec.TrialFile, []spec.TrialSpec, error) {
	resolved, err := resolveTrialsPath(filePath)
	if err != nil {
		return spec.TrialFile{}, nil, err
	}
	file, err := config.Load(resolved)
	if err != nil {
		return spec.TrialFile{}, nil, err
	}
	selected, err := config.SelectTrials(file, ids)
	if err != nil {
		return spec.TrialFile{}, nil, err
	}
	return file, selected, nil
}

// mistakeMessage returns the trial's mistake message or the default.
func mistakeMessage(ts spec.TrialSpec) string {
	if ts.MistakeMessage != "" {
		return ts.MistakeMessage
	}
	return form.DefaultMistakeMessage
}
