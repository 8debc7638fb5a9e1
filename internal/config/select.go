package config

import (
	"fmt"

	"cloze/internal/spec"
)

// SelectTrials returns the trials named by ids in the given order, or every
// trial when ids is empty.
func SelectTrials(file spec.TrialFile, ids []string) ([]spec.TrialSpec, error) {
	if len(ids) == 0 {
		return file.Trials, nil
	}
	byID := make(map[string]spec.TrialSpec, len(file.Trials))
	for _, t := range file.Trials {
		byID[t.ID] = t
	}
	selected := make([]spec.TrialSpec, 0, len(ids))
	for _, id := range ids {
		t, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown trial %q", id)
		}
		selected = append(selected, t)
	}
	return selected, nil
}
