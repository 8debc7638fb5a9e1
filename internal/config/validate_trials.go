package config

import (
	"fmt"
	"strings"

	"cloze/internal/spec"
)

// validateTrials checks every trial declaration.
func validateTrials(file *spec.TrialFile, add issueAdder) {
	if len(file.Trials) == 0 {
		add("trials", "must include at least one entry")
		return
	}
	seen := map[string]struct{}{}
	for i, t := range file.Trials {
		prefix := fmt.Sprintf("trials[%d]", i)
		if t.ID == "" {
			add(prefix+".id", "is required")
		} else if _, exists := seen[t.ID]; exists {
			add(prefix+".id", fmt.Sprintf("duplicate id %q", t.ID))
		} else {
			seen[t.ID] = struct{}{}
		}
		if strings.TrimSpace(t.Text) == "" {
			add(prefix+".text", "is required")
		}
	}
}
