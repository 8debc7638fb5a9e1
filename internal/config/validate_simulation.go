package config

import (
	"fmt"
	"strings"

	"cloze/internal/simulate"
	"cloze/internal/spec"
)

// validateSimulation checks the simulated responder settings.
func validateSimulation(file *spec.TrialFile, add issueAdder) {
	if _, err := simulate.ParseMode(file.Simulation.Mode); err != nil {
		add("simulation.mode", fmt.Sprintf("unsupported mode %q", file.Simulation.Mode))
	}
	for i, word := range file.Simulation.Words {
		if strings.TrimSpace(word) == "" {
			add(fmt.Sprintf("simulation.words[%d]", i), "must not be empty")
		}
	}
}
