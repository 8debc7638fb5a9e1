package config

import (
	"fmt"

	"cloze/internal/spec"
)

// Validate checks a normalized trials file for correctness.
func Validate(file *spec.TrialFile) error {
	collector := &issueCollector{}

	if file.Version == 0 {
		collector.add("version", "is required")
	} else if file.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", file.Version))
	}

	validateTrials(file, collector.add)
	validateSimulation(file, collector.add)

	return collector.result()
}
