package config

import (
	"fmt"
	"os"

	"cloze/internal/spec"
)

// Load reads, parses, normalizes, and validates a trials file.
func Load(path string) (spec.TrialFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return spec.TrialFile{}, fmt.Errorf("read trials file: %w", err)
	}
	file, err := spec.ParseTrialFile(data, path)
	if err != nil {
		return spec.TrialFile{}, err
	}
	Normalize(&file)
	if err := Validate(&file); err != nil {
		return spec.TrialFile{}, err
	}
	return file, nil
}
