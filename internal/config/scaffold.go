package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultTrials = `version: 1
trials:
  - id: intro
    text: "This is a %cloze% text."

  - id: alternatives
    text: "This is a %cloze/gapfill% text."
    check_answers: true
    mistake_message: "Some answers are not correct yet."

  - id: capitals
    text: "The capital of France is %Paris% and of Italy %Rome%. Your favourite city: %%."
    button_text: Continue
    check_answers: true
    allow_blanks: false
    case_sensitivity: false

simulation:
  mode: headless
  seed: 1
`

// Scaffold writes a starter trials file, refusing to overwrite an existing one.
func Scaffold(path string) error {
	if path == "" {
		return fmt.Errorf("trials path is required")
	}
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("trials path %q is a directory", path)
		}
		return fmt.Errorf("trials file already exists at %q", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat trials file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create trials dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultTrials), 0o644); err != nil {
		return fmt.Errorf("write trials file: %w", err)
	}
	return nil
}
