package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"cloze/internal/config"
)

// resolveTrialsPath normalizes a trials file path or finds it from CWD.
func resolveTrialsPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return config.FindTrialsPath("")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve trials path: %w", err)
	}
	return abs, nil
}
