package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloze/internal/spec"
)

// writeTrials writes payload to name under a temp dir and returns the path.
func writeTrials(t *testing.T, name, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write trials: %v", err)
	}
	return path
}

// validFile returns a minimal normalized trials file.
func validFile() spec.TrialFile {
	file := spec.TrialFile{
		Version: 1,
		Trials:  []spec.TrialSpec{{ID: "t1", Text: "This is a %cloze% text."}},
	}
	Normalize(&file)
	return file
}

// TestLoadAppliesDefaults verifies unset flags take the trial defaults.
func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTrials(t, "trials.yml", `version: 1
trials:
  - id: " t1 "
    text: "This is a %cloze% text."
`)
	file, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got := file.Trials[0]
	if got.ID != "t1" {
		t.Fatalf("expected trimmed id, got %q", got.ID)
	}
	if got.ButtonText != "OK" {
		t.Fatalf("expected default button text, got %q", got.ButtonText)
	}
	if got.CheckAnswers || !*got.AllowBlanks || !*got.CaseSensitivity || !*got.Autofocus {
		t.Fatalf("unexpected defaults %+v", got)
	}
	if file.Simulation.Mode != "headless" {
		t.Fatalf("expected headless default mode, got %q", file.Simulation.Mode)
	}
}

// TestLoadKeepsExplicitFlags verifies explicit false flags survive normalization.
func TestLoadKeepsExplicitFlags(t *testing.T) {
	path := writeTrials(t, "trials.json", `{
  "version": 1,
  "trials": [
    {"id": "t1", "text": "%a%", "check_answers": true, "allow_blanks": false,
     "case_sensitivity": false, "autofocus": false, "button_text": "Next"}
  ],
  "simulation": {"mode": "Visual", "seed": 3}
}`)
	file, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := TrialConfig(file.Trials[0])
	if !cfg.CheckAnswers || cfg.AllowBlanks || cfg.CaseSensitive || cfg.Autofocus || cfg.ButtonText != "Next" {
		t.Fatalf("unexpected trial config %+v", cfg)
	}
	if file.Simulation.Mode != "visual" {
		t.Fatalf("expected lowercased mode, got %q", file.Simulation.Mode)
	}
}

// TestNormalizeKeepsButtonText verifies the label is kept as written and blank labels fall back to OK.
func TestNormalizeKeepsButtonText(t *testing.T) {
	file := spec.TrialFile{
		Version: 1,
		Trials: []spec.TrialSpec{
			{ID: "padded", Text: "%a%", ButtonText: " Next  step "},
			{ID: "blank", Text: "%a%", ButtonText: "   "},
		},
	}
	Normalize(&file)
	if got := TrialConfig(file.Trials[0]).ButtonText; got != " Next  step " {
		t.Fatalf("expected configured label, got %q", got)
	}
	if got := TrialConfig(file.Trials[1]).ButtonText; got != "OK" {
		t.Fatalf("expected default label, got %q", got)
	}
}

// TestTrialConfigDefaults verifies a normalized declaration maps onto the trial defaults.
func TestTrialConfigDefaults(t *testing.T) {
	cfg := TrialConfig(validFile().Trials[0])
	if cfg.Text != "This is a %cloze% text." || cfg.ButtonText != "OK" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.CheckAnswers || !cfg.AllowBlanks || !cfg.CaseSensitive || !cfg.Autofocus {
		t.Fatalf("unexpected flags %+v", cfg)
	}
}

// TestValidateCollectsIssues verifies every problem is reported at once.
func TestValidateCollectsIssues(t *testing.T) {
	file := spec.TrialFile{
		Version: 2,
		Trials: []spec.TrialSpec{
			{ID: "dup", Text: "%a%"},
			{ID: "dup", Text: "  "},
			{Text: "%b%"},
		},
		Simulation: spec.SimulationSpec{Mode: "psychic", Words: []string{"ok", " "}},
	}
	Normalize(&file)
	err := Validate(&file)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, want := range []string{"version", "trials[1].id", "trials[1].text", "trials[2].id", "simulation.mode", "simulation.words[1]"} {
		if !fields[want] {
			t.Fatalf("expected issue for %s, got %v", want, validationErr.Issues)
		}
	}
	if !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("expected duplicate id message, got %q", err.Error())
	}
}

// TestValidateRequiresTrials verifies an empty file is rejected.
func TestValidateRequiresTrials(t *testing.T) {
	file := spec.TrialFile{}
	Normalize(&file)
	err := Validate(&file)
	if err == nil || !strings.Contains(err.Error(), "version: is required") || !strings.Contains(err.Error(), "trials: must include") {
		t.Fatalf("unexpected error %v", err)
	}
}

// TestValidateAcceptsUnbalancedMarkers verifies an odd marker count is not a config error.
func TestValidateAcceptsUnbalancedMarkers(t *testing.T) {
	file := validFile()
	file.Trials[0].Text = "Save 50% today"
	if err := Validate(&file); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

// TestSelectTrials verifies selection order and unknown ids.
func TestSelectTrials(t *testing.T) {
	file := spec.TrialFile{Trials: []spec.TrialSpec{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	all, err := SelectTrials(file, nil)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all trials, got %v %v", all, err)
	}
	picked, err := SelectTrials(file, []string{"c", "a"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if picked[0].ID != "c" || picked[1].ID != "a" {
		t.Fatalf("unexpected order %+v", picked)
	}
	if _, err := SelectTrials(file, []string{"z"}); err == nil {
		t.Fatalf("expected unknown trial error")
	}
}

// TestScaffoldWritesLoadableFile verifies the starter file passes validation and is not overwritten.
func TestScaffoldWritesLoadableFile(t *testing.T) {
	path := ConfigPath(t.TempDir())
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	file, err := Load(path)
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if len(file.Trials) != 3 {
		t.Fatalf("expected 3 starter trials, got %d", len(file.Trials))
	}
	if err := Scaffold(path); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
}

// TestFindTrialsPath verifies the search walks up to the nearest .cloze directory.
func TestFindTrialsPath(t *testing.T) {
	root := t.TempDir()
	want := ConfigPath(root)
	if err := Scaffold(want); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got, err := FindTrialsPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

// TestFindTrialsPathMissingFile verifies an empty .cloze directory is reported.
func TestFindTrialsPathMissingFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := FindTrialsPath(root); err == nil || !strings.Contains(err.Error(), "is missing") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}
