package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleTrials = `version: 1
trials:
  - id: intro
    text: "This is a %cloze% text."
    check_answers: true
    mistake_message: "Not quite."
  - id: open
    text: "Name: %%"
simulation:
  mode: headless
  seed: 42
  words: ["alpha", "beta", "gamma"]
`

// writeTrialsFile writes content to a trials file under a temp dir.
func writeTrialsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".cloze", "trials.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create trials dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write trials: %v", err)
	}
	return path
}

// withAnswers replaces the answer input for the duration of the test.
func withAnswers(t *testing.T, input string) {
	t.Helper()
	original := answerInput
	answerInput = strings.NewReader(input)
	t.Cleanup(func() { answerInput = original })
}

// runCommand runs the CLI and returns exit code and captured output.
func runCommand(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// resultLines returns the JSON result lines printed to stdout.
func resultLines(stdout string) []string {
	var lines []string
	for _, line := range strings.Split(stdout, "\n") {
		if strings.HasPrefix(line, `{"trial_id"`) {
			lines = append(lines, line)
		}
	}
	return lines
}

