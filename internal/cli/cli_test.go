package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestCommandTableOrder verifies the commands cloze exposes and their order in help.
func TestCommandTableOrder(t *testing.T) {
	var names []string
	for _, cmd := range commands {
		names = append(names, cmd.Name)
	}
	want := []string{"init", "validate", "run", "simulate", "serve", "results"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("command table mismatch (-want +got):\n%s", diff)
	}
}

// TestHelpListsSummaries verifies root help prints every command with its summary.
func TestHelpListsSummaries(t *testing.T) {
	code, out, errOut := runCommand(t, "help")
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d", code)
	}
	if errOut != "" {
		t.Fatalf("expected empty stderr, got %q", errOut)
	}
	if !strings.Contains(out, "cloze <command> [options]") {
		t.Fatalf("expected root usage line, got %q", out)
	}
	for _, cmd := range commands {
		if !strings.Contains(out, cmd.Summary) {
			t.Fatalf("expected summary of %s in %q", cmd.Name, out)
		}
	}
}

// TestEmptyArgsIsUsageError verifies running without a command prints usage and exits 2.
func TestEmptyArgsIsUsageError(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := Run(nil, &out, &errOut); code != ExitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
	if !strings.Contains(out.String(), "Commands:") || errOut.Len() != 0 {
		t.Fatalf("unexpected output %q / %q", out.String(), errOut.String())
	}
}

// TestUnknownCommandGoesToStderr verifies an unknown command is reported with usage on stderr.
func TestUnknownCommandGoesToStderr(t *testing.T) {
	code, out, errOut := runCommand(t, "grade")
	if code != ExitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
	if out != "" {
		t.Fatalf("expected empty stdout, got %q", out)
	}
	if !strings.Contains(errOut, "Unknown command: grade") || !strings.Contains(errOut, "Commands:") {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

// TestTrialCommandUsageFlags verifies the trial commands advertise their flags.
func TestTrialCommandUsageFlags(t *testing.T) {
	cases := map[string][]string{
		"run":      {"--ui auto|live|plain", "--db <path>", "--no-color", "[trial-id]..."},
		"simulate": {"--mode headless|interactive", "--seed <n>", "--realtime", "--ui plain|live"},
		"serve":    {"--addr <host:port>", "<trial-id>"},
		"results":  {"--db <path>", "[trial-id]"},
	}
	for name, flags := range cases {
		code, out, errOut := runCommand(t, name, "--help")
		if code != ExitOK || errOut != "" {
			t.Fatalf("%s: expected clean help, got %d %q", name, code, errOut)
		}
		for _, flag := range flags {
			if !strings.Contains(out, flag) {
				t.Fatalf("%s: expected %q in usage %q", name, flag, out)
			}
		}
	}
}

// TestEveryCommandHasHelp verifies each command prints its usage lines for -h.
func TestEveryCommandHasHelp(t *testing.T) {
	for _, cmd := range commands {
		code, out, _ := runCommand(t, cmd.Name, "-h")
		if code != ExitOK {
			t.Fatalf("%s: expected exit ok, got %d", cmd.Name, code)
		}
		for _, line := range cmd.Usage {
			if !strings.Contains(out, line) {
				t.Fatalf("%s: expected usage line %q in %q", cmd.Name, line, out)
			}
		}
	}
}
