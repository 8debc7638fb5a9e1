package cli

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"cloze/internal/formserver"
	"cloze/internal/testutil"
	"cloze/internal/trial"
)

// TestServeCommandRequiresTrialID verifies serve fails when no trial id is provided.
func TestServeCommandRequiresTrialID(t *testing.T) {
	cmd := findCommand("serve")
	if cmd == nil {
		t.Fatalf("serve command not found")
	}
	var stdout, stderr bytes.Buffer
	if exitCode := cmd.Run([]string{}, &stdout, &stderr); exitCode != ExitUsage {
		t.Fatalf("expected usage exit, got %d", exitCode)
	}
}

// TestServeCommandPassesConfig ensures serve forwards parsed config to the server layer.
func TestServeCommandPassesConfig(t *testing.T) {
	path := writeTrialsFile(t, sampleTrials)
	var gotConfig formserver.Config
	origServe := serveForm
	serveForm = func(_ context.Context, cfg formserver.Config) error {
		gotConfig = cfg
		cfg.Trial.Mistake()
		return cfg.Finisher.Finish(trial.Result{Response: []string{"cloze"}})
	}
	t.Cleanup(func() { serveForm = origServe })

	code, out, errOut := runCommand(t, "serve",
		"--file", path,
		"--addr", "127.0.0.1:5050",
		"--assets-base-url", "https://assets.example.com",
		"intro",
	)
	if code != ExitOK {
		t.Fatalf("expected exit ok, got %d: %s", code, errOut)
	}
	if gotConfig.Addr != "127.0.0.1:5050" {
		t.Fatalf("unexpected addr: %s", gotConfig.Addr)
	}
	if gotConfig.AssetsBaseURL != "https://assets.example.com" {
		t.Fatalf("unexpected assets base url: %s", gotConfig.AssetsBaseURL)
	}
	if gotConfig.MistakeMessage != "Not quite." || !gotConfig.Trial.CheckAnswers {
		t.Fatalf("unexpected trial config %+v", gotConfig)
	}
	if strings.TrimSpace(out) != `{"trial_id":"intro","result":{"response":["cloze"]}}` {
		t.Fatalf("unexpected output %q", out)
	}
}

// TestServeCommandUnfinished verifies a server stopped before finishing is an error.
func TestServeCommandUnfinished(t *testing.T) {
	path := writeTrialsFile(t, sampleTrials)
	origServe := serveForm
	serveForm = func(context.Context, formserver.Config) error { return nil }
	t.Cleanup(func() { serveForm = origServe })
	if code, _, errOut := runCommand(t, "serve", "--file", path, "intro"); code != ExitError || !strings.Contains(errOut, "did not finish") {
		t.Fatalf("expected unfinished error, got %d %q", code, errOut)
	}
}

// TestServeCommandEndToEnd runs the real form server and submits over HTTP.
func TestServeCommandEndToEnd(t *testing.T) {
	path := writeTrialsFile(t, sampleTrials)
	addrCh := make(chan string, 1)
	origServe := serveForm
	serveForm = func(ctx context.Context, cfg formserver.Config) error {
		ready := cfg.Ready
		cfg.Ready = func(addr string) {
			ready(addr)
			addrCh <- addr
		}
		return formserver.Serve(ctx, cfg)
	}
	t.Cleanup(func() { serveForm = origServe })

	type result struct {
		code int
		out  string
		err  string
	}
	done := make(chan result, 1)
	go func() {
		var out, errOut bytes.Buffer
		code := Run([]string{"serve", "--file", path, "--addr", "127.0.0.1:0", "intro"}, &out, &errOut)
		done <- result{code: code, out: out.String(), err: errOut.String()}
	}()

	ctx := testutil.Context(t, 5*time.Second)
	var baseURL string
	select {
	case addr := <-addrCh:
		baseURL = "http://" + addr
	case <-ctx.Done():
		t.Fatalf("server never became ready")
	}

	if resp := testutil.HTTPSubmitAnswers(t, baseURL, "text"); resp.Status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Status)
	}
	if resp := testutil.HTTPSubmitAnswers(t, baseURL, "cloze"); resp.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Status)
	}

	select {
	case got := <-done:
		if got.code != ExitOK {
			t.Fatalf("expected exit ok, got %d: %s", got.code, got.err)
		}
		if strings.TrimSpace(got.out) != `{"trial_id":"intro","result":{"response":["cloze"]}}` {
			t.Fatalf("unexpected output %q", got.out)
		}
		if !strings.Contains(got.err, "Serving trial intro at http://") {
			t.Fatalf("expected serving message, got %q", got.err)
		}
	case <-ctx.Done():
		t.Fatalf("serve did not stop after finishing")
	}
}
