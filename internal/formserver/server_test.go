package formserver_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"cloze/internal/formserver"
	"cloze/internal/testutil"
	"cloze/internal/trial"
)

// TestServeStopsAfterFinish verifies Serve returns once the trial finished.
func TestServeStopsAfterFinish(t *testing.T) {
	ctx := testutil.Context(t, 5*time.Second)
	rec := &recorder{}
	var (
		mu   sync.Mutex
		addr string
	)
	errCh := make(chan error, 1)
	go func() {
		errCh <- formserver.Serve(ctx, formserver.Config{
			Addr:     "127.0.0.1:0",
			Trial:    trial.DefaultConfig("This is a %cloze% text."),
			Finisher: rec,
			Ready: func(bound string) {
				mu.Lock()
				addr = bound
				mu.Unlock()
			},
		})
	}()
	testutil.Eventually(t, 2*time.Second, 5*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return addr != ""
	}, "server never became ready")
	mu.Lock()
	baseURL := "http://" + addr
	mu.Unlock()

	if resp := testutil.HTTPSubmitAnswers(t, baseURL, "cloze"); resp.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-ctx.Done():
		t.Fatalf("serve did not stop after finish")
	}
	if rec.count() != 1 {
		t.Fatalf("expected one delivery, got %d", rec.count())
	}
}

// TestServeStopsOnCancel verifies context cancellation shuts the server down.
func TestServeStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(testutil.Context(t, 5*time.Second))
	ready := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		errCh <- formserver.Serve(ctx, formserver.Config{
			Addr:     "127.0.0.1:0",
			Trial:    trial.DefaultConfig("%a%"),
			Finisher: &recorder{},
			Ready:    func(string) { close(ready) },
		})
	}()
	<-ready
	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("serve: %v", err)
	}
}

// TestServeRequiresAddr verifies the listen address is mandatory.
func TestServeRequiresAddr(t *testing.T) {
	err := formserver.Serve(context.Background(), formserver.Config{Finisher: &recorder{}})
	if err == nil {
		t.Fatalf("expected error for missing addr")
	}
}
