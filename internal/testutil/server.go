package testutil

import (
	"net/http/httptest"
	"testing"

	"cloze/internal/formserver"
)

// ServerInstance represents a running HTTP test server.
type ServerInstance struct {
	BaseURL string
	Handler *formserver.Handler
	Close   func()
}

// StartFormServer launches an in-memory HTTP server hosting one trial form.
func StartFormServer(t *testing.T, cfg formserver.Config) *ServerInstance {
	t.Helper()
	handler, err := formserver.NewHandler(cfg)
	if err != nil {
		t.Fatalf("new form handler: %v", err)
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &ServerInstance{
		BaseURL: server.URL,
		Handler: handler,
		Close:   server.Close,
	}
}
