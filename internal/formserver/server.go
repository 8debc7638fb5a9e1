package formserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"cloze/internal/trial"
)

const shutdownTimeout = 5 * time.Second

// Config captures the settings for serving one trial over HTTP.
type Config struct {
	Addr           string
	Trial          trial.Config
	Finisher       trial.Finisher
	MistakeMessage string
	Title          string
	AssetsBaseURL  string
	Logger         *zap.Logger
	// Ready, when set, receives the bound listener address.
	Ready func(addr string)
}

// Serve hosts the trial form until the trial finishes or ctx is done.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("formserver: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("formserver: addr is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	if cfg.Ready != nil {
		cfg.Ready(listener.Addr().String())
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-handler.Done():
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	err = <-errCh
	if errors.Is(err, http.ErrServerClosed) || err == nil {
		return nil
	}
	return err
}
