package handler

import (
	"context"
	"time"

	"github.com/valyala/fasthttp"

	"visa-engine/internal/logging"
)

// ListenAndServe runs the service on addr until ctx is cancelled, then shuts down.
func ListenAndServe(ctx context.Context, addr string, h *Handler) error {
	server := &fasthttp.Server{
		Handler:      h.Serve,
		Name:         "visa-engine",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Log.Infof("visa engine listening on %s", addr)
		serverErr <- server.ListenAndServe(addr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logging.Log.Info("shutting down server...")
	}

	if err := server.Shutdown(); err != nil {
		return err
	}
	logging.Log.Info("server exited")
	return nil
}
