package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 2 * time.Second

// NewHandler routes /metrics, /healthz and /frame for c, handler failures are logged to logger
func NewHandler(c *Collector, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok\n"))
	})

	r.Get("/frame", func(w http.ResponseWriter, r *http.Request) {
		last, at := c.Last()
		resp := struct {
			Tick       uint64  `json:"tick"`
			DurationMS float64 `json:"duration_ms"`
			Late       bool    `json:"late"`
			Skipped    bool    `json:"skipped"`
			At         string  `json:"at,omitempty"`
		}{
			Tick:       last.Tick,
			DurationMS: float64(last.Duration) / float64(time.Millisecond),
			Late:       last.Late,
			Skipped:    last.Skipped,
		}
		if !at.IsZero() {
			resp.At = at.UTC().Format(time.RFC3339Nano)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("frame response encode failed", "error", err)
		}
	})

	return r
}

// Serve listens on addr and serves NewHandler(c, logger) until ctx is cancelled
func Serve(ctx context.Context, addr string, c *Collector, logger *slog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listen %s: %w", addr, err)
	}
	return serve(ctx, ln, c, logger)
}

func serve(ctx context.Context, ln net.Listener, c *Collector, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           NewHandler(c, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics shutdown: %w", err)
		}
		return nil
	}
}
