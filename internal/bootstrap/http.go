package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpx "github.com/3issane/PFETRACKCODE212/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Container *Container
	Logger    *slog.Logger
}

// BuildHTTPHandler builds the local web front for the container.
func BuildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	return httpx.NewRouter(httpx.RouterServices{
		Sessions:  cfg.Container.Sessions,
		Guard:     cfg.Container.Guard,
		Dashboard: cfg.Container.Dashboard,
		Logger:    cfg.Logger,
	})
}

func newServer(addr string, handler http.Handler) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = "127.0.0.1:3000"
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// ServeHTTP runs the local web front on ln until ctx is done, then shuts down
// gracefully. The session initializes in the background; requests that arrive
// before it finishes get a 503 from the guard.
func ServeHTTP(ctx context.Context, cfg *HTTPServerConfig, ln net.Listener) error {
	if cfg == nil || cfg.Container == nil {
		return errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Container.Config

	server := newServer(ln.Addr().String(), BuildHTTPHandler(cfg))
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", ln.Addr().String())
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	go cfg.Container.Sessions.Initialize(context.WithoutCancel(ctx))

	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	logger.Info("shutting down HTTP server")
	timeout := appCfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}

// RunHTTPWithShutdown listens on the configured address and serves until
// SIGINT or SIGTERM.
func RunHTTPWithShutdown(ctx context.Context, cfg *HTTPServerConfig) error {
	if cfg == nil || cfg.Container == nil {
		return errors.New("http server config is required")
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", cfg.Container.Config.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Container.Config.HTTP.Addr, err)
	}
	return ServeHTTP(ctx, cfg, ln)
}
