package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"todo-api/internal/logging"
)

// Run serves handler until ctx is cancelled, then shuts down gracefully
func Run(ctx context.Context, cfg *Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	servers := []*http.Server{srv}

	if cfg.tlsEnabled() {
		tlsConfig, err := cfg.TLS.Build()
		if err != nil {
			return fmt.Errorf("tls setup failed: %w", err)
		}
		srv.TLSConfig = tlsConfig

		if cfg.TLS.RedirectHTTP {
			servers = append(servers, &http.Server{
				Addr:         ":" + cfg.TLS.HTTPPort,
				Handler:      HTTPSRedirectHandler(cfg.TLS.Port),
				ReadTimeout:  cfg.ReadTimeout,
				WriteTimeout: cfg.WriteTimeout,
			})
		}
	}

	errCh := make(chan error, len(servers))
	for _, s := range servers {
		go func(s *http.Server) {
			var err error
			if s.TLSConfig != nil {
				logging.Logger.Infof("Starting HTTPS server on %s...", s.Addr)
				err = s.ListenAndServeTLS("", "")
			} else {
				logging.Logger.Infof("Starting server on %s...", s.Addr)
				err = s.ListenAndServe()
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(s)
	}

	var runErr error
	select {
	case err := <-errCh:
		runErr = fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logging.Logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil && runErr == nil {
			runErr = fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	if runErr == nil {
		logging.Logger.Info("Server stopped")
	}
	return runErr
}
