package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sagarc03/endpoint"
	"github.com/sagarc03/endpoint/config"
	endpointhttp "github.com/sagarc03/endpoint/http"
	"github.com/sagarc03/endpoint/keybackend"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the endpointd HTTP server with the demo notes API.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "HTTP server port")
	serveCmd.Flags().Int64("max-body-size", 1<<20, "maximum request body size in bytes (0 = unlimited)")

	rootCmd.AddCommand(serveCmd)
}

func newAuthenticator(cfg *config.Config) (*endpoint.Authenticator, error) {
	store, err := keybackend.NewSecretStore(cfg.Auth.Keys, cfg.Auth.DefaultKeyID)
	if err != nil {
		return nil, fmt.Errorf("load signing keys: %w", err)
	}
	if store.Len() == 0 {
		slog.Warn("no signing keys configured; every credential token will be rejected")
	}

	return endpoint.NewAuthenticator(cfg.Auth.Verifier(), store, slog.Default()), nil
}

func healthz(w http.ResponseWriter, r *http.Request) {
	if err := endpointhttp.Text(http.StatusOK, "ok\n")(w, r); err != nil {
		slog.Error("failed to write health response", "err", err)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	auth, err := newAuthenticator(cfg)
	if err != nil {
		return err
	}

	routes, err := newRoutes(auth,
		endpointhttp.WithLogger(slog.Default()),
		endpointhttp.WithMaxBodyBytes(cfg.Server.MaxBodySize),
		endpointhttp.WithExposeValidationErrors(cfg.Server.ExposeValidationErrors),
	)
	if err != nil {
		return fmt.Errorf("build routes: %w", err)
	}

	router := endpointhttp.NewRouter(cfg.CORS, routes...)
	// Moderation tooling outside the dispatchers still goes through the same role gate.
	router.With(endpointhttp.AuthMiddleware(auth, roleModerator)).Get("/healthz/detail", func(w http.ResponseWriter, r *http.Request) {
		_ = endpointhttp.WriteJSON(w, http.StatusOK, map[string]any{"routes": len(routes), "version": version})
	})
	router.Get("/healthz", healthz)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server", "addr", addr, "routes", len(routes))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
