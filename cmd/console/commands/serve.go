package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/erfansky/Dressmaking/internal/config"
	"github.com/erfansky/Dressmaking/internal/console/app"
	"github.com/erfansky/Dressmaking/internal/console/infra/adapters/backend"
	"github.com/erfansky/Dressmaking/internal/console/infra/httpx"
	"github.com/erfansky/Dressmaking/internal/console/session"
	sagasqlite "github.com/erfansky/Dressmaking/internal/coordinator/sagalog/sqlite"
	"github.com/erfansky/Dressmaking/internal/pkg/cache"
	"github.com/erfansky/Dressmaking/internal/pkg/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the console HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg := config.Load()
	telemetry.InitLogger(debug || cfg.Debug)

	shutdownTracer, err := telemetry.SetupTracer(ctx, "dressmaking-console")
	if err != nil {
		// Tracing is best effort; the console works without a collector.
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	sagaRepo, err := sagasqlite.Open(cfg.SagaLogPath)
	if err != nil {
		return err
	}
	defer sagaRepo.Close()

	client, err := backend.New(cfg.BackendURL)
	if err != nil {
		return err
	}

	var nameCache cache.Cache
	if cfg.RedisAddr != "" {
		nameCache = cache.NewRedisCache(cfg.RedisAddr, "dressmaking-console")
	}

	handler := httpx.NewHandler(
		client,
		app.NewRegistryService(client),
		app.NewCatalogService(client, client),
		app.NewAssignmentService(client, client, sagaRepo),
		app.NewCompositionService(client, sagaRepo),
		app.NewOrderViewService(client, app.NewCachedResolver(client, client, nameCache)),
		sagaRepo,
	)

	store := session.NewStore(cfg.SessionKey, cfg.CookieSecure)
	router := httpx.NewRouter(handler, store, httpx.RouterConfig{
		CSRFKey:      cfg.CSRFKey,
		CookieSecure: cfg.CookieSecure,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("console listening", "addr", cfg.ListenAddr, "backend", cfg.BackendURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
