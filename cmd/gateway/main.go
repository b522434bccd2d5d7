package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/posbridge/moto-gateway/internal/application"
	"github.com/posbridge/moto-gateway/internal/application/services"
	"github.com/posbridge/moto-gateway/internal/config"
	"github.com/posbridge/moto-gateway/internal/infrastructure/peer"
	"github.com/posbridge/moto-gateway/internal/infrastructure/persistence/jsonfile"
	"github.com/posbridge/moto-gateway/internal/infrastructure/persistence/postgres"
	"github.com/posbridge/moto-gateway/internal/infrastructure/processor"
	"github.com/posbridge/moto-gateway/internal/interfaces/rest/handlers"
	"github.com/posbridge/moto-gateway/internal/interfaces/rest/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting MOTO gateway",
		"port", cfg.Server.Port,
		"storage_backend", cfg.Storage.Backend,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()

	transactionStore, deviceStore, settingsStore, cleanup, err := buildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize stores", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	processorClient := processor.NewClient(cfg.Processor)
	peerClient := peer.NewClient(cfg.Peer)

	// the url peers are told to call back on
	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}

	submitService := services.NewSubmitService(transactionStore, settingsStore, processorClient, logger)
	queryService := services.NewQueryService(transactionStore)
	deviceService := services.NewDeviceService(deviceStore, settingsStore, peerClient, baseURL, logger)
	settingsService := services.NewSettingsService(settingsStore)

	h := handlers.NewHandlers(submitService, queryService, deviceService, settingsService, logger)

	router := chi.NewRouter()
	h.Routes(router)

	handler := middleware.Recovery(logger)(router)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// buildStores selects the persistence backend. The default is the flat
// JSON files the frontend tooling expects; Postgres is opt-in.
func buildStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (
	application.TransactionStore,
	application.DeviceStore,
	application.SettingsStore,
	func(),
	error,
) {
	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		pool, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, nil, nil, err
		}
		settingsStore, err := postgres.NewSettingsStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, nil, nil, err
		}
		return postgres.NewTransactionStore(pool),
			postgres.NewDeviceStore(pool),
			settingsStore,
			pool.Close,
			nil

	default:
		if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
			return nil, nil, nil, nil, err
		}
		transactionStore, err := jsonfile.NewTransactionStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		deviceStore, err := jsonfile.NewDeviceStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		settingsStore, err := jsonfile.NewSettingsStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return transactionStore, deviceStore, settingsStore, func() {}, nil
	}
}
