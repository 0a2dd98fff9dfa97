package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/fast-orienteering/config"
	"github.com/Dosada05/fast-orienteering/db"
	"github.com/Dosada05/fast-orienteering/handlers"
	"github.com/Dosada05/fast-orienteering/live"
	"github.com/Dosada05/fast-orienteering/repositories"
	"github.com/Dosada05/fast-orienteering/routes"
	"github.com/Dosada05/fast-orienteering/services"
	"github.com/Dosada05/fast-orienteering/storage"
)

const exportPrefix = "exports"

// @title FAST car-orienteering API
// @version 1.0.0
// @description Race and checkpoint management for car-orienteering organizers.
// @BasePath /api
// @securityDefinitions.apikey OrganizerToken
// @in header
// @name Authorization
func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("db_driver", cfg.DBDriver))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DBDriver, cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	if err := db.Migrate(ctx, dbConn); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database ready")

	// Выгрузка: R2 и Google Sheets подключаются, только если настроены
	var exporters []storage.Exporter
	r2Cfg := storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	}
	if r2Cfg.Configured() {
		uploader, err := storage.NewCloudflareR2Uploader(ctx, r2Cfg)
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		exporters = append(exporters, storage.NewUploadExporter(uploader, exportPrefix))
		logger.Info("Cloudflare R2 export enabled")
	}
	if cfg.SheetsConfigured() {
		sheets, err := storage.NewSheetsExporter(ctx, cfg.GoogleServiceAccountJSON, cfg.SpreadsheetID)
		if err != nil {
			logger.Error("failed to initialize Google Sheets exporter", slog.Any("error", err))
			os.Exit(1)
		}
		exporters = append(exporters, sheets)
		logger.Info("Google Sheets export enabled")
	}

	hub := live.NewHub(logger)
	go hub.Run(ctx)
	logger.Info("live hub started")

	gate, err := services.NewAccessGate(cfg.AdminPIN, services.LockoutPolicy{
		MaxAttempts: cfg.AdminMaxAttempts,
		Duration:    cfg.AdminLockout,
	})
	if err != nil {
		logger.Error("failed to initialize access gate", slog.Any("error", err))
		os.Exit(1)
	}
	tokens := services.NewTokenIssuer(cfg.JWTSecretKey, cfg.OrganizerTokenTTL)

	store := repositories.NewSQLEventStore(dbConn)
	eventService := services.NewEventService(store, hub, logger)
	exportService := services.NewExportService(eventService, exporters, logger)

	router := chi.NewRouter()
	routes.SetupRoutes(router, routes.Handlers{
		Access:     handlers.NewAccessHandler(gate, tokens, logger),
		Race:       handlers.NewRaceHandler(eventService),
		Checkpoint: handlers.NewCheckpointHandler(eventService),
		Export:     handlers.NewExportHandler(exportService),
		WebSocket:  handlers.NewWebSocketHandler(hub, cfg.AllowedOrigins, logger),
		System:     handlers.NewSystemHandler(dbConn, hub),
	}, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Tokens:         tokens,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			stop()
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
		} else {
			logger.Info("server shutdown complete")
		}
	}
	stop()
	logger.Info("application exited")
}
