package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"waterdash/adapters/excel"
	"waterdash/internal"
	"waterdash/internal/config"
	"waterdash/internal/observability"
	"waterdash/internal/session"
	"waterdash/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))

	reader, err := excel.NewDataReader(cfg.Data.File, cfg.Data.Sheet, cfg.Data.Columns, cfg.Data.HeaderRow, logger)
	if err != nil {
		log.Fatalf("Failed to configure workbook reader: %v", err)
	}

	metrics := observability.NewMetrics()
	store := session.NewStore(reader, clockwork.NewRealClock(), logger, metrics)

	app, err := ui.NewApp(store, metrics, logger, ui.Config{
		Port:     cfg.Server.Port,
		DataFile: filepath.Base(cfg.Data.File),
	})
	if err != nil {
		log.Fatalf("Failed to create dashboard app: %v", err)
	}

	go func() {
		if err := app.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.Error("[Main] shutdown: %v", err)
	}
}
