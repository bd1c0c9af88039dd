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

	"tracker/cmd"
	"tracker/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("tracker: %v", err)
	}
}

func run() error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var gormDB *gorm.DB
	if configs.JournalEnabled() {
		gormDB, err = postgres.Open(ctx, configs.DBSettings().DSN())
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := postgres.Close(gormDB); closeErr != nil {
				logger.Error("Failed to close database", "error", closeErr)
			}
		}()
		logger.Info("Update journal enabled", "db_host", configs.DBHost, "db_name", configs.DBName)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := cmd.NewWebServer(app, configs.LogLevel, logger)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.Info("HTTP server listening", "addr", addr)
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			serveErr <- startErr
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err = <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return errors.Join(
		e.Shutdown(shutdownCtx),
		app.Shutdown(shutdownCtx),
	)
}
