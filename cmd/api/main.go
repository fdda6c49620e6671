package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"jurimetrics/adapters/api"
	"jurimetrics/internal/config"
	"jurimetrics/internal/container"
	"jurimetrics/internal/errors"
	"jurimetrics/internal/logging"
	"jurimetrics/internal/migration"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.NewDefaultLogger()

	db, err := initDatabase(cfg)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	c, err := container.New(cfg, logger)
	if err != nil {
		log.Fatalf("build container: %v", err)
	}
	if err := c.InitWithDatabase(db); err != nil {
		log.Fatalf("wire container: %v", err)
	}
	defer c.Close()

	handlers := api.NewHandlers(c.ReportService, c.BaselineService, c.Formatters, logger)
	server := api.NewServer(handlers, logger, cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Server.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received, draining requests")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown: %v", err)
		}
	}
}

// initDatabase initializes the PostgreSQL connection
func initDatabase(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.Database.URL == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	migrator := migration.NewRunner()
	if err := migrator.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}
