package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pageza/nutriscope/backend/config"
	"github.com/pageza/nutriscope/backend/internal/database"
	"github.com/pageza/nutriscope/backend/internal/logger"
	"github.com/pageza/nutriscope/backend/internal/server"
)

const shutdownTimeout = 15 * time.Second

var (
	logLevel string
	port     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "nutriscope",
		Short:        "Nutrition search and recipe recommendation web app",
		SilenceUsage: true,
		// Serving is the default so the container entrypoint needs no arguments
		RunE: runServe,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads and validates the configuration and builds the logger
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if port != "" {
		cfg.ServerPort = port
	}

	log, err := logger.New(cfg.LogLevel, cfg.Environment != config.Production)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if err := config.ValidateConfig(cfg); err != nil {
		log.Error("Invalid configuration", zap.Error(err))
		return nil, nil, err
	}
	return cfg, log, nil
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides SERVER_PORT)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	srv, err := server.New(cfg, log)
	if err != nil {
		log.Error("Failed to initialize server", zap.Error(err))
		return err
	}

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Error("Server error", zap.Error(err))
			srv.Close()
			return err
		}
	case sig := <-quit:
		log.Info("Received signal", zap.String("signal", sig.String()))
	}

	// Gracefully shutdown the server
	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
		return err
	}
	log.Info("Server stopped")
	return nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the search activity tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.Open(cfg, log)
			if errors.Is(err, database.ErrDisabled) {
				return errors.New("no database configured: set DB_DRIVER to sqlite or postgres")
			}
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			return database.RunMigrations(db, log)
		},
	}
}
