// Package main implements the boundq server, which runs URL probe tasks
// through a bounded-concurrency queue behind an HTTP admin API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/phrazzld/boundq/internal/config"
	"github.com/phrazzld/boundq/internal/platform/logger"
)

func main() {
	configPath := flag.StringP("config", "c", "", "path to a config file (default: ./config.yaml if present)")
	flag.Parse()

	cfg, err := loadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, nil)
	if err != nil {
		appLogger.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		appLogger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

// loadAppConfig loads configuration from path, or from ./config.yaml and the
// environment when path is empty.
func loadAppConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"concurrency", cfg.Queue.Concurrency,
		"auth_enabled", cfg.Auth.Enabled())

	return cfg, nil
}
