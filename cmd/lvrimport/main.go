package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/lvr/internal/config"
	"github.com/JonMunkholm/lvr/internal/core"
	"github.com/JonMunkholm/lvr/internal/logging"
	"github.com/JonMunkholm/lvr/internal/store"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRunID(ctx, uuid.NewString())

	logging.FromContext(ctx).Info("configuration loaded", "config", cfg.String())

	if err := run(ctx, cfg); err != nil {
		logging.FromContext(ctx).Error("import failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run scans cfg.Ingest.Root and, when a database is configured, writes the
// result. A cancelled scan writes nothing.
func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.FromContext(ctx)

	index, err := loadReference(cfg.Ingest.ReferencePath)
	if err != nil {
		return err
	}

	mode, err := core.ParseOutputMode(cfg.Ingest.OutputMode)
	if err != nil {
		return err
	}

	parser := core.NewParser(index)
	parser.SkipLeadingRow = cfg.Ingest.SkipLeadingRow

	scanner := core.NewScanner(parser, core.ScanOptions{
		Mode:       mode,
		MaxCities:  cfg.Ingest.MaxCities,
		MaxLetters: cfg.Ingest.MaxLetters,
		Workers:    cfg.Ingest.Workers,
	})

	res, err := scanner.Scan(ctx, cfg.Ingest.Root)
	if err != nil {
		return err
	}

	logger.Info("import summary",
		"mode", res.Mode,
		"units", res.Units,
		"skipped", res.SkippedCount(),
		"records", res.Len(),
	)
	for _, key := range res.Keys {
		logger.Debug("group", "key", key, "records", len(res.Grouped[key]))
	}

	if !cfg.Database.WriteEnabled() {
		logger.Info("no database configured, skipping write")
		return nil
	}

	writeCtx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
	defer cancel()

	w, err := store.Open(writeCtx, cfg.Database)
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := store.WriteAll(writeCtx, w, res.Records(), cfg.Store.BatchSize); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

func loadReference(path string) (*core.ReferenceIndex, error) {
	if path == "" {
		return core.DefaultReference()
	}
	index, err := core.LoadReferenceFile(path)
	if err != nil {
		return nil, fmt.Errorf("load reference data %s: %w", path, err)
	}
	return index, nil
}
