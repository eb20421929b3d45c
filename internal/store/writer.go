package store

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/lvr/internal/config"
	"github.com/JonMunkholm/lvr/internal/core"
	"github.com/JonMunkholm/lvr/internal/logging"
)

// Writer persists one batch of tuples in Columns order.
type Writer interface {
	WriteBatch(ctx context.Context, rows [][]any) error
	Close() error
}

// Open connects the writer selected by cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Writer, error) {
	switch cfg.Driver {
	case "postgres":
		w, err := OpenPg(ctx, cfg.URL, cfg.Table, cfg.MaxConns, cfg.MinConns)
		if err != nil {
			return nil, err
		}
		return w, nil
	case "mysql", "sqlite3":
		w, err := OpenSQL(ctx, cfg.Driver, cfg.URL, cfg.Table, cfg.MaxConns)
		if err != nil {
			return nil, err
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Stats summarizes a WriteAll run.
type Stats struct {
	Batches  int
	Rows     int
	Duration time.Duration
}

// WriteAll shapes records into batches of size and writes them in order.
// It stops at the first failed batch; the returned Stats count only the
// batches that were written.
func WriteAll(ctx context.Context, w Writer, records []core.Record, size int) (Stats, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	batches := Batches(records, size)
	var stats Stats

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("write cancelled after %d batches: %w", stats.Batches, err)
		}

		if err := w.WriteBatch(ctx, batch); err != nil {
			stats.Duration = time.Since(start)
			return stats, fmt.Errorf("write batch %d/%d: %w", i+1, len(batches), err)
		}

		stats.Batches++
		stats.Rows += len(batch)
		logger.Debug("batch written",
			"batch", i+1,
			"of", len(batches),
			"rows", len(batch),
		)
	}

	stats.Duration = time.Since(start)
	logger.Info("records written",
		"batches", stats.Batches,
		"rows", stats.Rows,
		"duration_ms", stats.Duration.Milliseconds(),
	)
	return stats, nil
}
