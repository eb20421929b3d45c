package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// townCodeColumn is the index of town_code in Columns.
const townCodeColumn = 2

// PgWriter writes batches to PostgreSQL with COPY, one COPY per batch.
type PgWriter struct {
	pool  *pgxpool.Pool
	table pgx.Identifier
}

// OpenPg parses url, applies the pool limits and verifies the connection.
func OpenPg(ctx context.Context, url, table string, maxConns, minConns int) (*PgWriter, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if maxConns > 0 {
		poolConfig.MaxConns = int32(maxConns)
	}
	if minConns >= 0 {
		poolConfig.MinConns = int32(minConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewPgWriter(pool, table), nil
}

// NewPgWriter wraps an existing pool. table may be schema-qualified.
func NewPgWriter(pool *pgxpool.Pool, table string) *PgWriter {
	return &PgWriter{pool: pool, table: pgx.Identifier(strings.Split(table, "."))}
}

// WriteBatch implements Writer.
func (w *PgWriter) WriteBatch(ctx context.Context, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	n, err := w.pool.CopyFrom(ctx, w.table, Columns, pgx.CopyFromRows(pgRows(rows)))
	if err != nil {
		return fmt.Errorf("copy into %s: %w", w.table.Sanitize(), err)
	}
	if int(n) != len(rows) {
		return fmt.Errorf("copy into %s: wrote %d of %d rows", w.table.Sanitize(), n, len(rows))
	}
	return nil
}

// Close releases the pool.
func (w *PgWriter) Close() error {
	w.pool.Close()
	return nil
}

// pgRows converts tuples to pgx values. The town code becomes a pgtype.Int4
// so a missing code is sent as NULL.
func pgRows(rows [][]any) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		converted := make([]any, len(row))
		copy(converted, row)
		converted[townCodeColumn] = toPgInt4(row[townCodeColumn])
		out[i] = converted
	}
	return out
}

func toPgInt4(v any) pgtype.Int4 {
	i, ok := v.(int)
	if !ok {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: int32(i), Valid: true}
}
