package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver
)

// Bind-variable limits per statement: SQLITE_MAX_VARIABLE_NUMBER and the
// MySQL prepared statement placeholder limit.
const (
	sqliteMaxVars = 32766
	mysqlMaxVars  = 65535
)

// SQLWriter writes batches through database/sql with multi-row INSERTs. It
// serves the drivers that use "?" placeholders: mysql and sqlite3.
type SQLWriter struct {
	db    *sql.DB
	table string

	// maxRows is the most rows one INSERT may carry. Larger batches are
	// split across several statements in one transaction.
	maxRows int
}

// OpenSQL opens and pings a database/sql connection for driver.
func OpenSQL(ctx context.Context, driver, dsn, table string, maxConns int) (*SQLWriter, error) {
	switch driver {
	case "mysql", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == "sqlite3" {
		// SQLite doesn't benefit from multiple connections
		maxConns = 1
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewSQLWriter(db, driver, table), nil
}

// NewSQLWriter wraps an open database handle. The writer owns db from then on.
func NewSQLWriter(db *sql.DB, driver, table string) *SQLWriter {
	return &SQLWriter{db: db, table: table, maxRows: maxRowsFor(driver)}
}

// maxRowsFor returns how many tuples fit in one statement for driver.
func maxRowsFor(driver string) int {
	if driver == "mysql" {
		return mysqlMaxVars / len(Columns)
	}
	return sqliteMaxVars / len(Columns)
}

// WriteBatch implements Writer. The batch is committed as a whole.
func (w *SQLWriter) WriteBatch(ctx context.Context, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if len(row) != len(Columns) {
			return fmt.Errorf("row has %d values, want %d", len(row), len(Columns))
		}
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for start := 0; start < len(rows); start += w.maxRows {
		chunk := rows[start:min(start+w.maxRows, len(rows))]

		args := make([]any, 0, len(chunk)*len(Columns))
		for _, row := range chunk {
			args = append(args, row...)
		}

		if _, err := tx.ExecContext(ctx, insertStatement(w.table, len(chunk)), args...); err != nil {
			return fmt.Errorf("insert into %s: %w", w.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (w *SQLWriter) Close() error {
	return w.db.Close()
}

// insertStatement builds INSERT INTO table (cols) VALUES (?,...),(?,...).
func insertStatement(table string, rows int) string {
	group := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(Columns)), ", ") + ")"

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(Columns, ", "))
	b.WriteString(") VALUES ")
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(group)
	}
	return b.String()
}
