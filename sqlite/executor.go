// Package sqlite provides the executor adapter for SQLite databases: it
// connects through database/sql with the mattn/go-sqlite3 driver, executes
// rendered statements with positional parameters, and materializes result
// sets into record.RowSet values.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asaidimu/go-kente/core"
	"github.com/asaidimu/go-kente/core/record"
	"go.uber.org/zap"
)

// dbRunner abstracts the shared methods of *sql.DB and *sql.Tx so the same
// executor code serves both transactional and non-transactional use.
type dbRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// ExecutorOptions configures the executor.
type ExecutorOptions struct {
	// LogStatements emits every statement and parameter list at debug level.
	LogStatements bool
}

// DefaultExecutorOptions returns the default configuration.
func DefaultExecutorOptions() *ExecutorOptions {
	return &ExecutorOptions{LogStatements: true}
}

// Executor implements record.Executor over a SQLite database.
type Executor struct {
	db      *sql.DB
	tx      *sql.Tx
	logger  *zap.Logger
	options *ExecutorOptions
}

// Ensure Executor implements the record.Executor contract.
var _ record.Executor = (*Executor)(nil)

// NewExecutor wraps an open database handle.
func NewExecutor(db *sql.DB, logger *zap.Logger, options *ExecutorOptions) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if options == nil {
		options = DefaultExecutorOptions()
	}
	return &Executor{db: db, logger: logger, options: options}
}

// Open connects to the SQLite database at path and verifies the connection.
// A failure here is a configuration error and is not retried.
func Open(path string, logger *zap.Logger) (*Executor, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &core.ConnectionError{DSN: path, Err: err}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &core.ConnectionError{DSN: path, Err: err}
	}
	return NewExecutor(db, logger, nil), nil
}

// WithTx returns an executor scoped to an existing transaction. The engine
// itself never manages transactions; this only lets a caller run lifecycle
// operations inside one it already owns.
func (e *Executor) WithTx(tx *sql.Tx) *Executor {
	return &Executor{db: e.db, tx: tx, logger: e.logger, options: e.options}
}

// DB exposes the underlying handle, mainly for schema setup in tests and
// demos.
func (e *Executor) DB() *sql.DB {
	return e.db
}

// Close closes the underlying database handle.
func (e *Executor) Close() error {
	return e.db.Close()
}

func (e *Executor) runner() dbRunner {
	if e.tx != nil {
		return e.tx
	}
	return e.db
}

// Query executes a statement expected to return rows and materializes the
// full result set.
func (e *Executor) Query(ctx context.Context, query string, params []any) (*record.RowSet, error) {
	if e.options.LogStatements {
		e.logger.Debug("executing SQL query", zap.String("sql", query), zap.Any("params", params))
	}
	rows, err := e.runner().QueryContext(ctx, query, params...)
	if err != nil {
		e.logger.Error("failed to execute query", zap.Error(err), zap.String("sql", query))
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()
	return readRows(rows)
}

// Exec executes a statement expected to return no rows and reports the
// affected-row count.
func (e *Executor) Exec(ctx context.Context, query string, params []any) (int64, error) {
	if e.options.LogStatements {
		e.logger.Debug("executing SQL statement", zap.String("sql", query), zap.Any("params", params))
	}
	result, err := e.runner().ExecContext(ctx, query, params...)
	if err != nil {
		e.logger.Error("failed to execute statement", zap.Error(err), zap.String("sql", query))
		return 0, fmt.Errorf("failed to execute statement: %w", err)
	}
	return result.RowsAffected()
}

// readRows drains a *sql.Rows into a RowSet, lifting each driver value into
// the tagged core.Value form.
func readRows(rows *sql.Rows) (*record.RowSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	rs := &record.RowSet{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make([]core.Value, len(columns))
		for i, raw := range values {
			v, err := core.FromAny(raw)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", columns[i], err)
			}
			row[i] = v
		}
		rs.Rows = append(rs.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after scanning rows: %w", err)
	}
	return rs, nil
}
