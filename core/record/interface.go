// Package record implements the active-record lifecycle engine: Get, Find,
// Create, Save, and Remove drive the statement builders from a record
// type's table metadata and hand the rendered statements to an external
// executor. The engine is synchronous per call; all blocking happens inside
// the executor.
package record

import (
	"context"

	"github.com/asaidimu/go-kente/core"
)

// RowSet is a fully materialized query result: column names in result order
// and one Value row per matched record.
type RowSet struct {
	Columns []string
	Rows    [][]core.Value
}

// Executor turns a rendered statement and its positional parameters into a
// result set or an affected-row count. Implementations own all I/O,
// cancellation, and timeout concerns; the engine treats a call as an opaque
// synchronous operation that either yields a result or fails.
type Executor interface {
	Query(ctx context.Context, sql string, params []any) (*RowSet, error)
	Exec(ctx context.Context, sql string, params []any) (int64, error)
}
