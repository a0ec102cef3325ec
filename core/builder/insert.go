package builder

import (
	"fmt"
	"strings"

	"github.com/asaidimu/go-kente/core"
)

// InsertBuilder builds an INSERT statement. Values accumulate in call order
// and must match the declared columns one-to-one; a count mismatch is
// rejected at build time rather than rendered into a malformed statement.
type InsertBuilder struct {
	table   string
	columns []string
	values  []any
	err     error
}

// NewInsert creates an empty INSERT builder.
func NewInsert() *InsertBuilder {
	return &InsertBuilder{}
}

func (b *InsertBuilder) fail(op, reason string) *InsertBuilder {
	if b.err == nil {
		b.err = &core.InputError{Op: op, Reason: reason}
	}
	return b
}

// Insert declares the columns to be inserted.
func (b *InsertBuilder) Insert(columns ...string) *InsertBuilder {
	if len(columns) == 0 {
		return b.fail("insert", "at least one column is required")
	}
	for _, column := range columns {
		if column == "" {
			return b.fail("insert", "column name is required")
		}
	}
	if b.err != nil {
		return b
	}
	b.columns = append(b.columns, columns...)
	return b
}

// Into sets the target table.
func (b *InsertBuilder) Into(table string) *InsertBuilder {
	if table == "" {
		return b.fail("insert.into", "table name is required")
	}
	if b.err != nil {
		return b
	}
	b.table = table
	return b
}

// Value appends one value.
func (b *InsertBuilder) Value(value any) *InsertBuilder {
	if b.err != nil {
		return b
	}
	b.values = append(b.values, value)
	return b
}

// Values appends values in call order.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	if b.err != nil {
		return b
	}
	b.values = append(b.values, values...)
	return b
}

func (b *InsertBuilder) render() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if b.table == "" {
		return "", nil, &core.InputError{Op: "insert", Reason: "table name is required"}
	}
	if len(b.columns) == 0 {
		return "", nil, &core.InputError{Op: "insert", Reason: "at least one column is required"}
	}
	if len(b.values) != len(b.columns) {
		return "", nil, &core.InputError{
			Op:     "insert",
			Reason: fmt.Sprintf("%d values for %d columns", len(b.values), len(b.columns)),
		}
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(quoteIdentifier(b.table))
	sb.WriteString(" (")
	sb.WriteString(quoteAll(b.columns))
	sb.WriteString(") VALUES (")
	sb.WriteString(placeholders(len(b.values)))
	sb.WriteString(");")
	return sb.String(), b.values, nil
}

// Build renders the statement text.
func (b *InsertBuilder) Build() (string, error) {
	text, _, err := b.render()
	return text, err
}

// Parameters returns the values in placeholder order.
func (b *InsertBuilder) Parameters() []any {
	_, params, err := b.render()
	if err != nil {
		return nil
	}
	return params
}
