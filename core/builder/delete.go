package builder

import (
	"strings"

	"github.com/asaidimu/go-kente/core"
)

// DeleteBuilder builds a DELETE statement.
type DeleteBuilder struct {
	fromClause
	whereClause
	orderByClause
	limitClause
	err error
}

// NewDelete creates an empty DELETE builder.
func NewDelete() *DeleteBuilder {
	return &DeleteBuilder{}
}

func (b *DeleteBuilder) fail(op, reason string) *DeleteBuilder {
	if b.err == nil {
		b.err = &core.InputError{Op: op, Reason: reason}
	}
	return b
}

// From sets the target table.
func (b *DeleteBuilder) From(table string) *DeleteBuilder {
	if table == "" {
		return b.fail("delete.from", "table name is required")
	}
	if b.err != nil {
		return b
	}
	b.setTable(table)
	return b
}

// Where sets a structured WHERE condition.
func (b *DeleteBuilder) Where(where *WhereBuilder) *DeleteBuilder {
	if where == nil {
		return b.fail("delete.where", "where builder is required")
	}
	if b.err != nil {
		return b
	}
	b.setWhere(where)
	return b
}

// WhereRaw sets a literal WHERE condition with its parameters.
func (b *DeleteBuilder) WhereRaw(condition string, params ...any) *DeleteBuilder {
	if condition == "" {
		return b.fail("delete.where", "condition is required")
	}
	if b.err != nil {
		return b
	}
	b.setRaw(condition, params)
	return b
}

// OrderBy adds an ORDER BY entry.
func (b *DeleteBuilder) OrderBy(column string, direction SortDirection) *DeleteBuilder {
	if column == "" {
		return b.fail("delete.orderby", "column name is required")
	}
	if b.err != nil {
		return b
	}
	b.add(column, direction)
	return b
}

// Limit caps the number of affected rows. Negative values are rejected.
func (b *DeleteBuilder) Limit(n int) *DeleteBuilder {
	if n < 0 {
		return b.fail("delete.limit", "limit cannot be negative")
	}
	if b.err != nil {
		return b
	}
	b.setLimit(n)
	return b
}

func (b *DeleteBuilder) render() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if !b.hasFrom() {
		return "", nil, &core.InputError{Op: "delete", Reason: "table name is required"}
	}

	var params []any
	var sb strings.Builder
	sb.WriteString("DELETE ")
	from, err := b.renderFrom(&params)
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(from)
	if b.hasWhere() {
		where, err := b.renderWhere(&params)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" " + where)
	}
	if b.hasOrderBy() {
		sb.WriteString(" " + b.renderOrderBy())
	}
	if b.hasLimit() {
		sb.WriteString(" " + b.renderLimit())
	}
	return sb.String() + ";", params, nil
}

// Build renders the statement text.
func (b *DeleteBuilder) Build() (string, error) {
	text, _, err := b.render()
	return text, err
}

// Parameters returns the parameters in placeholder order.
func (b *DeleteBuilder) Parameters() []any {
	_, params, err := b.render()
	if err != nil {
		return nil
	}
	return params
}
