package builder

import (
	"fmt"
	"strings"

	"github.com/asaidimu/go-kente/core"
)

// SelectBuilder builds a SELECT statement. Columns default to `*` when none
// are chosen; every other clause is emitted only when populated.
type SelectBuilder struct {
	columns []string
	fromClause
	whereClause
	orderByClause
	limitClause
	err error
}

// NewSelect creates an empty SELECT builder.
func NewSelect() *SelectBuilder {
	return &SelectBuilder{}
}

// LastInsertID produces a zero-argument select for the backend's
// last-autoincrement-value function. It is issued immediately after an
// insert into an auto-increment identity column.
func LastInsertID() *SelectBuilder {
	return NewSelect().SelectFunc("last_insert_rowid")
}

func (b *SelectBuilder) fail(op, reason string) *SelectBuilder {
	if b.err == nil {
		b.err = &core.InputError{Op: op, Reason: reason}
	}
	return b
}

// Select adds columns to the projection.
func (b *SelectBuilder) Select(columns ...string) *SelectBuilder {
	if len(columns) == 0 {
		return b.fail("select", "at least one column is required")
	}
	for _, column := range columns {
		if column == "" {
			return b.fail("select", "column name is required")
		}
	}
	if b.err != nil {
		return b
	}
	for _, column := range columns {
		b.columns = append(b.columns, quoteIdentifier(column))
	}
	return b
}

// SelectFunc adds a column function such as COUNT or AVG to the projection.
// With no columns the function is rendered with an empty argument list.
func (b *SelectBuilder) SelectFunc(name string, columns ...string) *SelectBuilder {
	if name == "" {
		return b.fail("select.func", "function name is required")
	}
	if b.err != nil {
		return b
	}
	b.columns = append(b.columns, fmt.Sprintf("%s(%s)", name, quoteAll(columns)))
	return b
}

// SelectAvg adds AVG(column) to the projection.
func (b *SelectBuilder) SelectAvg(column string) *SelectBuilder {
	return b.SelectFunc("AVG", column)
}

// SelectMax adds MAX(column) to the projection.
func (b *SelectBuilder) SelectMax(column string) *SelectBuilder {
	return b.SelectFunc("MAX", column)
}

// SelectMin adds MIN(column) to the projection.
func (b *SelectBuilder) SelectMin(column string) *SelectBuilder {
	return b.SelectFunc("MIN", column)
}

// SelectSum adds SUM(column) to the projection.
func (b *SelectBuilder) SelectSum(column string) *SelectBuilder {
	return b.SelectFunc("SUM", column)
}

// From sets the source table.
func (b *SelectBuilder) From(table string) *SelectBuilder {
	if table == "" {
		return b.fail("select.from", "table name is required")
	}
	if b.err != nil {
		return b
	}
	b.setTable(table)
	return b
}

// FromSelect sets an aliased subquery as the source.
func (b *SelectBuilder) FromSelect(sub *SelectBuilder, alias string) *SelectBuilder {
	if sub == nil {
		return b.fail("select.from", "subquery builder is required")
	}
	if alias == "" {
		return b.fail("select.from", "subquery alias is required")
	}
	if b.err != nil {
		return b
	}
	b.setSubquery(sub, alias)
	return b
}

// Where sets a structured WHERE condition.
func (b *SelectBuilder) Where(where *WhereBuilder) *SelectBuilder {
	if where == nil {
		return b.fail("select.where", "where builder is required")
	}
	if b.err != nil {
		return b
	}
	b.setWhere(where)
	return b
}

// WhereRaw sets a literal WHERE condition with its parameters.
func (b *SelectBuilder) WhereRaw(condition string, params ...any) *SelectBuilder {
	if condition == "" {
		return b.fail("select.where", "condition is required")
	}
	if b.err != nil {
		return b
	}
	b.setRaw(condition, params)
	return b
}

// OrderBy adds an ORDER BY entry.
func (b *SelectBuilder) OrderBy(column string, direction SortDirection) *SelectBuilder {
	if column == "" {
		return b.fail("select.orderby", "column name is required")
	}
	if b.err != nil {
		return b
	}
	b.add(column, direction)
	return b
}

// OrderByAsc adds an ascending ORDER BY entry.
func (b *SelectBuilder) OrderByAsc(column string) *SelectBuilder {
	return b.OrderBy(column, SortAsc)
}

// OrderByDesc adds a descending ORDER BY entry.
func (b *SelectBuilder) OrderByDesc(column string) *SelectBuilder {
	return b.OrderBy(column, SortDesc)
}

// OrderByColumns adds ascending ORDER BY entries for every given column.
func (b *SelectBuilder) OrderByColumns(columns ...string) *SelectBuilder {
	for _, column := range columns {
		b.OrderByAsc(column)
	}
	return b
}

// Limit caps the number of returned rows. Negative values are rejected.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	if n < 0 {
		return b.fail("select.limit", "limit cannot be negative")
	}
	if b.err != nil {
		return b
	}
	b.setLimit(n)
	return b
}

// render produces the SQL text and the parameter list in placeholder order.
func (b *SelectBuilder) render() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}

	var params []any
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(b.columns) > 0 {
		sb.WriteString(strings.Join(b.columns, ", "))
	} else {
		sb.WriteString("*")
	}
	if b.hasFrom() {
		from, err := b.renderFrom(&params)
		if err != nil {
			return "", nil, err
		}
		sb.WriteString(" " + from)
	}
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
func (b *SelectBuilder) Build() (string, error) {
	text, _, err := b.render()
	return text, err
}

// Parameters returns the parameters in the order their placeholders occur
// in the rendered text.
func (b *SelectBuilder) Parameters() []any {
	_, params, err := b.render()
	if err != nil {
		return nil
	}
	return params
}
