package builder

import (
	"sort"
	"strings"

	"github.com/asaidimu/go-kente/core"
)

// UpdateBuilder builds an UPDATE statement. SET entries accumulate in call
// order; SET parameters precede any WHERE parameters in the rendered list.
type UpdateBuilder struct {
	table      string
	setColumns []string
	setValues  []any
	whereClause
	orderByClause
	limitClause
	err error
}

// NewUpdate creates an empty UPDATE builder.
func NewUpdate() *UpdateBuilder {
	return &UpdateBuilder{}
}

func (b *UpdateBuilder) fail(op, reason string) *UpdateBuilder {
	if b.err == nil {
		b.err = &core.InputError{Op: op, Reason: reason}
	}
	return b
}

// Update sets the target table.
func (b *UpdateBuilder) Update(table string) *UpdateBuilder {
	if table == "" {
		return b.fail("update", "table name is required")
	}
	if b.err != nil {
		return b
	}
	b.table = table
	return b
}

// Set adds a single column assignment.
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	if column == "" {
		return b.fail("update.set", "column name is required")
	}
	if b.err != nil {
		return b
	}
	b.setColumns = append(b.setColumns, column)
	b.setValues = append(b.setValues, value)
	return b
}

// SetMap adds assignments for every entry of the map, in column name order
// so the rendered text is deterministic.
func (b *UpdateBuilder) SetMap(assignments map[string]any) *UpdateBuilder {
	if len(assignments) == 0 {
		return b.fail("update.set", "at least one assignment is required")
	}
	columns := make([]string, 0, len(assignments))
	for column := range assignments {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	for _, column := range columns {
		b.Set(column, assignments[column])
	}
	return b
}

// Where sets a structured WHERE condition.
func (b *UpdateBuilder) Where(where *WhereBuilder) *UpdateBuilder {
	if where == nil {
		return b.fail("update.where", "where builder is required")
	}
	if b.err != nil {
		return b
	}
	b.setWhere(where)
	return b
}

// WhereRaw sets a literal WHERE condition with its parameters.
func (b *UpdateBuilder) WhereRaw(condition string, params ...any) *UpdateBuilder {
	if condition == "" {
		return b.fail("update.where", "condition is required")
	}
	if b.err != nil {
		return b
	}
	b.setRaw(condition, params)
	return b
}

// OrderBy adds an ORDER BY entry.
func (b *UpdateBuilder) OrderBy(column string, direction SortDirection) *UpdateBuilder {
	if column == "" {
		return b.fail("update.orderby", "column name is required")
	}
	if b.err != nil {
		return b
	}
	b.add(column, direction)
	return b
}

// Limit caps the number of affected rows. Negative values are rejected.
func (b *UpdateBuilder) Limit(n int) *UpdateBuilder {
	if n < 0 {
		return b.fail("update.limit", "limit cannot be negative")
	}
	if b.err != nil {
		return b
	}
	b.setLimit(n)
	return b
}

func (b *UpdateBuilder) render() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if b.table == "" {
		return "", nil, &core.InputError{Op: "update", Reason: "table name is required"}
	}
	if len(b.setColumns) == 0 {
		return "", nil, &core.InputError{Op: "update", Reason: "at least one assignment is required"}
	}

	var params []any
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(quoteIdentifier(b.table))
	sb.WriteString(" SET ")
	for i, column := range b.setColumns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(quoteIdentifier(column))
		sb.WriteString(" = ?")
		params = append(params, b.setValues[i])
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
func (b *UpdateBuilder) Build() (string, error) {
	text, _, err := b.render()
	return text, err
}

// Parameters returns the parameters in placeholder order: SET values first,
// then WHERE parameters.
func (b *UpdateBuilder) Parameters() []any {
	_, params, err := b.render()
	if err != nil {
		return nil
	}
	return params
}
