package builder

import (
	"fmt"
	"strings"
)

// SortDirection is the direction of an ORDER BY entry.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// fromClause is the FROM capability shared by the statement builders that
// need one. It accepts either a plain table name or an aliased subquery.
type fromClause struct {
	table string
	sub   *SelectBuilder
	alias string
}

func (f *fromClause) setTable(table string) {
	f.table = table
	f.sub = nil
	f.alias = ""
}

func (f *fromClause) setSubquery(sub *SelectBuilder, alias string) {
	f.table = ""
	f.sub = sub
	f.alias = alias
}

func (f *fromClause) hasFrom() bool {
	return f.table != "" || f.sub != nil
}

// renderFrom emits the clause body and appends any subquery parameters to
// params in their render order.
func (f *fromClause) renderFrom(params *[]any) (string, error) {
	if f.table != "" {
		return "FROM " + quoteIdentifier(f.table), nil
	}
	text, subParams, err := f.sub.render()
	if err != nil {
		return "", err
	}
	*params = append(*params, subParams...)
	text = strings.TrimSuffix(text, ";")
	return fmt.Sprintf("FROM (%s) AS %s", text, quoteIdentifier(f.alias)), nil
}

// orderByClause is the ORDER BY capability shared by the statement builders.
type orderByClause struct {
	items []string
}

func (o *orderByClause) add(column string, direction SortDirection) {
	o.items = append(o.items, quoteIdentifier(column)+" "+string(direction))
}

func (o *orderByClause) hasOrderBy() bool {
	return len(o.items) > 0
}

func (o *orderByClause) renderOrderBy() string {
	return "ORDER BY " + strings.Join(o.items, ", ")
}

// whereClause is the WHERE capability. It holds either a structured
// WhereBuilder or a raw condition string with its parameters; setting one
// replaces the other.
type whereClause struct {
	where     *WhereBuilder
	raw       string
	rawParams []any
}

func (w *whereClause) setWhere(where *WhereBuilder) {
	w.where = where
	w.raw = ""
	w.rawParams = nil
}

func (w *whereClause) setRaw(condition string, params []any) {
	w.where = nil
	w.raw = condition
	w.rawParams = params
}

func (w *whereClause) hasWhere() bool {
	if w.where != nil {
		// An errored builder still renders so its input error surfaces.
		return !w.where.Empty() || w.where.err != nil
	}
	return w.raw != ""
}

// renderWhere emits the clause body and appends the condition parameters.
func (w *whereClause) renderWhere(params *[]any) (string, error) {
	if w.where != nil {
		text, err := w.where.Build()
		if err != nil {
			return "", err
		}
		*params = append(*params, w.where.Parameters()...)
		return "WHERE " + text, nil
	}
	*params = append(*params, w.rawParams...)
	return "WHERE " + w.raw, nil
}

// limitClause is the LIMIT capability.
type limitClause struct {
	limit int
	set   bool
}

func (l *limitClause) setLimit(n int) {
	l.limit = n
	l.set = true
}

func (l *limitClause) hasLimit() bool {
	return l.set
}

func (l *limitClause) renderLimit() string {
	return fmt.Sprintf("LIMIT %d", l.limit)
}
