package builder

import (
	"fmt"
	"strings"

	"github.com/asaidimu/go-kente/core"
)

// WhereBuilder accumulates a boolean SQL expression as text alongside a
// parallel parameter list. Logical connectives and parentheses append fixed
// text; the builder does not balance parentheses or check operator arity —
// well-formed nesting is the caller's responsibility.
//
// Build renders the accumulated state and is idempotent; mutating the
// builder after a render simply continues appending.
type WhereBuilder struct {
	fragments []string
	params    []any
	err       error
}

// NewWhere creates an empty WHERE expression builder.
func NewWhere() *WhereBuilder {
	return &WhereBuilder{}
}

// fail records the first input error; later calls keep the original.
func (w *WhereBuilder) fail(op, reason string) *WhereBuilder {
	if w.err == nil {
		w.err = &core.InputError{Op: op, Reason: reason}
	}
	return w
}

// And appends the AND connective.
func (w *WhereBuilder) And() *WhereBuilder {
	w.fragments = append(w.fragments, "AND")
	return w
}

// Or appends the OR connective.
func (w *WhereBuilder) Or() *WhereBuilder {
	w.fragments = append(w.fragments, "OR")
	return w
}

// Xor appends the XOR connective.
func (w *WhereBuilder) Xor() *WhereBuilder {
	w.fragments = append(w.fragments, "XOR")
	return w
}

// OpenParen appends an opening parenthesis.
func (w *WhereBuilder) OpenParen() *WhereBuilder {
	w.fragments = append(w.fragments, "(")
	return w
}

// CloseParen appends a closing parenthesis.
func (w *WhereBuilder) CloseParen() *WhereBuilder {
	w.fragments = append(w.fragments, ")")
	return w
}

// Compare appends `column operator ?` and pushes one parameter.
func (w *WhereBuilder) Compare(column, operator string, value any) *WhereBuilder {
	if column == "" {
		return w.fail("where.compare", "column name is required")
	}
	if operator == "" {
		return w.fail("where.compare", "operator is required")
	}
	if value == nil {
		return w.fail("where.compare", "value is required; use IsNull for null checks")
	}
	if w.err != nil {
		return w
	}
	w.fragments = append(w.fragments, fmt.Sprintf("%s %s ?", quoteIdentifier(column), operator))
	w.params = append(w.params, value)
	return w
}

// Eq appends an equality comparison.
func (w *WhereBuilder) Eq(column string, value any) *WhereBuilder {
	return w.Compare(column, "=", value)
}

// Neq appends a not-equal comparison.
func (w *WhereBuilder) Neq(column string, value any) *WhereBuilder {
	return w.Compare(column, "!=", value)
}

// Like appends a LIKE comparison.
func (w *WhereBuilder) Like(column string, value any) *WhereBuilder {
	return w.Compare(column, "LIKE", value)
}

// NotLike appends a NOT LIKE comparison.
func (w *WhereBuilder) NotLike(column string, value any) *WhereBuilder {
	return w.Compare(column, "NOT LIKE", value)
}

// Lt appends a less-than comparison.
func (w *WhereBuilder) Lt(column string, value any) *WhereBuilder {
	return w.Compare(column, "<", value)
}

// Gt appends a greater-than comparison.
func (w *WhereBuilder) Gt(column string, value any) *WhereBuilder {
	return w.Compare(column, ">", value)
}

// Lte appends a less-than-or-equal comparison.
func (w *WhereBuilder) Lte(column string, value any) *WhereBuilder {
	return w.Compare(column, "<=", value)
}

// Gte appends a greater-than-or-equal comparison.
func (w *WhereBuilder) Gte(column string, value any) *WhereBuilder {
	return w.Compare(column, ">=", value)
}

// IsNull appends an IS NULL check; no parameter is pushed.
func (w *WhereBuilder) IsNull(column string) *WhereBuilder {
	if column == "" {
		return w.fail("where.isnull", "column name is required")
	}
	if w.err != nil {
		return w
	}
	w.fragments = append(w.fragments, quoteIdentifier(column)+" IS NULL")
	return w
}

// IsNotNull appends an IS NOT NULL check; no parameter is pushed.
func (w *WhereBuilder) IsNotNull(column string) *WhereBuilder {
	if column == "" {
		return w.fail("where.isnotnull", "column name is required")
	}
	if w.err != nil {
		return w
	}
	w.fragments = append(w.fragments, quoteIdentifier(column)+" IS NOT NULL")
	return w
}

// In appends `column IN (?, ...)` with one parameter per value.
func (w *WhereBuilder) In(column string, values ...any) *WhereBuilder {
	return w.membership("IN", column, values)
}

// NotIn appends `column NOT IN (?, ...)` with one parameter per value.
func (w *WhereBuilder) NotIn(column string, values ...any) *WhereBuilder {
	return w.membership("NOT IN", column, values)
}

func (w *WhereBuilder) membership(op, column string, values []any) *WhereBuilder {
	if column == "" {
		return w.fail("where.in", "column name is required")
	}
	if len(values) == 0 {
		return w.fail("where.in", "at least one value is required")
	}
	if w.err != nil {
		return w
	}
	w.fragments = append(w.fragments,
		fmt.Sprintf("%s %s (%s)", quoteIdentifier(column), op, placeholders(len(values))))
	w.params = append(w.params, values...)
	return w
}

// InQuery appends `column IN (<subquery>)`, importing the subquery's
// parameters in its render order after any parameters already accumulated.
func (w *WhereBuilder) InQuery(column string, sub *SelectBuilder) *WhereBuilder {
	return w.membershipQuery("IN", column, sub)
}

// NotInQuery appends `column NOT IN (<subquery>)`.
func (w *WhereBuilder) NotInQuery(column string, sub *SelectBuilder) *WhereBuilder {
	return w.membershipQuery("NOT IN", column, sub)
}

func (w *WhereBuilder) membershipQuery(op, column string, sub *SelectBuilder) *WhereBuilder {
	if column == "" {
		return w.fail("where.in", "column name is required")
	}
	if sub == nil {
		return w.fail("where.in", "subquery builder is required")
	}
	if w.err != nil {
		return w
	}
	text, params, err := sub.render()
	if err != nil {
		w.err = err
		return w
	}
	text = strings.TrimSuffix(text, ";")
	w.fragments = append(w.fragments,
		fmt.Sprintf("%s %s (%s)", quoteIdentifier(column), op, text))
	w.params = append(w.params, params...)
	return w
}

// Empty reports whether no fragment has been appended yet.
func (w *WhereBuilder) Empty() bool {
	return len(w.fragments) == 0
}

// Build renders the accumulated expression. It is a pure render of the
// current state: calling it twice without mutation yields identical text.
func (w *WhereBuilder) Build() (string, error) {
	if w.err != nil {
		return "", w.err
	}
	return strings.Join(w.fragments, " "), nil
}

// Parameters returns the accumulated parameters in emission order.
func (w *WhereBuilder) Parameters() []any {
	return w.params
}
