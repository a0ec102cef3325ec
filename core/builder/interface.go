// Package builder provides composable SQL statement builders. Fragment
// builders (WHERE conditions, FROM and ORDER BY clauses) are assembled by
// the statement builders (SELECT, INSERT, UPDATE, DELETE) into final SQL
// text plus an ordered parameter list.
//
// Builders are mutable, single-owner values: construct one per call site,
// chain configuration calls on it, then render it. Identifiers are always
// quoted in the rendered text and values are always emitted as positional
// `?` placeholders; a value never appears inline in the SQL string.
package builder

// Statement is the common contract implemented by every statement builder:
// render the SQL text, and expose the parameters in the exact order their
// placeholders occur in that text. Executors rely on this ordering for
// positional binding.
type Statement interface {
	Build() (string, error)
	Parameters() []any
}
