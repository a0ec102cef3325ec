package builder

import "github.com/asaidimu/go-kente/core"

// GenericBuilder wraps a caller-supplied SQL string and parameter list
// verbatim. It is the escape hatch for statements the structured builders
// cannot express.
type GenericBuilder struct {
	sql    string
	params []any
}

// NewGeneric wraps literal SQL text and its parameters.
func NewGeneric(sql string, params ...any) *GenericBuilder {
	return &GenericBuilder{sql: sql, params: params}
}

// Build returns the wrapped SQL text unchanged.
func (b *GenericBuilder) Build() (string, error) {
	if b.sql == "" {
		return "", &core.InputError{Op: "generic", Reason: "sql text is required"}
	}
	return b.sql, nil
}

// Parameters returns the wrapped parameters unchanged.
func (b *GenericBuilder) Parameters() []any {
	return b.params
}
