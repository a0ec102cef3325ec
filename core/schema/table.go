package schema

import (
	"fmt"

	"github.com/asaidimu/go-kente/core"
	"github.com/asaidimu/go-kente/core/builder"
)

// Producers is the optional per-operation override set a record type may
// attach to its table declaration. A nil entry means the lifecycle engine
// builds its default statement for that operation.
type Producers[R any] struct {
	Get    func(t *Table[R], key any) (builder.Statement, error)
	Find   func(t *Table[R], conditions map[string]any) (builder.Statement, error)
	Create func(t *Table[R], rec *R) (builder.Statement, error)
	Save   func(t *Table[R], rec *R, columns []string) (builder.Statement, error)
	Remove func(t *Table[R], rec *R) (builder.Statement, error)
}

// Table is the validated, immutable metadata for one record type. It is
// built once and shared by every instance of the type.
type Table[R any] struct {
	name      string
	idColumn  string
	columns   map[string]*Column[R]
	order     []string
	producers Producers[R]
}

// Name returns the SQL table name.
func (t *Table[R]) Name() string { return t.name }

// IDColumn returns the name of the identity column.
func (t *Table[R]) IDColumn() string { return t.idColumn }

// Column looks up a binding by column name.
func (t *Table[R]) Column(name string) (*Column[R], bool) {
	c, ok := t.columns[name]
	return c, ok
}

// Columns returns the bindings in declaration order.
func (t *Table[R]) Columns() []*Column[R] {
	columns := make([]*Column[R], len(t.order))
	for i, name := range t.order {
		columns[i] = t.columns[name]
	}
	return columns
}

// Identity returns the identity column binding.
func (t *Table[R]) Identity() *Column[R] {
	return t.columns[t.idColumn]
}

// Producers returns the override set attached at declaration time.
func (t *Table[R]) Producers() Producers[R] {
	return t.producers
}

// Builder declares a table step by step: name the table, bind columns,
// apply per-column modifiers, then Build to validate the whole declaration.
type Builder[R any] struct {
	table     string
	columns   []*Column[R]
	producers Producers[R]
}

// New starts a table declaration for record type R.
func New[R any](table string) *Builder[R] {
	return &Builder[R]{table: table}
}

// ColumnBuilder applies modifiers to the column bound most recently. It
// returns to the table builder through Column or Build.
type ColumnBuilder[R any] struct {
	parent *Builder[R]
	column *Column[R]
}

// Column binds a field to a column. Columns default to not-null, unbounded
// length, no auto-increment.
func (b *Builder[R]) Column(name string, kind core.Kind, get Getter[R], set Setter[R]) *ColumnBuilder[R] {
	column := &Column[R]{
		name:    name,
		kind:    kind,
		notNull: true,
		get:     get,
		set:     set,
	}
	b.columns = append(b.columns, column)
	return &ColumnBuilder[R]{parent: b, column: column}
}

// Producers attaches per-operation statement overrides.
func (b *Builder[R]) Producers(p Producers[R]) *Builder[R] {
	b.producers = p
	return b
}

// Identity marks the column as the row identity.
func (cb *ColumnBuilder[R]) Identity() *ColumnBuilder[R] {
	cb.column.identity = true
	return cb
}

// Nullable allows null values in the column.
func (cb *ColumnBuilder[R]) Nullable() *ColumnBuilder[R] {
	cb.column.notNull = false
	return cb
}

// AutoIncrement marks the column as database-assigned on insert.
func (cb *ColumnBuilder[R]) AutoIncrement() *ColumnBuilder[R] {
	cb.column.autoIncrement = true
	return cb
}

// MaxLength bounds the length of the column's values.
func (cb *ColumnBuilder[R]) MaxLength(n int) *ColumnBuilder[R] {
	cb.column.maxLength = n
	return cb
}

// Column binds the next field, ending modifiers for the current one.
func (cb *ColumnBuilder[R]) Column(name string, kind core.Kind, get Getter[R], set Setter[R]) *ColumnBuilder[R] {
	return cb.parent.Column(name, kind, get, set)
}

// Producers attaches per-operation statement overrides.
func (cb *ColumnBuilder[R]) Producers(p Producers[R]) *Builder[R] {
	return cb.parent.Producers(p)
}

// End finalizes the current column and returns to the table builder.
func (cb *ColumnBuilder[R]) End() *Builder[R] {
	return cb.parent
}

// Build finalizes the declaration from the column builder.
func (cb *ColumnBuilder[R]) Build() (*Table[R], error) {
	return cb.parent.Build()
}

// Build validates the declaration and returns the immutable table metadata.
// The checks mirror the construction rules: at least one column, exactly
// one identity, unique column names, accessors present, and auto-increment
// only on numeric columns. A failure is permanent for the record type.
func (b *Builder[R]) Build() (*Table[R], error) {
	if b.table == "" {
		return nil, &core.SchemaError{Table: b.table, Reason: "table name is required"}
	}
	if len(b.columns) == 0 {
		return nil, &core.SchemaError{Table: b.table, Reason: "at least one column is required"}
	}

	columns := make(map[string]*Column[R], len(b.columns))
	order := make([]string, 0, len(b.columns))
	idColumn := ""
	for _, column := range b.columns {
		if column.name == "" {
			return nil, &core.SchemaError{Table: b.table, Reason: "column name is required"}
		}
		if _, exists := columns[column.name]; exists {
			return nil, &core.SchemaError{
				Table:  b.table,
				Reason: fmt.Sprintf("duplicate column %q", column.name),
			}
		}
		if column.get == nil || column.set == nil {
			return nil, &core.SchemaError{
				Table:  b.table,
				Reason: fmt.Sprintf("column %q is missing an accessor", column.name),
			}
		}
		if column.identity {
			if idColumn != "" {
				return nil, &core.SchemaError{
					Table:  b.table,
					Reason: fmt.Sprintf("duplicate identity: %q and %q", idColumn, column.name),
				}
			}
			idColumn = column.name
		}
		if column.autoIncrement && !column.kind.Numeric() {
			return nil, &core.SchemaError{
				Table:  b.table,
				Reason: fmt.Sprintf("auto-increment column %q must be numeric, got %s", column.name, column.kind),
			}
		}
		columns[column.name] = column
		order = append(order, column.name)
	}
	if idColumn == "" {
		return nil, &core.SchemaError{Table: b.table, Reason: "no identity column"}
	}

	return &Table[R]{
		name:      b.table,
		idColumn:  idColumn,
		columns:   columns,
		order:     order,
		producers: b.producers,
	}, nil
}
