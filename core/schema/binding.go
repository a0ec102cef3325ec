// Package schema derives and holds per-record-type metadata: the table
// name, the identity column, and one column binding per mapped field. A
// table definition is declared once, validated at construction, and shared
// read-only by every instance of its record type.
package schema

import (
	"fmt"

	"github.com/asaidimu/go-kente/core"
)

// Getter reads a column value out of a record instance.
type Getter[R any] func(*R) core.Value

// Setter writes a database value into a record instance, coercing through
// the core.Value accessors as needed.
type Setter[R any] func(*R, core.Value) error

// Column binds one record field to one SQL column: a typed accessor pair
// plus the constraints enforced on the way in and out.
type Column[R any] struct {
	name          string
	kind          core.Kind
	identity      bool
	notNull       bool
	autoIncrement bool
	maxLength     int // 0 means unbounded
	get           Getter[R]
	set           Setter[R]
}

// Name returns the SQL column identifier.
func (c *Column[R]) Name() string { return c.name }

// Kind returns the declared value kind of the column.
func (c *Column[R]) Kind() core.Kind { return c.kind }

// IsIdentity reports whether this column identifies the row.
func (c *Column[R]) IsIdentity() bool { return c.identity }

// NotNull reports whether null values are rejected. Columns are not-null
// unless declared nullable.
func (c *Column[R]) NotNull() bool { return c.notNull }

// AutoIncrement reports whether the database assigns this column's value on
// insert. Only meaningful on a numeric identity column.
func (c *Column[R]) AutoIncrement() bool { return c.autoIncrement }

// MaxLength returns the maximum length for length-bearing values, or 0 when
// unbounded.
func (c *Column[R]) MaxLength() int { return c.maxLength }

// Read returns the current field value, enforcing the column's constraints.
// A null value on a not-null column is a validation failure unless the
// column is auto-increment, whose value may still be pending assignment by
// the database. Length-bearing values are checked against MaxLength.
func (c *Column[R]) Read(rec *R) (core.Value, error) {
	v := c.get(rec)
	if v.IsNull() {
		if c.notNull && !c.autoIncrement {
			return core.Null(), &core.ValidationError{Column: c.name, Reason: "value must not be null"}
		}
		return v, nil
	}
	if c.maxLength > 0 {
		if length, ok := v.Len(); ok && length > c.maxLength {
			return core.Null(), &core.ValidationError{
				Column: c.name,
				Reason: fmt.Sprintf("length %d exceeds maximum %d", length, c.maxLength),
			}
		}
	}
	return v, nil
}

// Write coerces a database value into the record's field. Constraint
// violations surface as ValidationErrors at the point of the write.
func (c *Column[R]) Write(rec *R, v core.Value) error {
	if v.IsNull() && c.notNull && !c.autoIncrement {
		return &core.ValidationError{Column: c.name, Reason: "value must not be null"}
	}
	if err := c.set(rec, v); err != nil {
		return fmt.Errorf("column %q: %w", c.name, err)
	}
	return nil
}
