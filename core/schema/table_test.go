package schema

import (
	"errors"
	"testing"

	"github.com/asaidimu/go-kente/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   int64
	Name *string
	Kind int64
}

func widgetID() (Getter[widget], Setter[widget]) {
	return func(w *widget) core.Value { return core.Int(w.ID) },
		func(w *widget, v core.Value) error {
			n, err := v.Int64()
			if err != nil {
				return err
			}
			w.ID = n
			return nil
		}
}

func widgetName() (Getter[widget], Setter[widget]) {
	return func(w *widget) core.Value { return core.NullableText(w.Name) },
		func(w *widget, v core.Value) error {
			if v.IsNull() {
				w.Name = nil
				return nil
			}
			s, err := v.Text()
			if err != nil {
				return err
			}
			w.Name = &s
			return nil
		}
}

func widgetKind() (Getter[widget], Setter[widget]) {
	return func(w *widget) core.Value { return core.Int(w.Kind) },
		func(w *widget, v core.Value) error {
			n, err := v.Int64()
			if err != nil {
				return err
			}
			w.Kind = n
			return nil
		}
}

// widgetTable is the reference declaration used across the schema and
// record tests: auto-increment identity, a length-capped name, and a plain
// integer column.
func widgetTable() *Builder[widget] {
	idGet, idSet := widgetID()
	nameGet, nameSet := widgetName()
	kindGet, kindSet := widgetKind()
	return New[widget]("widgets").
		Column("id", core.KindInt, idGet, idSet).Identity().AutoIncrement().
		Column("name", core.KindText, nameGet, nameSet).MaxLength(5).
		Column("type", core.KindInt, kindGet, kindSet).
		End()
}

func TestBuilder_Build(t *testing.T) {
	table, err := widgetTable().Build()
	require.NoError(t, err)

	assert.Equal(t, "widgets", table.Name())
	assert.Equal(t, "id", table.IDColumn())
	assert.Len(t, table.Columns(), 3)

	id := table.Identity()
	assert.True(t, id.IsIdentity())
	assert.True(t, id.AutoIncrement())
	assert.True(t, id.NotNull())

	name, ok := table.Column("name")
	require.True(t, ok)
	assert.False(t, name.IsIdentity())
	assert.Equal(t, 5, name.MaxLength())
	assert.Equal(t, core.KindText, name.Kind())

	// Declaration order is preserved.
	columns := table.Columns()
	assert.Equal(t, "id", columns[0].Name())
	assert.Equal(t, "name", columns[1].Name())
	assert.Equal(t, "type", columns[2].Name())
}

func TestBuilder_SchemaErrors(t *testing.T) {
	idGet, idSet := widgetID()
	nameGet, nameSet := widgetName()

	tests := []struct {
		name    string
		buildFn func() *Builder[widget]
	}{
		{
			name:    "zero columns",
			buildFn: func() *Builder[widget] { return New[widget]("widgets") },
		},
		{
			name: "no identity",
			buildFn: func() *Builder[widget] {
				return New[widget]("widgets").
					Column("name", core.KindText, nameGet, nameSet).End()
			},
		},
		{
			name: "duplicate identity",
			buildFn: func() *Builder[widget] {
				return New[widget]("widgets").
					Column("id", core.KindInt, idGet, idSet).Identity().
					Column("name", core.KindText, nameGet, nameSet).Identity().
					End()
			},
		},
		{
			name: "duplicate column name",
			buildFn: func() *Builder[widget] {
				return New[widget]("widgets").
					Column("id", core.KindInt, idGet, idSet).Identity().
					Column("id", core.KindInt, idGet, idSet).
					End()
			},
		},
		{
			name: "auto-increment on non-numeric column",
			buildFn: func() *Builder[widget] {
				return New[widget]("widgets").
					Column("name", core.KindText, nameGet, nameSet).Identity().AutoIncrement().
					End()
			},
		},
		{
			name: "missing accessor",
			buildFn: func() *Builder[widget] {
				return New[widget]("widgets").
					Column("id", core.KindInt, nil, idSet).Identity().
					End()
			},
		},
		{
			name: "empty table name",
			buildFn: func() *Builder[widget] {
				return New[widget]("").
					Column("id", core.KindInt, idGet, idSet).Identity().
					End()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.buildFn().Build()
			var schemaErr *core.SchemaError
			require.True(t, errors.As(err, &schemaErr), "expected SchemaError, got %v", err)
		})
	}
}

func TestColumn_ReadValidation(t *testing.T) {
	table, err := widgetTable().Build()
	require.NoError(t, err)
	name, _ := table.Column("name")

	ok := "Test"
	v, err := name.Read(&widget{Name: &ok})
	require.NoError(t, err)
	s, err := v.Text()
	require.NoError(t, err)
	assert.Equal(t, "Test", s)

	// Over-long value fails at the point of the read.
	long := "Test123"
	_, err = name.Read(&widget{Name: &long})
	var validationErr *core.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "name", validationErr.Column)

	// Null on a not-null column fails.
	_, err = name.Read(&widget{Name: nil})
	require.True(t, errors.As(err, &validationErr))
}

func TestColumn_ReadAutoIncrementPendingNull(t *testing.T) {
	idGet, idSet := widgetID()
	table, err := New[widget]("widgets").
		Column("id", core.KindInt,
			func(w *widget) core.Value { return core.Null() }, idSet).
		Identity().AutoIncrement().
		Column("type", core.KindInt, idGet, idSet).
		Build()
	require.NoError(t, err)

	// A null auto-increment identity is pending, not a violation.
	v, err := table.Identity().Read(&widget{})
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestColumn_Write(t *testing.T) {
	table, err := widgetTable().Build()
	require.NoError(t, err)

	var w widget
	kind, _ := table.Column("type")
	require.NoError(t, kind.Write(&w, core.Int(3)))
	assert.Equal(t, int64(3), w.Kind)

	// Coercion from text happens in the setter's Value accessor.
	require.NoError(t, kind.Write(&w, core.Text("5")))
	assert.Equal(t, int64(5), w.Kind)

	// Null into a not-null column is rejected at the point of the write.
	name, _ := table.Column("name")
	err = name.Write(&w, core.Null())
	var validationErr *core.ValidationError
	require.True(t, errors.As(err, &validationErr))
}
