package schema

import (
	"errors"
	"sync"
	"testing"

	"github.com/asaidimu/go-kente/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_LookupReturnsIdenticalInstance(t *testing.T) {
	reg := NewRegistry()
	Register(reg, widgetTable())

	first, err := LookupTable[widget](reg)
	require.NoError(t, err)
	second, err := LookupTable[widget](reg)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestRegistry_UnregisteredType(t *testing.T) {
	reg := NewRegistry()
	_, err := LookupTable[widget](reg)
	var schemaErr *core.SchemaError
	require.True(t, errors.As(err, &schemaErr))
}

// A failed declaration is permanent: every lookup yields the same error and
// the builder is not re-run.
func TestRegistry_ConstructionFailureIsPermanent(t *testing.T) {
	reg := NewRegistry()
	Register(reg, New[widget]("widgets")) // zero columns

	_, err := LookupTable[widget](reg)
	var schemaErr *core.SchemaError
	require.True(t, errors.As(err, &schemaErr))

	_, second := LookupTable[widget](reg)
	assert.Equal(t, err, second)
}

func TestRegistry_FirstRegistrationWins(t *testing.T) {
	reg := NewRegistry()
	Register(reg, widgetTable())
	Register(reg, New[widget]("other"))

	table, err := LookupTable[widget](reg)
	require.NoError(t, err)
	assert.Equal(t, "widgets", table.Name())
}

func TestRegistry_ConcurrentLookupBuildsOnce(t *testing.T) {
	reg := NewRegistry()
	Register(reg, widgetTable())

	const lookups = 16
	tables := make([]*Table[widget], lookups)
	var wg sync.WaitGroup
	for i := 0; i < lookups; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table, err := LookupTable[widget](reg)
			assert.NoError(t, err)
			tables[i] = table
		}(i)
	}
	wg.Wait()

	for i := 1; i < lookups; i++ {
		assert.Same(t, tables[0], tables[i])
	}
}
