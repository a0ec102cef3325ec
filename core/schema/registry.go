package schema

import (
	"reflect"
	"sync"

	"github.com/asaidimu/go-kente/core"
)

// Registry holds one table definition per record type. Declarations are
// registered up front and built lazily, exactly once, on first lookup;
// afterwards every lookup for the type returns the identical instance (or
// the identical construction error — a failed declaration is not retried).
//
// The registry is the only process-wide mutable structure in the engine.
// Reads after a type's one-time construction never mutate it.
type Registry struct {
	mu      sync.Mutex
	entries map[reflect.Type]*registryEntry
}

type registryEntry struct {
	once  sync.Once
	build func() (any, error)
	table any
	err   error
}

// NewRegistry creates an empty registry. Applications typically hold one in
// their composition root and pass it to every repository.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[reflect.Type]*registryEntry)}
}

func recordType[R any]() reflect.Type {
	return reflect.TypeOf((*R)(nil)).Elem()
}

// Register stores the declaration for record type R. The declaration is not
// validated here; construction happens on the first LookupTable call.
// Registering the same type twice keeps the first declaration.
func Register[R any](reg *Registry, b *Builder[R]) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	key := recordType[R]()
	if _, exists := reg.entries[key]; exists {
		return
	}
	reg.entries[key] = &registryEntry{
		build: func() (any, error) { return b.Build() },
	}
}

// LookupTable returns the table metadata for record type R, building it on
// first use. Construction failures are permanent: every subsequent lookup
// returns the same SchemaError.
func LookupTable[R any](reg *Registry) (*Table[R], error) {
	reg.mu.Lock()
	entry, ok := reg.entries[recordType[R]()]
	reg.mu.Unlock()
	if !ok {
		return nil, &core.SchemaError{Reason: "record type " + recordType[R]().String() + " is not registered"}
	}
	entry.once.Do(func() {
		entry.table, entry.err = entry.build()
	})
	if entry.err != nil {
		return nil, entry.err
	}
	return entry.table.(*Table[R]), nil
}
