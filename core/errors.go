// Package core holds the shared kinds used across go-kente: the error
// taxonomy and the tagged Value variant that carries column data between
// records, statement parameters, and database results.
package core

import "fmt"

// SchemaError reports an invalid table declaration. It is raised once, at
// registry-construction time, and is permanent for that record type.
type SchemaError struct {
	Table  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema %q: %s", e.Table, e.Reason)
}

// ConnectionError reports a failure to obtain a usable database connection.
// It is a configuration error and is never retried by this library.
type ConnectionError struct {
	DSN string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %q: %v", e.DSN, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ValidationError reports a column value that violates its binding's
// constraints (not-null or max-length). It is raised at the point of the
// offending read or write.
type ValidationError struct {
	Column string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
}

// NotFoundError reports that Get matched zero rows. Find returns an empty
// slice instead; the asymmetry is deliberate.
type NotFoundError struct {
	Table string
	Key   any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no row in %q with identity %v", e.Table, e.Key)
}

// AffectedRowError reports that a create, save, or remove affected zero rows
// where at least one was expected.
type AffectedRowError struct {
	Op    string
	Table string
}

func (e *AffectedRowError) Error() string {
	return fmt.Sprintf("%s on %q affected no rows", e.Op, e.Table)
}

// InputError reports a null or invalid argument passed to a builder method.
// Builders record the first InputError they see and surface it from Build;
// no text is appended for the offending call.
type InputError struct {
	Op     string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
