package models

import "fmt"

// ValidationError reports a missing or malformed field on a request.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// InvalidStateError reports an illegal status or occupancy transition.
type InvalidStateError struct {
	Entity string
	ID     uint
	State  string
	Action string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s %s %d in state %q", e.Action, e.Entity, e.ID, e.State)
}

// ConflictError reports a resource already in the target state, e.g. an
// attempt to assign an occupied table.
type ConflictError struct {
	Entity string
	ID     uint
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Reason)
}

// PersistenceError wraps a failed read or write against the store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
