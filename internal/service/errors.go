package service

import (
	"errors"
	"fmt"
)

// ErrStudentNotFound indicates the requested student does not exist.
var ErrStudentNotFound = errors.New("student not found")

// ErrTeacherNotFound indicates the requested teacher does not exist.
var ErrTeacherNotFound = errors.New("teacher not found")

// NotFoundError reports a failed lookup, naming the identifier that was
// searched. It wraps the entity sentinel so errors.Is keeps matching.
type NotFoundError struct {
	sentinel error
	Field    string
	Value    string
}

func notFound(sentinel error, field string, value any) *NotFoundError {
	return &NotFoundError{sentinel: sentinel, Field: field, Value: fmt.Sprint(value)}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with %s: %s", e.sentinel.Error(), e.Field, e.Value)
}

func (e *NotFoundError) Unwrap() error { return e.sentinel }

// ConflictError reports a uniqueness violation on an entity field. Handlers
// match it with errors.As and surface the message, which names the field and
// the offending value.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %s already exists", e.Entity, e.Field, e.Value)
}
