package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when no version of an entity exists for an hk,
	// or none satisfies the timestamp bound.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied is returned when the acting account does not own
	// the entity being mutated.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidLinkKind is returned for a link kind outside n/p/f.
	ErrInvalidLinkKind = errors.New("invalid link kind, expected n, p or f")
)

// ValidationError accumulates per-field problems during a write attempt.
// Nothing is persisted while one is non-empty; all fields are reported
// together rather than failing on the first.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns the error when any field failed, nil otherwise.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Fields[field], "; ")))
	}

	return "validation failed: " + strings.Join(parts, ", ")
}
