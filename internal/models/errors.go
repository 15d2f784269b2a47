package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Custom errors
var (
	ErrNotFound     = errors.New("prediction not found")
	ErrAlreadyFinal = errors.New("prediction already has a final result")
)

// ValidationError reports malformed prediction input. It is surfaced to the
// caller before any computation begins.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError creates an empty ValidationError ready to collect field problems
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a field problem
func (e *ValidationError) Add(field, problem string) {
	e.Fields[field] = problem
}

// HasErrors reports whether any field problem was recorded
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// LookupError wraps a failure of the external result lookup collaborator
type LookupError struct {
	Provider string
	Err      error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("result lookup via %s failed: %v", e.Provider, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
