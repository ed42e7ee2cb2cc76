package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrNoBehaviors indicates the file defines no behaviors.
	ErrNoBehaviors = errors.New("no behaviors configured")

	// ErrDuplicateName indicates two behaviors share a name.
	ErrDuplicateName = errors.New("duplicate behavior name")

	// ErrDuplicateTrigger indicates two bindings share a trigger key.
	ErrDuplicateTrigger = errors.New("duplicate trigger")

	// ErrUnknownBehavior indicates a binding refers to an undefined behavior.
	ErrUnknownBehavior = errors.New("unknown behavior")

	// ErrInvalidValue indicates a field holds a value out of range.
	ErrInvalidValue = errors.New("invalid value")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FieldError reports an invalid field in a behavior or binding entry.
type FieldError struct {
	// Section is "behavior", "binding", "host" or "log".
	Section string
	// Index is the entry position within its section, or -1.
	Index int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s[%d].%s: %v", e.Section, e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("%s.%s: %v", e.Section, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
