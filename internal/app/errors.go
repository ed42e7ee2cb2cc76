package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates the application is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotRunning indicates the application is not running.
	ErrNotRunning = errors.New("application not running")

	// ErrUnknownBehavior indicates a lock behavior name that is not configured.
	ErrUnknownBehavior = errors.New("unknown lock behavior")

	// ErrExpectation indicates a replay expectation did not hold.
	ErrExpectation = errors.New("expectation failed")

	// ErrNotHeld indicates a release for a key that is not down.
	ErrNotHeld = errors.New("key not held")

	// ErrNoVirtualHost indicates an operation that needs the simulated host.
	ErrNoVirtualHost = errors.New("no virtual host")

	// ErrUntypable indicates a character with no key on the simulated layout.
	ErrUntypable = errors.New("character cannot be typed")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "press", "release", "drain")
	Target string // Target of the operation (e.g., key or behavior name)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
