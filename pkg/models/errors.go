package models

import "fmt"

// NotFoundError indicates an input folder does not exist or is not a directory
type NotFoundError struct {
	Path   string
	Reason string
}

func (e *NotFoundError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("folder not found: %s", e.Path)
	}
	return fmt.Sprintf("folder not found: %s (%s)", e.Path, e.Reason)
}

// IOError indicates an indexed file could not be opened or read while digesting
type IOError struct {
	Path string
	Op   string // "open" or "read"
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
