// Package lua provides Golua integration for go-colorspace.
// This file defines common error types used throughout the package.
package lua

import "errors"

var (
	// ErrNilRuntime is returned when a nil runtime is passed to a function that requires one.
	ErrNilRuntime = errors.New("runtime cannot be nil")

	// ErrCompile wraps Lua syntax errors.
	ErrCompile = errors.New("failed to compile Lua chunk")

	// ErrExecution wraps runtime errors, including exceeded resource limits.
	ErrExecution = errors.New("Lua execution error")

	// ErrLimitExceeded is returned when a chunk exceeds its CPU or memory limit.
	ErrLimitExceeded = errors.New("Lua resource limit exceeded")

	// ErrNoFunction is returned by CallFunction for an undefined global.
	ErrNoFunction = errors.New("function not found")

	// ErrNotTable is returned when a Lua value expected to be a table is not one.
	ErrNotTable = errors.New("expected a table")
)
