// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package rtcerr implements the error wrappers a DOM-shaped data channel
// surfaces to its callers and listeners.
package rtcerr

import (
	"fmt"
)

// Named is implemented by every error in this package. Name returns the
// DOMException name the error corresponds to.
type Named interface {
	error
	Name() string
}

func format(name string, err error) string {
	return fmt.Sprintf("%s: %v", name, err)
}

// TypeError indicates a value is not of the expected type.
type TypeError struct {
	Err error
}

func (e *TypeError) Error() string { return format(e.Name(), e.Err) }

// Name returns "TypeError".
func (e *TypeError) Name() string { return "TypeError" }

func (e *TypeError) Unwrap() error { return e.Err }

// RangeError indicates a value is not in the set or range of allowed values.
type RangeError struct {
	Err error
}

func (e *RangeError) Error() string { return format(e.Name(), e.Err) }

// Name returns "RangeError".
func (e *RangeError) Name() string { return "RangeError" }

func (e *RangeError) Unwrap() error { return e.Err }

// InvalidStateError indicates the object is in an invalid state.
type InvalidStateError struct {
	Err error
}

func (e *InvalidStateError) Error() string { return format(e.Name(), e.Err) }

// Name returns "InvalidStateError".
func (e *InvalidStateError) Name() string { return "InvalidStateError" }

func (e *InvalidStateError) Unwrap() error { return e.Err }

// NotSupportedError indicates the operation is not supported.
type NotSupportedError struct {
	Err error
}

func (e *NotSupportedError) Error() string { return format(e.Name(), e.Err) }

// Name returns "NotSupportedError".
func (e *NotSupportedError) Name() string { return "NotSupportedError" }

func (e *NotSupportedError) Unwrap() error { return e.Err }

// OperationError indicates the operation failed for an operation-specific
// reason, such as a failure reported by the native engine.
type OperationError struct {
	Err error
}

func (e *OperationError) Error() string { return format(e.Name(), e.Err) }

// Name returns "OperationError".
func (e *OperationError) Name() string { return "OperationError" }

func (e *OperationError) Unwrap() error { return e.Err }

// SyntaxError indicates a string did not match the expected pattern.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return format(e.Name(), e.Err) }

// Name returns "SyntaxError".
func (e *SyntaxError) Name() string { return "SyntaxError" }

func (e *SyntaxError) Unwrap() error { return e.Err }
