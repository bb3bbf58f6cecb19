// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package util provides auxiliary functions internally used in dcbridge packages
package util

import (
	"strings"
)

// FlattenErrs flattens multiple errors into one. Nil entries are skipped and
// nested results of FlattenErrs are inlined. It returns nil when no error
// remains.
func FlattenErrs(errs []error) error {
	flat := multiError{}
	for _, err := range errs {
		switch e := err.(type) { //nolint:errorlint
		case nil:
		case multiError:
			flat = append(flat, e...)
		default:
			flat = append(flat, e)
		}
	}

	if len(flat) == 0 {
		return nil
	}

	return flat
}

type multiError []error

func (me multiError) Error() string {
	parts := make([]string, 0, len(me))
	for _, err := range me {
		parts = append(parts, err.Error())
	}

	return strings.Join(parts, "\n")
}

// Unwrap exposes the flattened errors to errors.Is and errors.As.
func (me multiError) Unwrap() []error {
	return me
}
