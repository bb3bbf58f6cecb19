// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package rtcerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsWrap(t *testing.T) {
	cause := errors.New("cause")

	testCases := []struct {
		err          Named
		expectedName string
	}{
		{&TypeError{Err: cause}, "TypeError"},
		{&RangeError{Err: cause}, "RangeError"},
		{&InvalidStateError{Err: cause}, "InvalidStateError"},
		{&NotSupportedError{Err: cause}, "NotSupportedError"},
		{&OperationError{Err: cause}, "OperationError"},
		{&SyntaxError{Err: cause}, "SyntaxError"},
	}

	for i, testCase := range testCases {
		assert.Equal(t, testCase.expectedName, testCase.err.Name(), "testCase: %d", i)
		assert.Equal(t, testCase.expectedName+": cause", testCase.err.Error(), "testCase: %d", i)
		assert.ErrorIs(t, testCase.err, cause, "testCase: %d", i)
	}
}

func TestErrorsAs(t *testing.T) {
	var err error = &TypeError{Err: errors.New("bad")}

	var typeErr *TypeError
	assert.True(t, errors.As(err, &typeErr))

	var rangeErr *RangeError
	assert.False(t, errors.As(err, &rangeErr))
}
