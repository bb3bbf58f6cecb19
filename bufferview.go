// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dcbridge

import (
	"reflect"
)

// ArrayBufferView is a typed window onto a byte buffer. ByteOffset and
// ByteLength are in bytes whatever the element type of the view.
type ArrayBufferView interface {
	Buffer() []byte
	ByteOffset() int
	ByteLength() int
}

// Uint8Array is a byte-sized ArrayBufferView.
type Uint8Array struct {
	buffer     []byte
	byteOffset int
	length     int
}

// NewUint8Array creates a view of length bytes starting at byteOffset.
func NewUint8Array(buffer []byte, byteOffset, length int) *Uint8Array {
	return &Uint8Array{buffer: buffer, byteOffset: byteOffset, length: length}
}

// Buffer returns the whole underlying buffer.
func (a *Uint8Array) Buffer() []byte {
	if a == nil {
		return nil
	}

	return a.buffer
}

// ByteOffset returns the offset of the view into its buffer.
func (a *Uint8Array) ByteOffset() int {
	if a == nil {
		return 0
	}

	return a.byteOffset
}

// ByteLength returns the length of the view in bytes.
func (a *Uint8Array) ByteLength() int {
	if a == nil {
		return 0
	}

	return a.length
}

// viewBytes narrows a view to the exact range it designates.
func viewBytes(view ArrayBufferView) ([]byte, bool) {
	buffer := view.Buffer()
	offset, length := view.ByteOffset(), view.ByteLength()
	if offset < 0 || length < 0 || offset > len(buffer) || length > len(buffer)-offset {
		return nil, false
	}

	return buffer[offset : offset+length : offset+length], true
}

// isNilView reports whether view is a typed nil, such as a nil *Uint8Array.
func isNilView(view ArrayBufferView) bool {
	rv := reflect.ValueOf(view)
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
