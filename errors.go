// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dcbridge

import (
	"errors"
)

var (
	// ErrDataTypeNotSupported indicates Send was given something other than
	// a string, a []byte or an ArrayBufferView.
	ErrDataTypeNotSupported = errors.New("data must be either string, []byte, or ArrayBufferView")

	// ErrBinaryTypeNotSupported indicates an attempt to use a binaryType
	// other than arraybuffer.
	ErrBinaryTypeNotSupported = errors.New("only the arraybuffer binaryType is supported")

	// ErrUnsupportedEventType indicates a listener was registered for an
	// event a DataChannel never dispatches.
	ErrUnsupportedEventType = errors.New("unsupported event type")

	// ErrDataChannelExists indicates a live proxy already exists for the
	// channel tag.
	ErrDataChannelExists = errors.New("a data channel with this tag already exists")

	errViewOutOfRange      = errors.New("view range exceeds the underlying buffer")
	errEmptyReactTag       = errors.New("data channel info carries no reactTag")
	errInvalidReadyState   = errors.New("invalid readyState")
	errNoModule            = errors.New("no bridge module configured")
	errCreateNotSupported  = errors.New("bridge module cannot create data channels")
	errNilListener         = errors.New("listener must not be nil")
	errUnknownPayload      = errors.New("unexpected notification payload")
	errUnknownMessageType  = errors.New("unknown message type")
	errNativeChannelFailed = errors.New("native data channel failed")
)
