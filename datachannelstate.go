// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dcbridge

import (
	"fmt"
)

// DataChannelState indicates the state of a data channel.
type DataChannelState int

const (
	// DataChannelStateUnknown is the enum's zero-value.
	DataChannelStateUnknown DataChannelState = iota

	// DataChannelStateConnecting indicates that the data channel is being
	// established. This is the initial state of DataChannel, whether created
	// locally or announced by the remote peer.
	DataChannelStateConnecting

	// DataChannelStateOpen indicates that the underlying data transport is
	// established and communication is possible.
	DataChannelStateOpen

	// DataChannelStateClosing indicates that the procedure to close down the
	// underlying data transport has started.
	DataChannelStateClosing

	// DataChannelStateClosed indicates that the underlying data transport
	// has been closed or could not be established.
	DataChannelStateClosed
)

// This is done this way because of a linter.
const (
	unknownStr                    = "unknown"
	dataChannelStateConnectingStr = "connecting"
	dataChannelStateOpenStr       = "open"
	dataChannelStateClosingStr    = "closing"
	dataChannelStateClosedStr     = "closed"
)

func newDataChannelState(raw string) DataChannelState {
	switch raw {
	case dataChannelStateConnectingStr:
		return DataChannelStateConnecting
	case dataChannelStateOpenStr:
		return DataChannelStateOpen
	case dataChannelStateClosingStr:
		return DataChannelStateClosing
	case dataChannelStateClosedStr:
		return DataChannelStateClosed
	default:
		return DataChannelStateUnknown
	}
}

func (t DataChannelState) String() string {
	switch t {
	case DataChannelStateConnecting:
		return dataChannelStateConnectingStr
	case DataChannelStateOpen:
		return dataChannelStateOpenStr
	case DataChannelStateClosing:
		return dataChannelStateClosingStr
	case DataChannelStateClosed:
		return dataChannelStateClosedStr
	default:
		return unknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t DataChannelState) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DataChannelState) UnmarshalText(b []byte) error {
	state := newDataChannelState(string(b))
	if state == DataChannelStateUnknown {
		return fmt.Errorf("%w: %q", errInvalidReadyState, b)
	}
	*t = state

	return nil
}

// eventType returns the lifecycle event dispatched when the channel enters
// the state. Connecting has none.
func (t DataChannelState) eventType() (EventType, bool) {
	switch t {
	case DataChannelStateOpen:
		return EventTypeOpen, true
	case DataChannelStateClosing:
		return EventTypeClosing, true
	case DataChannelStateClosed:
		return EventTypeClose, true
	default:
		return "", false
	}
}
