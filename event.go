// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dcbridge

// EventType names an event a DataChannel dispatches.
type EventType string

// Events a DataChannel dispatches to its listeners.
const (
	EventTypeOpen              EventType = "open"
	EventTypeMessage           EventType = "message"
	EventTypeBufferedAmountLow EventType = "bufferedamountlow"
	EventTypeClosing           EventType = "closing"
	EventTypeClose             EventType = "close"
	EventTypeError             EventType = "error"
)

func (t EventType) supported() bool {
	switch t {
	case EventTypeOpen, EventTypeMessage, EventTypeBufferedAmountLow,
		EventTypeClosing, EventTypeClose, EventTypeError:
		return true
	default:
		return false
	}
}

// DataChannelMessage represents a message received from the
// data channel. IsString will be set to true when the incoming
// message is of the string type. Otherwise the message is of
// a binary type.
type DataChannelMessage struct {
	IsString bool
	Data     []byte
}

// Event is delivered to listeners. Target is the dispatching channel.
// Message is set for message events, Channel for bufferedamountlow events
// and Error for error events.
type Event struct {
	Type    EventType
	Target  *DataChannel
	Channel *DataChannel
	Message *DataChannelMessage
	Error   error
}
