// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package bridge defines the boundary between data channel proxies and the
// native WebRTC engine that owns the real channels. Requests travel through
// Module, notifications travel back over an Emitter.
package bridge

// Names of the notifications the native engine emits.
const (
	EventDataChannelStateChanged            = "dataChannelStateChanged"
	EventDataChannelReceiveMessage          = "dataChannelReceiveMessage"
	EventDataChannelDidChangeBufferedAmount = "dataChannelDidChangeBufferedAmount"
	EventPeerConnectionDidOpenDataChannel   = "peerConnectionDidOpenDataChannel"
)

// Payload encodings. Binary payloads cross the bridge as standard base64.
const (
	EncodingText   = "text"
	EncodingBinary = "binary"
)

// StateError is the state value the native engine reports when a channel
// failed. It is never a ready state.
const StateError = "error"

// Module is the request direction of the bridge. Calls are fire-and-forget:
// the engine reports every outcome, including failures, as notifications.
type Module interface {
	DataChannelSend(peerConnectionID int, reactTag string, data string, encoding string)
	DataChannelClose(peerConnectionID int, reactTag string)
}

// Creator is implemented by engines that can open data channels on request.
// A non-nil attach is called with the new channel's description before the
// engine emits any notification for it; an attach error aborts creation.
type Creator interface {
	CreateDataChannel(
		peerConnectionID int,
		label string,
		init *DataChannelInit,
		attach func(DataChannelInfo) error,
	) (DataChannelInfo, error)
}
