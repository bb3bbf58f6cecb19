// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package bridge

// StateChange is emitted as EventDataChannelStateChanged. State is a ready
// state name or StateError, in which case Error holds the engine's message.
type StateChange struct {
	PeerConnectionID int    `json:"peerConnectionId"`
	ReactTag         string `json:"reactTag"`
	State            string `json:"state"`
	Error            string `json:"error,omitempty"`
}

// Message is emitted as EventDataChannelReceiveMessage. Type is
// EncodingText or EncodingBinary; binary Data is base64 text.
type Message struct {
	PeerConnectionID int    `json:"peerConnectionId"`
	ReactTag         string `json:"reactTag"`
	Type             string `json:"type"`
	Data             string `json:"data"`
}

// BufferedAmountChange is emitted as EventDataChannelDidChangeBufferedAmount.
type BufferedAmountChange struct {
	PeerConnectionID int    `json:"peerConnectionId"`
	ReactTag         string `json:"reactTag"`
	BufferedAmount   uint64 `json:"bufferedAmount"`
}

// DataChannelOpened is emitted as EventPeerConnectionDidOpenDataChannel when
// the remote peer opens a channel.
type DataChannelOpened struct {
	PeerConnectionID int             `json:"id"`
	DataChannel      DataChannelInfo `json:"dataChannel"`
}
