// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package native

import (
	"github.com/pion/dcbridge/pkg/bridge"
	"github.com/pion/webrtc/v4"
)

func toDataChannelInit(init *bridge.DataChannelInit) *webrtc.DataChannelInit {
	if init == nil {
		return nil
	}

	return &webrtc.DataChannelInit{
		Ordered:           init.Ordered,
		MaxPacketLifeTime: init.MaxPacketLifeTime,
		MaxRetransmits:    init.MaxRetransmits,
		Protocol:          init.Protocol,
		Negotiated:        init.Negotiated,
		ID:                init.ID,
	}
}

func describe(peerConnectionID int, reactTag string, dc *webrtc.DataChannel) bridge.DataChannelInfo {
	id := bridge.UnnegotiatedID
	if streamID := dc.ID(); streamID != nil {
		id = int(*streamID)
	}

	return bridge.DataChannelInfo{
		PeerConnectionID:  peerConnectionID,
		ReactTag:          reactTag,
		Label:             dc.Label(),
		ID:                id,
		Ordered:           dc.Ordered(),
		MaxPacketLifeTime: dc.MaxPacketLifeTime(),
		MaxRetransmits:    dc.MaxRetransmits(),
		Protocol:          dc.Protocol(),
		Negotiated:        dc.Negotiated(),
		ReadyState:        dc.ReadyState().String(),
	}
}
