// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package bridge

import (
	"github.com/pion/datachannel"
)

// UnnegotiatedID is the id value carried for channels whose stream
// identifier has not been negotiated yet.
const UnnegotiatedID = -1

// DataChannelInfo describes a native data channel. It is the payload the
// engine hands over when a channel is created locally or opened remotely.
type DataChannelInfo struct {
	PeerConnectionID  int     `json:"peerConnectionId"`
	ReactTag          string  `json:"reactTag"`
	Label             string  `json:"label"`
	ID                int     `json:"id"`
	Ordered           bool    `json:"ordered"`
	MaxPacketLifeTime *uint16 `json:"maxPacketLifeTime"`
	MaxRetransmits    *uint16 `json:"maxRetransmits"`
	Protocol          string  `json:"protocol"`
	Negotiated        bool    `json:"negotiated"`
	ReadyState        string  `json:"readyState"`
}

// ChannelType classifies the reliability parameters the way the data
// channel establishment protocol does. MaxRetransmits wins when both
// limits are set.
func (i DataChannelInfo) ChannelType() datachannel.ChannelType {
	var channelType datachannel.ChannelType
	switch {
	case i.MaxRetransmits != nil:
		channelType = datachannel.ChannelTypePartialReliableRexmit
	case i.MaxPacketLifeTime != nil:
		channelType = datachannel.ChannelTypePartialReliableTimed
	default:
		channelType = datachannel.ChannelTypeReliable
	}

	if !i.Ordered {
		channelType |= 0x80
	}

	return channelType
}

// DataChannelInit carries the options for creating a data channel. Nil
// fields take the engine defaults.
type DataChannelInit struct {
	Ordered           *bool   `json:"ordered,omitempty"`
	MaxPacketLifeTime *uint16 `json:"maxPacketLifeTime,omitempty"`
	MaxRetransmits    *uint16 `json:"maxRetransmits,omitempty"`
	Protocol          *string `json:"protocol,omitempty"`
	Negotiated        *bool   `json:"negotiated,omitempty"`
	ID                *uint16 `json:"id,omitempty"`
}
