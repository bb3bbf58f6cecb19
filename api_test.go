// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dcbridge

import (
	"errors"
	"testing"

	"github.com/pion/dcbridge/pkg/bridge"
	"github.com/pion/dcbridge/pkg/rtcerr"
	"github.com/pion/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// creatingModule is a recordingModule that can also open channels. With
// emitter set it reports every new channel open right after attaching it.
type creatingModule struct {
	recordingModule
	nextTag int
	err     error
	emitter *bridge.Emitter
}

func (m *creatingModule) CreateDataChannel(
	peerConnectionID int,
	label string,
	init *bridge.DataChannelInit,
	attach func(bridge.DataChannelInfo) error,
) (bridge.DataChannelInfo, error) {
	if m.err != nil {
		return bridge.DataChannelInfo{}, m.err
	}
	m.nextTag++

	info := bridge.DataChannelInfo{
		PeerConnectionID: peerConnectionID,
		ReactTag:         "created-" + string(rune('0'+m.nextTag)),
		Label:            label,
		ID:               bridge.UnnegotiatedID,
		Ordered:          true,
		ReadyState:       "connecting",
	}
	if init != nil && init.Protocol != nil {
		info.Protocol = *init.Protocol
	}

	if attach != nil {
		if err := attach(info); err != nil {
			return bridge.DataChannelInfo{}, err
		}
	}
	if m.emitter != nil {
		m.emitter.Emit(bridge.EventDataChannelStateChanged, bridge.StateChange{
			PeerConnectionID: peerConnectionID,
			ReactTag:         info.ReactTag,
			State:            "open",
		})
	}

	return info, nil
}

func TestNewAPI(t *testing.T) {
	emitter := bridge.NewEmitter(nil)
	api := NewAPI(
		WithModule(&recordingModule{}),
		WithEmitter(emitter),
		WithLoggerFactory(logging.NewDefaultLoggerFactory()),
	)

	assert.Same(t, emitter, api.Emitter())
	assert.NotNil(t, api.log)

	assert.NotNil(t, NewAPI().Emitter())
}

func TestAPI_OneProxyPerTag(t *testing.T) {
	api := NewAPI(WithModule(&recordingModule{}))

	first, err := api.NewDataChannel(testInfo(testTag))
	require.NoError(t, err)

	_, err = api.NewDataChannel(testInfo(testTag))
	assert.ErrorIs(t, err, ErrDataChannelExists)
	var stateErr *rtcerr.InvalidStateError
	assert.ErrorAs(t, err, &stateErr)

	found, ok := api.DataChannel(testTag)
	assert.True(t, ok)
	assert.Same(t, first, found)

	api.Emitter().Emit(bridge.EventDataChannelStateChanged, bridge.StateChange{ReactTag: testTag, State: "closed"})

	_, ok = api.DataChannel(testTag)
	assert.False(t, ok)

	second, err := api.NewDataChannel(testInfo(testTag))
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	// The released proxy no longer sees notifications for the reused tag.
	api.Emitter().Emit(bridge.EventDataChannelStateChanged, bridge.StateChange{ReactTag: testTag, State: "open"})
	assert.Equal(t, DataChannelStateClosed, first.ReadyState())
	assert.Equal(t, DataChannelStateOpen, second.ReadyState())
}

func TestAPI_CreateDataChannel(t *testing.T) {
	module := &creatingModule{}
	api := NewAPI(WithModule(module))

	protocol := "json"
	d, err := api.CreateDataChannel(2, "control", &bridge.DataChannelInit{Protocol: &protocol})
	require.NoError(t, err)

	assert.Equal(t, 2, d.PeerConnectionID())
	assert.Equal(t, "control", d.Label())
	assert.Equal(t, "json", d.Protocol())
	assert.Equal(t, DataChannelStateConnecting, d.ReadyState())

	found, ok := api.DataChannel(d.ReactTag())
	assert.True(t, ok)
	assert.Same(t, d, found)

	module.err = errors.New("no peer connection")
	_, err = api.CreateDataChannel(9, "control", nil)
	assert.ErrorIs(t, err, module.err)
}

func TestAPI_CreateDataChannelSeesEarlyNotifications(t *testing.T) {
	emitter := bridge.NewEmitter(nil)
	api := NewAPI(WithModule(&creatingModule{emitter: emitter}), WithEmitter(emitter))

	d, err := api.CreateDataChannel(1, "fast", nil)
	require.NoError(t, err)
	assert.Equal(t, DataChannelStateOpen, d.ReadyState())
}

func TestAPI_CreateDataChannelAttachFailure(t *testing.T) {
	module := &creatingModule{}
	api := NewAPI(WithModule(module))

	first, err := api.CreateDataChannel(1, "a", nil)
	require.NoError(t, err)

	// The next tag collides with a live proxy, so attaching fails.
	module.nextTag--
	_, err = api.CreateDataChannel(1, "b", nil)
	assert.ErrorIs(t, err, ErrDataChannelExists)

	found, ok := api.DataChannel(first.ReactTag())
	assert.True(t, ok)
	assert.Same(t, first, found)
}

func TestAPI_CreateDataChannelNotSupported(t *testing.T) {
	api := NewAPI(WithModule(&recordingModule{}))

	_, err := api.CreateDataChannel(1, "x", nil)
	var notSupported *rtcerr.NotSupportedError
	assert.ErrorAs(t, err, &notSupported)
}

func TestAPI_OnDataChannel(t *testing.T) {
	api := NewAPI(WithModule(&recordingModule{}))

	var announced []*DataChannel
	api.OnDataChannel(func(d *DataChannel) {
		announced = append(announced, d)
	})

	api.Emitter().Emit(bridge.EventPeerConnectionDidOpenDataChannel, bridge.DataChannelOpened{
		PeerConnectionID: 4,
		DataChannel: bridge.DataChannelInfo{
			ReactTag:   "remote-1",
			Label:      "remote",
			ID:         1,
			Ordered:    true,
			ReadyState: "open",
		},
	})

	require.Len(t, announced, 1)
	d := announced[0]
	assert.Equal(t, 4, d.PeerConnectionID())
	assert.Equal(t, "remote", d.Label())
	assert.Equal(t, DataChannelStateOpen, d.ReadyState())

	// Duplicate announcements and bad payloads are dropped.
	api.Emitter().Emit(bridge.EventPeerConnectionDidOpenDataChannel, bridge.DataChannelOpened{
		PeerConnectionID: 4,
		DataChannel:      bridge.DataChannelInfo{ReactTag: "remote-1"},
	})
	api.Emitter().Emit(bridge.EventPeerConnectionDidOpenDataChannel, "remote-2")
	assert.Len(t, announced, 1)
}

func TestAPI_OnDataChannelReplace(t *testing.T) {
	api := NewAPI(WithModule(&recordingModule{}))

	firstCalls, secondCalls := 0, 0
	api.OnDataChannel(func(*DataChannel) { firstCalls++ })
	api.OnDataChannel(func(*DataChannel) { secondCalls++ })
	assert.Equal(t, 1, api.Emitter().ListenerCount(bridge.EventPeerConnectionDidOpenDataChannel))

	api.Emitter().Emit(bridge.EventPeerConnectionDidOpenDataChannel, bridge.DataChannelOpened{
		PeerConnectionID: 1,
		DataChannel:      bridge.DataChannelInfo{ReactTag: "r"},
	})
	assert.Equal(t, 0, firstCalls)
	assert.Equal(t, 1, secondCalls)

	api.OnDataChannel(nil)
	assert.Equal(t, 0, api.Emitter().ListenerCount(bridge.EventPeerConnectionDidOpenDataChannel))
}

func TestAPI_Close(t *testing.T) {
	api := NewAPI(WithModule(&recordingModule{}))
	api.OnDataChannel(func(*DataChannel) {})

	for _, tag := range []string{"a", "b", "c"} {
		_, err := api.NewDataChannel(testInfo(tag))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, api.Emitter().ListenerCount(bridge.EventDataChannelReceiveMessage))

	assert.NoError(t, api.Close())

	assert.Equal(t, 0, api.Emitter().ListenerCount(bridge.EventDataChannelReceiveMessage))
	assert.Equal(t, 0, api.Emitter().ListenerCount(bridge.EventPeerConnectionDidOpenDataChannel))
	_, ok := api.DataChannel("a")
	assert.False(t, ok)
}
