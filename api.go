// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package dcbridge implements a DOM-shaped RTCDataChannel proxy on top of a
// native WebRTC engine reached through a bridge.
package dcbridge

import (
	"fmt"
	"sync"

	"github.com/pion/dcbridge/pkg/bridge"
	"github.com/pion/dcbridge/pkg/rtcerr"
	"github.com/pion/logging"
)

// API binds DataChannel proxies to one bridge. It guarantees a single live
// proxy per channel tag.
type API struct {
	module        bridge.Module
	emitter       *bridge.Emitter
	loggerFactory logging.LoggerFactory
	log           logging.LeveledLogger

	mu                  sync.Mutex
	dataChannels        map[string]*DataChannel
	onDataChannelHandle *bridge.Subscription
}

// NewAPI creates a new API object. Without WithEmitter a private Emitter is
// created, which the native engine must then be given via Emitter().
func NewAPI(options ...func(*API)) *API {
	a := &API{
		dataChannels: map[string]*DataChannel{},
	}

	for _, o := range options {
		o(a)
	}

	if a.loggerFactory == nil {
		a.loggerFactory = logging.NewDefaultLoggerFactory()
	}

	if a.emitter == nil {
		a.emitter = bridge.NewEmitter(a.loggerFactory)
	}

	a.log = a.loggerFactory.NewLogger("datachannel")

	return a
}

// WithModule sets the engine that receives send and close requests.
func WithModule(m bridge.Module) func(a *API) {
	return func(a *API) {
		a.module = m
	}
}

// WithEmitter sets the notification bus shared with the engine.
func WithEmitter(e *bridge.Emitter) func(a *API) {
	return func(a *API) {
		a.emitter = e
	}
}

// WithLoggerFactory sets the factory the API and its proxies log through.
func WithLoggerFactory(f logging.LoggerFactory) func(a *API) {
	return func(a *API) {
		a.loggerFactory = f
	}
}

// Emitter returns the notification bus the proxies listen on.
func (a *API) Emitter() *bridge.Emitter {
	return a.emitter
}

// NewDataChannel creates the proxy for the channel described by info.
func (a *API) NewDataChannel(info bridge.DataChannelInfo) (*DataChannel, error) {
	if a.module == nil {
		return nil, &rtcerr.InvalidStateError{Err: errNoModule}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.dataChannels[info.ReactTag]; ok {
		return nil, &rtcerr.InvalidStateError{Err: fmt.Errorf("%w: %s", ErrDataChannelExists, info.ReactTag)}
	}

	d, err := newDataChannel(info, a.module, a.emitter, a.log)
	if err != nil {
		return nil, err
	}
	d.onRelease = a.forget
	a.dataChannels[info.ReactTag] = d

	a.log.Debugf("data channel %s (%q) bound to peer connection %d", info.ReactTag, info.Label, info.PeerConnectionID)

	return d, nil
}

// CreateDataChannel asks the engine for a new channel on the peer
// connection and returns its proxy. The engine must implement
// bridge.Creator. The proxy is listening before the engine reports
// anything about the channel.
func (a *API) CreateDataChannel(peerConnectionID int, label string, init *bridge.DataChannelInit) (*DataChannel, error) {
	creator, ok := a.module.(bridge.Creator)
	if !ok {
		return nil, &rtcerr.NotSupportedError{Err: errCreateNotSupported}
	}

	var d *DataChannel
	_, err := creator.CreateDataChannel(peerConnectionID, label, init, func(info bridge.DataChannelInfo) error {
		var newErr error
		d, newErr = a.NewDataChannel(info)

		return newErr
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// OnDataChannel sets an event handler which is invoked when a data channel
// is opened by the remote peer. The proxy is created before f runs.
func (a *API) OnDataChannel(f func(*DataChannel)) {
	a.mu.Lock()
	old := a.onDataChannelHandle
	a.onDataChannelHandle = nil
	a.mu.Unlock()

	if old != nil {
		old.Remove()
	}
	if f == nil {
		return
	}

	handle := a.emitter.AddListener(bridge.EventPeerConnectionDidOpenDataChannel, func(payload interface{}) {
		ev, ok := payload.(bridge.DataChannelOpened)
		if !ok {
			a.log.Warnf("%v: %T on %s", errUnknownPayload, payload, bridge.EventPeerConnectionDidOpenDataChannel)
			return
		}

		info := ev.DataChannel
		if info.PeerConnectionID == 0 {
			info.PeerConnectionID = ev.PeerConnectionID
		}

		d, err := a.NewDataChannel(info)
		if err != nil {
			a.log.Warnf("failed to bind remote data channel %q: %v", info.Label, err)
			return
		}
		f(d)
	})

	a.mu.Lock()
	a.onDataChannelHandle = handle
	a.mu.Unlock()
}

// DataChannel returns the live proxy for tag.
func (a *API) DataChannel(reactTag string) (*DataChannel, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	d, ok := a.dataChannels[reactTag]

	return d, ok
}

// Close releases every live proxy and stops announcing remote channels.
// The native channels are left untouched.
func (a *API) Close() error {
	a.OnDataChannel(nil)

	a.mu.Lock()
	live := make([]*DataChannel, 0, len(a.dataChannels))
	for _, d := range a.dataChannels {
		live = append(live, d)
	}
	a.mu.Unlock()

	for _, d := range live {
		d.Release()
	}

	return nil
}

func (a *API) forget(d *DataChannel) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.dataChannels[d.reactTag] == d {
		delete(a.dataChannels, d.reactTag)
	}
}
