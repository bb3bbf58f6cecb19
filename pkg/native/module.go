// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package native implements the engine side of the bridge with pion/webrtc.
// It owns the peer connections and data channels, addresses channels by tag
// and reports everything that happens to them on a bridge.Emitter.
package native

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pion/dcbridge/internal/util"
	"github.com/pion/dcbridge/pkg/bridge"
	"github.com/pion/dcbridge/pkg/rtcerr"
	"github.com/pion/logging"
	"github.com/pion/stun/v3"
	"github.com/pion/webrtc/v4"
)

type peerConnection struct {
	id           int
	pc           *webrtc.PeerConnection
	dataChannels map[string]*webrtc.DataChannel
}

// Module is a native engine backed by pion/webrtc. It implements
// bridge.Module and bridge.Creator.
type Module struct {
	api                        *webrtc.API
	settingEngine              webrtc.SettingEngine
	emitter                    *bridge.Emitter
	ops                        *operations
	bufferedAmountLowThreshold uint64

	loggerFactory logging.LoggerFactory
	log           logging.LeveledLogger

	mu                   sync.Mutex
	lastPeerConnectionID int
	peerConnections      map[int]*peerConnection
	isClosed             bool
}

// NewModule creates a Module that reports on emitter.
func NewModule(emitter *bridge.Emitter, options ...func(*Module)) *Module {
	m := &Module{
		emitter:         emitter,
		ops:             newOperations(),
		peerConnections: map[int]*peerConnection{},
	}

	for _, o := range options {
		o(m)
	}

	if m.loggerFactory == nil {
		m.loggerFactory = logging.NewDefaultLoggerFactory()
	}
	if m.settingEngine.LoggerFactory == nil {
		m.settingEngine.LoggerFactory = m.loggerFactory
	}

	m.log = m.loggerFactory.NewLogger("native")
	m.api = webrtc.NewAPI(webrtc.WithSettingEngine(m.settingEngine))

	return m
}

// WithSettingEngine allows providing a SettingEngine to the pion API.
// Settings should not be changed after passing the engine to a Module.
func WithSettingEngine(s webrtc.SettingEngine) func(m *Module) {
	return func(m *Module) {
		m.settingEngine = s
	}
}

// WithLoggerFactory sets the factory used by the Module and, unless the
// SettingEngine names its own, by pion.
func WithLoggerFactory(f logging.LoggerFactory) func(m *Module) {
	return func(m *Module) {
		m.loggerFactory = f
	}
}

// WithBufferedAmountLowThreshold sets the pion threshold below which a
// buffered amount notification is emitted as the queue drains.
func WithBufferedAmountLowThreshold(th uint64) func(m *Module) {
	return func(m *Module) {
		m.bufferedAmountLowThreshold = th
	}
}

// NewPeerConnection creates a peer connection using the given ICE server
// URLs and returns its id.
func (m *Module) NewPeerConnection(iceServers ...string) (int, error) {
	for _, raw := range iceServers {
		if _, err := stun.ParseURI(raw); err != nil {
			return 0, &rtcerr.SyntaxError{Err: fmt.Errorf("%w %q: %v", ErrInvalidICEServer, raw, err)} //nolint:errorlint
		}
	}

	config := webrtc.Configuration{}
	if len(iceServers) > 0 {
		config.ICEServers = []webrtc.ICEServer{{URLs: iceServers}}
	}

	pc, err := m.api.NewPeerConnection(config)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	if m.isClosed {
		m.mu.Unlock()

		return 0, util.FlattenErrs([]error{&rtcerr.InvalidStateError{Err: ErrModuleClosed}, pc.Close()})
	}
	m.lastPeerConnectionID++
	id := m.lastPeerConnectionID
	m.peerConnections[id] = &peerConnection{
		id:           id,
		pc:           pc,
		dataChannels: map[string]*webrtc.DataChannel{},
	}
	m.mu.Unlock()

	pc.OnDataChannel(func(dc *webrtc.DataChannel) {
		m.handleRemoteDataChannel(id, dc)
	})
	m.log.Debugf("created peer connection %d", id)

	return id, nil
}

// PeerConnection returns the pion peer connection for id, for signaling.
func (m *Module) PeerConnection(id int) (*webrtc.PeerConnection, bool) {
	p := m.peerConnection(id)
	if p == nil {
		return nil, false
	}

	return p.pc, true
}

func (m *Module) peerConnection(id int) *peerConnection {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.peerConnections[id]
}

// CreateDataChannel opens a data channel on the peer connection. attach,
// when set, runs before any notification for the channel can be emitted.
func (m *Module) CreateDataChannel(
	peerConnectionID int,
	label string,
	init *bridge.DataChannelInit,
	attach func(bridge.DataChannelInfo) error,
) (bridge.DataChannelInfo, error) {
	p := m.peerConnection(peerConnectionID)
	if p == nil {
		return bridge.DataChannelInfo{}, &rtcerr.InvalidStateError{
			Err: fmt.Errorf("%w: %d", errUnknownPeerConnection, peerConnectionID),
		}
	}

	dc, err := p.pc.CreateDataChannel(label, toDataChannelInit(init))
	if err != nil {
		return bridge.DataChannelInfo{}, err
	}

	tag := uuid.NewString()
	info := describe(peerConnectionID, tag, dc)
	if attach != nil {
		if err = attach(info); err != nil {
			return bridge.DataChannelInfo{}, util.FlattenErrs([]error{err, dc.Close()})
		}
	}
	m.bind(p, tag, dc, info)

	return info, nil
}

// DataChannelSend implements bridge.Module.
func (m *Module) DataChannelSend(peerConnectionID int, reactTag string, data string, encoding string) {
	_, dc := m.dataChannel(peerConnectionID, reactTag)
	if dc == nil {
		m.log.Debugf("DataChannelSend: no data channel %s on peer connection %d", reactTag, peerConnectionID)
		return
	}

	var err error
	switch encoding {
	case bridge.EncodingText:
		err = dc.SendText(data)
	case bridge.EncodingBinary:
		var payload []byte
		if payload, err = base64.StdEncoding.DecodeString(data); err == nil {
			err = dc.Send(payload)
		}
	default:
		m.log.Errorf("DataChannelSend: unsupported data type %q", encoding)
		return
	}

	if err != nil {
		m.log.Warnf("DataChannelSend on %s failed: %v", reactTag, err)
		m.emitState(peerConnectionID, reactTag, bridge.StateError, err.Error())

		return
	}

	m.emitBufferedAmount(peerConnectionID, reactTag, dc.BufferedAmount())
}

// DataChannelClose implements bridge.Module. pion never reports the close
// of a channel that did not open, so such a channel is reported closed here.
func (m *Module) DataChannelClose(peerConnectionID int, reactTag string) {
	p, dc := m.dataChannel(peerConnectionID, reactTag)
	if dc == nil {
		m.log.Debugf("DataChannelClose: no data channel %s on peer connection %d", reactTag, peerConnectionID)
		return
	}

	neverOpened := dc.ReadyState() == webrtc.DataChannelStateConnecting

	m.emitState(peerConnectionID, reactTag, webrtc.DataChannelStateClosing.String(), "")
	if err := dc.Close(); err != nil {
		m.log.Warnf("DataChannelClose on %s failed: %v", reactTag, err)
		m.emitState(peerConnectionID, reactTag, bridge.StateError, err.Error())

		return
	}

	if neverOpened {
		m.reportClosed(p, reactTag)
	}
}

// ClosePeerConnection closes the peer connection and reports every data
// channel still bound to it as closed.
func (m *Module) ClosePeerConnection(id int) error {
	m.mu.Lock()
	p, ok := m.peerConnections[id]
	delete(m.peerConnections, id)
	m.mu.Unlock()

	if !ok {
		return &rtcerr.InvalidStateError{Err: fmt.Errorf("%w: %d", errUnknownPeerConnection, id)}
	}

	err := p.pc.Close()

	m.mu.Lock()
	tags := make([]string, 0, len(p.dataChannels))
	for tag := range p.dataChannels {
		tags = append(tags, tag)
	}
	m.mu.Unlock()

	for _, tag := range tags {
		m.reportClosed(p, tag)
	}
	m.log.Debugf("closed peer connection %d", id)

	return err
}

// Flush blocks until every notification emitted so far has been delivered.
func (m *Module) Flush() {
	m.ops.Done()
}

// Close closes every peer connection and waits for the remaining
// notifications to be delivered.
func (m *Module) Close() error {
	m.mu.Lock()
	if m.isClosed {
		m.mu.Unlock()
		return nil
	}
	m.isClosed = true
	ids := make([]int, 0, len(m.peerConnections))
	for id := range m.peerConnections {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	var errs []error
	for _, id := range ids {
		errs = append(errs, m.ClosePeerConnection(id))
	}
	m.ops.GracefulClose()

	return util.FlattenErrs(errs)
}

func (m *Module) dataChannel(peerConnectionID int, reactTag string) (*peerConnection, *webrtc.DataChannel) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.peerConnections[peerConnectionID]
	if !ok {
		return nil, nil
	}

	return p, p.dataChannels[reactTag]
}

// reportClosed forgets the tag and emits closed, once per tag whichever of
// pion, DataChannelClose or ClosePeerConnection gets there first.
func (m *Module) reportClosed(p *peerConnection, reactTag string) {
	m.mu.Lock()
	_, bound := p.dataChannels[reactTag]
	delete(p.dataChannels, reactTag)
	m.mu.Unlock()

	if bound {
		m.emitState(p.id, reactTag, webrtc.DataChannelStateClosed.String(), "")
	}
}

// handleRemoteDataChannel announces the channel before binding it, so the
// announcement precedes every state notification for the tag.
func (m *Module) handleRemoteDataChannel(peerConnectionID int, dc *webrtc.DataChannel) {
	tag := uuid.NewString()
	info := describe(peerConnectionID, tag, dc)

	p := m.peerConnection(peerConnectionID)
	if p == nil {
		m.log.Warnf("peer connection %d is gone, dropping remote data channel %q", peerConnectionID, dc.Label())
		return
	}

	m.emit(bridge.EventPeerConnectionDidOpenDataChannel, bridge.DataChannelOpened{
		PeerConnectionID: peerConnectionID,
		DataChannel:      info,
	})
	m.bind(p, tag, dc, info)
}

// bind registers the observers that turn pion callbacks into notifications.
func (m *Module) bind(p *peerConnection, reactTag string, dc *webrtc.DataChannel, info bridge.DataChannelInfo) {
	peerConnectionID := p.id

	m.mu.Lock()
	p.dataChannels[reactTag] = dc
	m.mu.Unlock()

	dc.SetBufferedAmountLowThreshold(m.bufferedAmountLowThreshold)

	dc.OnOpen(func() {
		m.emitState(peerConnectionID, reactTag, webrtc.DataChannelStateOpen.String(), "")
	})
	dc.OnClose(func() {
		m.reportClosed(p, reactTag)
	})
	dc.OnError(func(err error) {
		m.emitState(peerConnectionID, reactTag, bridge.StateError, err.Error())
	})
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		m.emitMessage(peerConnectionID, reactTag, msg)
	})
	dc.OnBufferedAmountLow(func() {
		m.emitBufferedAmount(peerConnectionID, reactTag, dc.BufferedAmount())
	})

	m.log.Debugf("bound data channel %q (%s) on peer connection %d as %s",
		info.Label, info.ChannelType(), peerConnectionID, reactTag)
}

func (m *Module) emit(event string, payload interface{}) {
	m.ops.Enqueue(func() {
		m.emitter.Emit(event, payload)
	})
}

func (m *Module) emitState(peerConnectionID int, reactTag, state, errMessage string) {
	m.emit(bridge.EventDataChannelStateChanged, bridge.StateChange{
		PeerConnectionID: peerConnectionID,
		ReactTag:         reactTag,
		State:            state,
		Error:            errMessage,
	})
}

func (m *Module) emitMessage(peerConnectionID int, reactTag string, msg webrtc.DataChannelMessage) {
	ev := bridge.Message{
		PeerConnectionID: peerConnectionID,
		ReactTag:         reactTag,
	}
	if msg.IsString {
		ev.Type, ev.Data = bridge.EncodingText, string(msg.Data)
	} else {
		ev.Type, ev.Data = bridge.EncodingBinary, base64.StdEncoding.EncodeToString(msg.Data)
	}

	m.emit(bridge.EventDataChannelReceiveMessage, ev)
}

func (m *Module) emitBufferedAmount(peerConnectionID int, reactTag string, amount uint64) {
	m.emit(bridge.EventDataChannelDidChangeBufferedAmount, bridge.BufferedAmountChange{
		PeerConnectionID: peerConnectionID,
		ReactTag:         reactTag,
		BufferedAmount:   amount,
	})
}
