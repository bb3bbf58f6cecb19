// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dcbridge

import (
	"encoding/base64"
	"fmt"
	"math"
	"sync"

	"github.com/pion/datachannel"
	"github.com/pion/dcbridge/pkg/bridge"
	"github.com/pion/dcbridge/pkg/rtcerr"
	"github.com/pion/logging"
)

// DataChannel represents a WebRTC DataChannel
// The DataChannel interface represents a network channel
// which can be used for bidirectional peer-to-peer transfers of arbitrary data.
//
// A DataChannel mirrors a channel owned by the native engine behind a
// bridge.Module. Requests are forwarded by (peer connection id, tag) and
// state only changes when the engine says so.
type DataChannel struct {
	mu sync.RWMutex

	peerConnectionID  int
	reactTag          string
	label             string
	id                *uint16
	ordered           bool
	maxPacketLifeTime *uint16
	maxRetransmits    *uint16
	protocol          string
	negotiated        bool
	channelType       datachannel.ChannelType

	readyState                 DataChannelState
	bufferedAmount             uint64
	bufferedAmountLowThreshold uint64
	binaryType                 BinaryType

	handlers map[EventType]ListenerID
	target   *eventTarget

	module        bridge.Module
	subscriptions []*bridge.Subscription
	releaseOnce   sync.Once
	onRelease     func(*DataChannel)

	log logging.LeveledLogger
}

func newDataChannel(
	info bridge.DataChannelInfo,
	module bridge.Module,
	emitter *bridge.Emitter,
	log logging.LeveledLogger,
) (*DataChannel, error) {
	if info.ReactTag == "" {
		return nil, &rtcerr.TypeError{Err: errEmptyReactTag}
	}

	readyState := DataChannelStateConnecting
	if info.ReadyState != "" {
		if err := readyState.UnmarshalText([]byte(info.ReadyState)); err != nil {
			return nil, &rtcerr.SyntaxError{Err: err}
		}
	}

	d := &DataChannel{
		peerConnectionID:  info.PeerConnectionID,
		reactTag:          info.ReactTag,
		label:             info.Label,
		id:                streamID(info.ID),
		ordered:           info.Ordered,
		maxPacketLifeTime: info.MaxPacketLifeTime,
		maxRetransmits:    info.MaxRetransmits,
		protocol:          info.Protocol,
		negotiated:        info.Negotiated,
		channelType:       info.ChannelType(),
		readyState:        readyState,
		binaryType:        BinaryTypeArrayBuffer,
		handlers:          map[EventType]ListenerID{},
		target:            newEventTarget(),
		module:            module,
		log:               log,
	}

	d.subscriptions = []*bridge.Subscription{
		emitter.AddListener(bridge.EventDataChannelStateChanged, d.handleStateChange),
		emitter.AddListener(bridge.EventDataChannelReceiveMessage, d.handleMessage),
		emitter.AddListener(bridge.EventDataChannelDidChangeBufferedAmount, d.handleBufferedAmountChange),
	}

	return d, nil
}

// streamID maps the bridge id to a stream identifier, nil until negotiated.
func streamID(id int) *uint16 {
	if id < 0 || id > math.MaxUint16 {
		return nil
	}
	v := uint16(id)

	return &v
}

// PeerConnectionID returns the id of the owning peer connection.
func (d *DataChannel) PeerConnectionID() int {
	return d.peerConnectionID
}

// ReactTag returns the tag the native engine uses to address this channel.
func (d *DataChannel) ReactTag() string {
	return d.reactTag
}

// Label represents a label that can be used to distinguish this
// DataChannel object from other DataChannel objects. Scripts are
// allowed to create multiple DataChannel objects with the same label.
func (d *DataChannel) Label() string {
	return d.label
}

// ID represents the ID for this DataChannel. The value is nil until the
// stream identifier has been negotiated.
func (d *DataChannel) ID() *uint16 {
	return d.id
}

// Ordered returns true if the DataChannel is ordered, and false if
// out-of-order delivery is allowed.
func (d *DataChannel) Ordered() bool {
	return d.ordered
}

// MaxPacketLifeTime represents the length of the time window (msec) during
// which transmissions and retransmissions may occur in unreliable mode.
func (d *DataChannel) MaxPacketLifeTime() *uint16 {
	return d.maxPacketLifeTime
}

// MaxRetransmits represents the maximum number of retransmissions that are
// attempted in unreliable mode.
func (d *DataChannel) MaxRetransmits() *uint16 {
	return d.maxRetransmits
}

// Protocol represents the name of the sub-protocol used with this
// DataChannel.
func (d *DataChannel) Protocol() string {
	return d.protocol
}

// Negotiated represents whether this DataChannel was negotiated by the
// application (true), or not (false).
func (d *DataChannel) Negotiated() bool {
	return d.negotiated
}

// ChannelType returns the reliability class of the channel.
func (d *DataChannel) ChannelType() datachannel.ChannelType {
	return d.channelType
}

// ReadyState represents the state of the DataChannel object as last
// reported by the native engine.
func (d *DataChannel) ReadyState() DataChannelState {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.readyState
}

// BufferedAmount represents the number of bytes of application data
// queued in the native engine and not yet sent, as last reported by it.
func (d *DataChannel) BufferedAmount() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.bufferedAmount
}

// BufferedAmountLowThreshold represents the threshold below which the
// bufferedAmount is considered to be low. It is zero on each new
// DataChannel.
func (d *DataChannel) BufferedAmountLowThreshold() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.bufferedAmountLowThreshold
}

// SetBufferedAmountLowThreshold is used to update the threshold.
// See BufferedAmountLowThreshold().
func (d *DataChannel) SetBufferedAmountLowThreshold(th uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.bufferedAmountLowThreshold = th
}

// BinaryType returns how binary messages are delivered.
func (d *DataChannel) BinaryType() BinaryType {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.binaryType
}

// SetBinaryType accepts only BinaryTypeArrayBuffer.
func (d *DataChannel) SetBinaryType(binaryType BinaryType) error {
	if binaryType != BinaryTypeArrayBuffer {
		return &rtcerr.NotSupportedError{Err: fmt.Errorf("%w: %q", ErrBinaryTypeNotSupported, binaryType)}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.binaryType = binaryType

	return nil
}

// Send forwards data to the peer. data must be a string, a []byte or an
// ArrayBufferView. Binary payloads are base64 encoded for the bridge.
// Send never blocks; delivery problems are reported as error events.
func (d *DataChannel) Send(data interface{}) error {
	switch v := data.(type) {
	case string:
		return d.SendText(v)
	case []byte:
		d.sendBinary(v)
	case ArrayBufferView:
		if isNilView(v) {
			return &rtcerr.TypeError{Err: fmt.Errorf("%w, got nil %T", ErrDataTypeNotSupported, data)}
		}
		payload, ok := viewBytes(v)
		if !ok {
			return &rtcerr.RangeError{Err: errViewOutOfRange}
		}
		d.sendBinary(payload)
	default:
		return &rtcerr.TypeError{Err: fmt.Errorf("%w, got %T", ErrDataTypeNotSupported, data)}
	}

	return nil
}

// SendText forwards a text message unmodified.
func (d *DataChannel) SendText(s string) error {
	d.log.Tracef("send text on %s (%d bytes)", d.reactTag, len(s))
	d.module.DataChannelSend(d.peerConnectionID, d.reactTag, s, bridge.EncodingText)

	return nil
}

func (d *DataChannel) sendBinary(b []byte) {
	d.log.Tracef("send binary on %s (%d bytes)", d.reactTag, len(b))
	d.module.DataChannelSend(d.peerConnectionID, d.reactTag, base64.StdEncoding.EncodeToString(b), bridge.EncodingBinary)
}

// Close asks the native engine to close the channel. It is a no-op once the
// channel is closing or closed. ReadyState changes when the engine reports
// it, not when Close returns.
func (d *DataChannel) Close() error {
	state := d.ReadyState()
	if state == DataChannelStateClosing || state == DataChannelStateClosed {
		return nil
	}

	d.log.Debugf("closing data channel %s", d.reactTag)
	d.module.DataChannelClose(d.peerConnectionID, d.reactTag)

	return nil
}

// Release stops listening for native notifications. It runs at most once and
// is called automatically after the close event.
func (d *DataChannel) Release() {
	d.releaseOnce.Do(func() {
		for _, sub := range d.subscriptions {
			sub.Remove()
		}

		if d.onRelease != nil {
			d.onRelease(d)
		}
	})
}

// AddEventListener registers fn for eventType.
func (d *DataChannel) AddEventListener(eventType EventType, fn func(Event)) (ListenerID, error) {
	return d.target.add(eventType, fn)
}

// RemoveEventListener removes a listener added with AddEventListener. It
// reports whether the listener was registered.
func (d *DataChannel) RemoveEventListener(eventType EventType, id ListenerID) bool {
	return d.target.remove(eventType, id)
}

// setHandler replaces the handler installed by the On* setter for eventType.
func (d *DataChannel) setHandler(eventType EventType, fn func(Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if id, ok := d.handlers[eventType]; ok {
		d.target.remove(eventType, id)
		delete(d.handlers, eventType)
	}
	if fn == nil {
		return
	}

	id, err := d.target.add(eventType, fn)
	if err != nil {
		d.log.Warnf("failed to set %s handler: %v", eventType, err)
		return
	}
	d.handlers[eventType] = id
}

// OnOpen sets an event handler which is invoked when
// the underlying data transport has been established (or re-established).
func (d *DataChannel) OnOpen(f func()) {
	if f == nil {
		d.setHandler(EventTypeOpen, nil)
		return
	}
	d.setHandler(EventTypeOpen, func(Event) { f() })
}

// OnMessage sets an event handler which is invoked on a message
// arrival from a remote peer.
func (d *DataChannel) OnMessage(f func(msg DataChannelMessage)) {
	if f == nil {
		d.setHandler(EventTypeMessage, nil)
		return
	}
	d.setHandler(EventTypeMessage, func(e Event) { f(*e.Message) })
}

// OnBufferedAmountLow sets an event handler which is invoked when
// the number of bytes of outgoing data buffered is reported below the
// threshold.
func (d *DataChannel) OnBufferedAmountLow(f func()) {
	if f == nil {
		d.setHandler(EventTypeBufferedAmountLow, nil)
		return
	}
	d.setHandler(EventTypeBufferedAmountLow, func(Event) { f() })
}

// OnClosing sets an event handler which is invoked when
// the native engine starts closing the channel.
func (d *DataChannel) OnClosing(f func()) {
	if f == nil {
		d.setHandler(EventTypeClosing, nil)
		return
	}
	d.setHandler(EventTypeClosing, func(Event) { f() })
}

// OnClose sets an event handler which is invoked when
// the underlying data transport has been closed.
func (d *DataChannel) OnClose(f func()) {
	if f == nil {
		d.setHandler(EventTypeClose, nil)
		return
	}
	d.setHandler(EventTypeClose, func(Event) { f() })
}

// OnError sets an event handler which is invoked when
// the native engine reports a failure of the channel.
func (d *DataChannel) OnError(f func(err error)) {
	if f == nil {
		d.setHandler(EventTypeError, nil)
		return
	}
	d.setHandler(EventTypeError, func(e Event) { f(e.Error) })
}

func (d *DataChannel) dispatch(event Event) {
	event.Target = d
	d.target.dispatch(event)
}

func (d *DataChannel) handleStateChange(payload interface{}) {
	ev, ok := payload.(bridge.StateChange)
	if !ok {
		d.log.Warnf("%v: %T on %s", errUnknownPayload, payload, bridge.EventDataChannelStateChanged)
		return
	}
	if ev.ReactTag != d.reactTag {
		return
	}

	if ev.State == bridge.StateError {
		err := errNativeChannelFailed
		if ev.Error != "" {
			err = fmt.Errorf("%w: %s", errNativeChannelFailed, ev.Error)
		}
		d.log.Warnf("data channel %s failed: %v", d.reactTag, err)
		d.dispatch(Event{Type: EventTypeError, Error: &rtcerr.OperationError{Err: err}})

		return
	}

	state := newDataChannelState(ev.State)
	if state == DataChannelStateUnknown {
		d.log.Warnf("ignoring %v %q on %s", errInvalidReadyState, ev.State, d.reactTag)
		return
	}

	d.mu.Lock()
	d.readyState = state
	d.mu.Unlock()
	d.log.Debugf("data channel %s is %s", d.reactTag, state)

	eventType, ok := state.eventType()
	if !ok {
		return
	}
	d.dispatch(Event{Type: eventType})

	if state == DataChannelStateClosed {
		d.Release()
	}
}

func (d *DataChannel) handleMessage(payload interface{}) {
	ev, ok := payload.(bridge.Message)
	if !ok {
		d.log.Warnf("%v: %T on %s", errUnknownPayload, payload, bridge.EventDataChannelReceiveMessage)
		return
	}
	if ev.ReactTag != d.reactTag {
		return
	}

	var msg DataChannelMessage
	switch ev.Type {
	case bridge.EncodingText:
		msg = DataChannelMessage{IsString: true, Data: []byte(ev.Data)}
	case bridge.EncodingBinary:
		data, err := base64.StdEncoding.DecodeString(ev.Data)
		if err != nil {
			d.log.Warnf("undecodable binary message on %s: %v", d.reactTag, err)
			d.dispatch(Event{Type: EventTypeError, Error: &rtcerr.SyntaxError{Err: err}})

			return
		}
		msg = DataChannelMessage{Data: data}
	default:
		d.log.Warnf("%v %q on %s", errUnknownMessageType, ev.Type, d.reactTag)
		d.dispatch(Event{Type: EventTypeError, Error: &rtcerr.NotSupportedError{
			Err: fmt.Errorf("%w: %q", errUnknownMessageType, ev.Type),
		}})

		return
	}

	d.dispatch(Event{Type: EventTypeMessage, Message: &msg})
}

func (d *DataChannel) handleBufferedAmountChange(payload interface{}) {
	ev, ok := payload.(bridge.BufferedAmountChange)
	if !ok {
		d.log.Warnf("%v: %T on %s", errUnknownPayload, payload, bridge.EventDataChannelDidChangeBufferedAmount)
		return
	}
	if ev.ReactTag != d.reactTag {
		return
	}

	d.mu.Lock()
	d.bufferedAmount = ev.BufferedAmount
	low := d.bufferedAmount < d.bufferedAmountLowThreshold
	d.mu.Unlock()

	if low {
		d.dispatch(Event{Type: EventTypeBufferedAmountLow, Channel: d})
	}
}
