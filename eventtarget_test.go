// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dcbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTarget(t *testing.T) {
	target := newEventTarget()

	var order []int
	first, err := target.add(EventTypeOpen, func(Event) { order = append(order, 1) })
	require.NoError(t, err)
	_, err = target.add(EventTypeOpen, func(Event) { order = append(order, 2) })
	require.NoError(t, err)
	_, err = target.add(EventTypeClose, func(Event) { order = append(order, 3) })
	require.NoError(t, err)

	target.dispatch(Event{Type: EventTypeOpen})
	assert.Equal(t, []int{1, 2}, order)

	assert.True(t, target.remove(EventTypeOpen, first))
	assert.False(t, target.remove(EventTypeOpen, first))
	assert.False(t, target.remove(EventTypeClose, first))

	order = nil
	target.dispatch(Event{Type: EventTypeOpen})
	assert.Equal(t, []int{2}, order)
	assert.Equal(t, 1, target.count(EventTypeOpen))
}

func TestEventTarget_Errors(t *testing.T) {
	target := newEventTarget()

	_, err := target.add("connecting", func(Event) {})
	assert.ErrorIs(t, err, ErrUnsupportedEventType)

	_, err = target.add(EventTypeMessage, nil)
	assert.ErrorIs(t, err, errNilListener)
}

func TestEventType_Supported(t *testing.T) {
	for _, eventType := range []EventType{
		EventTypeOpen, EventTypeMessage, EventTypeBufferedAmountLow,
		EventTypeClosing, EventTypeClose, EventTypeError,
	} {
		assert.True(t, eventType.supported(), eventType)
	}
	assert.False(t, EventType("closed").supported())
	assert.False(t, EventType("").supported())
}
