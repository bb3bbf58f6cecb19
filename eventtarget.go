// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package dcbridge

import (
	"fmt"
	"sync"
)

// ListenerID identifies a listener registration on a DataChannel.
type ListenerID uint64

type registeredListener struct {
	id ListenerID
	fn func(Event)
}

// eventTarget keeps listeners keyed by event type and invokes them in
// registration order.
type eventTarget struct {
	mu        sync.Mutex
	lastID    ListenerID
	listeners map[EventType][]registeredListener
}

func newEventTarget() *eventTarget {
	return &eventTarget{listeners: map[EventType][]registeredListener{}}
}

func (t *eventTarget) add(eventType EventType, fn func(Event)) (ListenerID, error) {
	if !eventType.supported() {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedEventType, eventType)
	}
	if fn == nil {
		return 0, errNilListener
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastID++
	t.listeners[eventType] = append(t.listeners[eventType], registeredListener{id: t.lastID, fn: fn})

	return t.lastID, nil
}

func (t *eventTarget) remove(eventType EventType, id ListenerID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	listeners := t.listeners[eventType]
	for i := range listeners {
		if listeners[i].id == id {
			t.listeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
			return true
		}
	}

	return false
}

func (t *eventTarget) dispatch(event Event) {
	t.mu.Lock()
	listeners := append([]registeredListener(nil), t.listeners[event.Type]...)
	t.mu.Unlock()

	for _, l := range listeners {
		l.fn(event)
	}
}

func (t *eventTarget) count(eventType EventType) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.listeners[eventType])
}
