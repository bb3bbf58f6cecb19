// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package bridge

import (
	"sync"

	"github.com/pion/logging"
)

// Listener receives the payload of one notification.
type Listener func(payload interface{})

type listenerEntry struct {
	fn Listener
}

// Emitter is the shared notification bus between the native engine and
// every proxy. Listeners are invoked synchronously on the emitting
// goroutine, in the order they were added.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[string][]*listenerEntry

	log logging.LeveledLogger
}

// NewEmitter creates an Emitter. A nil loggerFactory selects the pion
// default factory.
func NewEmitter(loggerFactory logging.LoggerFactory) *Emitter {
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	return &Emitter{
		listeners: map[string][]*listenerEntry{},
		log:       loggerFactory.NewLogger("bridge"),
	}
}

// AddListener subscribes fn to the named notification. The returned
// Subscription must be removed to stop delivery.
func (e *Emitter) AddListener(event string, fn Listener) *Subscription {
	entry := &listenerEntry{fn: fn}

	e.mu.Lock()
	e.listeners[event] = append(e.listeners[event], entry)
	e.mu.Unlock()

	return &Subscription{emitter: e, event: event, entry: entry}
}

// Emit delivers payload to every listener of event. Listeners added or
// removed while Emit runs take effect from the next Emit.
func (e *Emitter) Emit(event string, payload interface{}) {
	e.mu.RLock()
	entries := append([]*listenerEntry(nil), e.listeners[event]...)
	e.mu.RUnlock()

	if len(entries) == 0 {
		e.log.Tracef("no listener for %s", event)
		return
	}

	for _, entry := range entries {
		entry.fn(payload)
	}
}

// ListenerCount returns the number of live subscriptions for event.
func (e *Emitter) ListenerCount(event string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.listeners[event])
}

func (e *Emitter) remove(event string, entry *listenerEntry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := e.listeners[event]
	for i := range entries {
		if entries[i] == entry {
			e.listeners[event] = append(entries[:i:i], entries[i+1:]...)
			break
		}
	}

	if len(e.listeners[event]) == 0 {
		delete(e.listeners, event)
	}
}

// Subscription is the handle of one listener registration.
type Subscription struct {
	emitter *Emitter
	event   string
	entry   *listenerEntry
	once    sync.Once
}

// Remove stops delivery to the listener. It is safe to call more than once.
func (s *Subscription) Remove() {
	s.once.Do(func() {
		s.emitter.remove(s.event, s.entry)
	})
}
