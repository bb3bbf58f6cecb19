// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package native

import (
	"container/list"
	"sync"
)

type operation func()

// operations runs enqueued functions one at a time, in order, on a
// goroutine of its own. pion invokes data channel callbacks from several
// goroutines; funnelling notifications through one queue gives listeners a
// single ordered event loop.
type operations struct {
	mu       sync.Mutex
	busyCh   chan struct{}
	ops      *list.List
	isClosed bool
}

func newOperations() *operations {
	return &operations{
		ops: list.New(),
	}
}

// Enqueue adds a new action to be executed. Actions enqueued after
// GracefulClose are dropped.
func (o *operations) Enqueue(op operation) {
	o.mu.Lock()
	defer o.mu.Unlock()
	_ = o.tryEnqueue(op)
}

// tryEnqueue must be called with mu held.
func (o *operations) tryEnqueue(op operation) bool {
	if op == nil || o.isClosed {
		return false
	}
	o.ops.PushBack(op)

	if o.busyCh == nil {
		o.busyCh = make(chan struct{})
		go o.start()
	}

	return true
}

// Done blocks until all currently enqueued operations are finished executing.
func (o *operations) Done() {
	var wg sync.WaitGroup
	wg.Add(1)
	o.mu.Lock()
	enqueued := o.tryEnqueue(func() {
		wg.Done()
	})
	o.mu.Unlock()
	if !enqueued {
		return
	}
	wg.Wait()
}

// GracefulClose waits for the queue to drain and forbids new operations.
func (o *operations) GracefulClose() {
	o.mu.Lock()
	if o.isClosed {
		o.mu.Unlock()
		return
	}
	o.isClosed = true

	busyCh := o.busyCh
	o.mu.Unlock()
	if busyCh == nil {
		return
	}
	<-busyCh
}

func (o *operations) pop() operation {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.ops.Len() == 0 {
		return nil
	}

	e := o.ops.Front()
	o.ops.Remove(e)
	if op, ok := e.Value.(operation); ok {
		return op
	}

	return nil
}

func (o *operations) start() {
	defer func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		close(o.busyCh)

		if o.ops.Len() == 0 || o.isClosed {
			o.busyCh = nil
			return
		}

		// an operation was enqueued while we were finishing, or one panicked
		o.busyCh = make(chan struct{})
		go o.start()
	}()

	for fn := o.pop(); fn != nil; fn = o.pop() {
		fn()
	}
}
