// SPDX-License-Identifier: Unlicense OR MIT

package app

import "sync"

// queue is an unbounded multi-producer queue. Receivers wait on
// Ready and take everything pending with Drain.
type queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	ready  chan struct{}
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{ready: make(chan struct{}, 1)}
}

// Push appends v. Push on a closed queue is ignored.
func (q *queue[T]) Push(v T) {
	q.mu.Lock()
	if !q.closed {
		q.items = append(q.items, v)
	}
	q.mu.Unlock()
	q.notify()
}

// Close marks the end of the queue. Items pushed before Close are
// still drained.
func (q *queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.notify()
}

// Ready is signaled after a Push or Close.
func (q *queue[T]) Ready() <-chan struct{} {
	return q.ready
}

// Drain removes and returns the pending items and reports whether the
// queue is closed.
func (q *queue[T]) Drain() ([]T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items, q.closed
}

func (q *queue[T]) notify() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
