// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// MPSC is an FAA-based multi-producer single-consumer bounded queue over
// the shared [scqRing] core: producers claim positions with fetch-and-add
// and validate against the slot's round word; the sole consumer advances
// head with plain stores.
//
// Memory: 2n slots for capacity n.
type MPSC[T any] struct {
	ring scqRing[T]
}

// NewMPSC creates an FAA-based MPSC queue. Capacity rounds up to the next
// power of two; panics if capacity < 2.
func NewMPSC[T any](capacity int) *MPSC[T] {
	q := &MPSC[T]{}
	q.ring.init(capacity)
	return q
}

// Enqueue adds an element (multiple producer goroutines safe).
func (q *MPSC[T]) Enqueue(elem *T) error { return q.ring.produceShared(elem) }

// Dequeue removes and returns an element (single consumer goroutine
// only). See [scqRing.consumeExclusive] for the emptiness relaxation
// under a concurrent unpublished claim.
func (q *MPSC[T]) Dequeue() (T, error) { return q.ring.consumeExclusive() }

// Drain signals that no more enqueues will occur. See [Drainer].
func (q *MPSC[T]) Drain() { q.ring.drain() }

// Cap returns the queue's usable capacity n.
func (q *MPSC[T]) Cap() int { return q.ring.ringCap() }
