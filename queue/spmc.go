// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// SPMC is an FAA-based single-producer multi-consumer bounded queue over
// the shared [scqRing] core: the sole producer advances tail with plain
// stores; consumers claim positions with fetch-and-add and validate
// against the slot's round word.
//
// Memory: 2n slots for capacity n.
type SPMC[T any] struct {
	ring scqRing[T]
}

// NewSPMC creates an FAA-based SPMC queue. Capacity rounds up to the next
// power of two; panics if capacity < 2.
func NewSPMC[T any](capacity int) *SPMC[T] {
	q := &SPMC[T]{}
	q.ring.init(capacity)
	return q
}

// Enqueue adds an element (single producer goroutine only).
func (q *SPMC[T]) Enqueue(elem *T) error { return q.ring.produceExclusive(elem) }

// Dequeue removes and returns an element (multiple consumer goroutines safe).
func (q *SPMC[T]) Dequeue() (T, error) { return q.ring.consumeShared() }

// Drain signals that no more enqueues will occur. See [Drainer].
func (q *SPMC[T]) Drain() { q.ring.drain() }

// Cap returns the queue's usable capacity n.
func (q *SPMC[T]) Cap() int { return q.ring.ringCap() }
