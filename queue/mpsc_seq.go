// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// MPSCSeq is a CAS-based multi-producer single-consumer bounded queue
// over the shared [seqRing] core: producers CAS-race on tail; the sole
// consumer advances head without one.
//
// This is the Compact variant: n slots for capacity n, vs 2n for the
// FAA-based default ([MPSC]).
type MPSCSeq[T any] struct {
	ring seqRing[T]
}

// NewMPSCSeq creates a CAS-based MPSC queue. Capacity rounds up to the
// next power of two; panics if capacity < 2.
func NewMPSCSeq[T any](capacity int) *MPSCSeq[T] {
	q := &MPSCSeq[T]{}
	q.ring.init(capacity)
	return q
}

// Enqueue adds an element (multiple producer goroutines safe).
func (q *MPSCSeq[T]) Enqueue(elem *T) error { return q.ring.produceShared(elem) }

// Dequeue removes and returns an element (single consumer goroutine only).
func (q *MPSCSeq[T]) Dequeue() (T, error) { return q.ring.consumeExclusive() }

// Cap returns the queue's capacity.
func (q *MPSCSeq[T]) Cap() int { return q.ring.ringCap() }
