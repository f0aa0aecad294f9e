// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// SPMCSeq is a CAS-based single-producer multi-consumer bounded queue
// over the shared [seqRing] core: the sole producer advances tail
// without a CAS; consumers CAS-race on head.
//
// This is the Compact variant: n slots for capacity n, vs 2n for the
// FAA-based default ([SPMC]).
type SPMCSeq[T any] struct {
	ring seqRing[T]
}

// NewSPMCSeq creates a CAS-based SPMC queue. Capacity rounds up to the
// next power of two; panics if capacity < 2.
func NewSPMCSeq[T any](capacity int) *SPMCSeq[T] {
	q := &SPMCSeq[T]{}
	q.ring.init(capacity)
	return q
}

// Enqueue adds an element (single producer goroutine only).
func (q *SPMCSeq[T]) Enqueue(elem *T) error { return q.ring.produceExclusive(elem) }

// Dequeue removes and returns an element (multiple consumer goroutines safe).
func (q *SPMCSeq[T]) Dequeue() (T, error) { return q.ring.consumeShared() }

// Cap returns the queue's capacity.
func (q *SPMCSeq[T]) Cap() int { return q.ring.ringCap() }
