// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// MPMCSeq is a CAS-based multi-producer multi-consumer bounded queue
// over the shared [seqRing] core — Vyukov's bounded MPMC construction:
// slot i starts holding sequence i; a producer publishes sequence s by
// storing s+1, a consumer frees the slot by storing s+capacity, and each
// side CAS-races on its own index.
//
// This is the Compact variant: n physical slots for capacity n, vs 2n
// for the FAA-based default ([MPMC]). Prefer [MPMC] when contention
// scales; prefer this when memory footprint matters more.
type MPMCSeq[T any] struct {
	ring seqRing[T]
}

// NewMPMCSeq creates a CAS-based MPMC queue. Capacity rounds up to the
// next power of two; panics if capacity < 2.
func NewMPMCSeq[T any](capacity int) *MPMCSeq[T] {
	q := &MPMCSeq[T]{}
	q.ring.init(capacity)
	return q
}

// Enqueue adds an element (multiple producer goroutines safe).
func (q *MPMCSeq[T]) Enqueue(elem *T) error { return q.ring.produceShared(elem) }

// Dequeue removes and returns an element (multiple consumer goroutines safe).
func (q *MPMCSeq[T]) Dequeue() (T, error) { return q.ring.consumeShared() }

// Cap returns the queue's capacity.
func (q *MPMCSeq[T]) Cap() int { return q.ring.ringCap() }
