// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// MPMC is an FAA-based multi-producer multi-consumer bounded queue over
// the shared [scqRing] core — the SCQ construction (Nikolaev, DISC
// 2019): both sides claim positions blindly with fetch-and-add and
// validate against the slot's round word, which scales better under
// contention than CAS-racing on the indices (see [MPMCSeq] for the
// compact CAS-based alternative).
//
// Memory: 2n slots for capacity n.
type MPMC[T any] struct {
	ring scqRing[T]
}

// NewMPMC creates an FAA-based MPMC queue. Capacity rounds up to the next
// power of two; panics if capacity < 2.
func NewMPMC[T any](capacity int) *MPMC[T] {
	q := &MPMC[T]{}
	q.ring.init(capacity)
	return q
}

// Enqueue adds an element (multiple producer goroutines safe).
func (q *MPMC[T]) Enqueue(elem *T) error { return q.ring.produceShared(elem) }

// Dequeue removes and returns an element (multiple consumer goroutines safe).
func (q *MPMC[T]) Dequeue() (T, error) { return q.ring.consumeShared() }

// Drain signals that no more enqueues will occur. See [Drainer].
func (q *MPMC[T]) Drain() { q.ring.drain() }

// Cap returns the queue's usable capacity n.
func (q *MPMC[T]) Cap() int { return q.ring.ringCap() }
