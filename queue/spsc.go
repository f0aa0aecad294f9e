// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"unsafe"

	"code.forgecore.dev/corelf/atomicbuf"
)

// SPSC is a single-producer single-consumer bounded queue. With one
// goroutine per side there is nothing to claim or validate: the producer
// owns tail, the consumer owns head, and each side publishes its index
// with a release store the other side acquire-loads.
//
// Each side also keeps a stale copy of the other's index next to its own
// (headCache beside tail, tailCache beside head), refreshed only when the
// stale value says the ring is full or empty. In steady state an enqueue
// or dequeue touches only its own cache-line group.
//
// Memory: n slots for capacity n, no per-slot overhead beyond T itself.
type SPSC[T any] struct {
	_         atomicbuf.Pad
	tail      atomicbuf.Uint64 // producer-owned
	headCache uint64           // producer's stale view of head
	_         atomicbuf.Pad
	head      atomicbuf.Uint64 // consumer-owned
	tailCache uint64           // consumer's stale view of tail
	_         atomicbuf.Pad
	data      []T
	mask      uint64
	capacity  uint64
}

// NewSPSC creates an SPSC queue. Capacity rounds up to the next power of
// two; panics if capacity < 2.
func NewSPSC[T any](capacity int) *SPSC[T] {
	if capacity < 2 {
		panic("corelf/queue: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	return &SPSC[T]{
		data:     make([]T, n),
		mask:     n - 1,
		capacity: n,
	}
}

// Enqueue adds an element (producer goroutine only). The ring is full
// when tail reaches headCache+capacity; only then is the real head
// consulted.
func (q *SPSC[T]) Enqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	if limit := q.headCache + q.capacity; tail >= limit {
		q.headCache = q.head.LoadAcquire()
		if tail >= q.headCache+q.capacity {
			return ErrWouldBlock
		}
	}

	q.data[tail&q.mask] = *elem
	q.tail.StoreRelease(tail + 1)
	return nil
}

// Dequeue removes and returns an element (consumer goroutine only). The
// ring looks empty when head catches tailCache; only then is the real
// tail consulted.
func (q *SPSC[T]) Dequeue() (T, error) {
	head := q.head.LoadRelaxed()
	if head == q.tailCache {
		q.tailCache = q.tail.LoadAcquire()
		if head == q.tailCache {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	elem := q.data[head&q.mask]
	var zero T
	q.data[head&q.mask] = zero
	q.head.StoreRelease(head + 1)
	return elem, nil
}

// Cap returns the queue's physical capacity.
func (q *SPSC[T]) Cap() int { return int(q.capacity) }

// Size returns an estimate of the current element count: tail - head,
// with head double-read to detect a concurrently advancing consumer,
// clamped to [0, capacity]. It is not a substitute for checking
// Enqueue/Dequeue's return value.
func (q *SPSC[T]) Size() int {
	for {
		before := q.head.LoadAcquire()
		tail := q.tail.LoadAcquire()
		if before != q.head.LoadAcquire() {
			continue
		}
		size := int64(tail) - int64(before)
		if size < 0 {
			return 0
		}
		if size > int64(q.capacity) {
			return int(q.capacity)
		}
		return int(size)
	}
}

// SPSCIndirect is the uintptr-handle flavor of [SPSC], used for
// free-lists over an index-addressed pool.
type SPSCIndirect struct{ inner *SPSC[uintptr] }

// NewSPSCIndirect creates an SPSC queue for uintptr values.
func NewSPSCIndirect(capacity int) *SPSCIndirect {
	return &SPSCIndirect{inner: NewSPSC[uintptr](capacity)}
}

func (q *SPSCIndirect) Enqueue(elem uintptr) error { return q.inner.Enqueue(&elem) }
func (q *SPSCIndirect) Dequeue() (uintptr, error)  { return q.inner.Dequeue() }
func (q *SPSCIndirect) Cap() int                   { return q.inner.Cap() }

// SPSCPtr is the unsafe.Pointer flavor of [SPSC], for zero-copy handoff.
type SPSCPtr struct{ inner *SPSC[unsafe.Pointer] }

// NewSPSCPtr creates an SPSC queue for unsafe.Pointer values.
func NewSPSCPtr(capacity int) *SPSCPtr {
	return &SPSCPtr{inner: NewSPSC[unsafe.Pointer](capacity)}
}

func (q *SPSCPtr) Enqueue(elem unsafe.Pointer) error { return q.inner.Enqueue(&elem) }
func (q *SPSCPtr) Dequeue() (unsafe.Pointer, error)  { return q.inner.Dequeue() }
func (q *SPSCPtr) Cap() int                          { return q.inner.Cap() }
