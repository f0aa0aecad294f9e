// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// The MPSC/SPMC/MPMC uintptr-handle flavors below adapt the generic
// typed queues to the value-passing [QueueIndirect] interface rather than
// repeating the FAA/CAS slot machinery with a hand-specialized 8-byte
// layout. An alternative is to pack an "empty" flag into the high bit of
// a 63-bit value and drop the per-slot cycle word; that memory
// micro-optimization is not reproduced here — capacity and throughput
// semantics are identical either way, and uintptr already costs a full
// machine word per slot in the generic queue.

type MPSCIndirect struct{ inner *MPSC[uintptr] }

func NewMPSCIndirect(capacity int) *MPSCIndirect {
	return &MPSCIndirect{inner: NewMPSC[uintptr](capacity)}
}
func (q *MPSCIndirect) Enqueue(elem uintptr) error { return q.inner.Enqueue(&elem) }
func (q *MPSCIndirect) Dequeue() (uintptr, error)  { return q.inner.Dequeue() }
func (q *MPSCIndirect) Cap() int                   { return q.inner.Cap() }
func (q *MPSCIndirect) Drain()                     { q.inner.Drain() }

type SPMCIndirect struct{ inner *SPMC[uintptr] }

func NewSPMCIndirect(capacity int) *SPMCIndirect {
	return &SPMCIndirect{inner: NewSPMC[uintptr](capacity)}
}
func (q *SPMCIndirect) Enqueue(elem uintptr) error { return q.inner.Enqueue(&elem) }
func (q *SPMCIndirect) Dequeue() (uintptr, error)  { return q.inner.Dequeue() }
func (q *SPMCIndirect) Cap() int                   { return q.inner.Cap() }
func (q *SPMCIndirect) Drain()                     { q.inner.Drain() }

type MPMCIndirect struct{ inner *MPMC[uintptr] }

func NewMPMCIndirect(capacity int) *MPMCIndirect {
	return &MPMCIndirect{inner: NewMPMC[uintptr](capacity)}
}
func (q *MPMCIndirect) Enqueue(elem uintptr) error { return q.inner.Enqueue(&elem) }
func (q *MPMCIndirect) Dequeue() (uintptr, error)  { return q.inner.Dequeue() }
func (q *MPMCIndirect) Cap() int                   { return q.inner.Cap() }
func (q *MPMCIndirect) Drain()                     { q.inner.Drain() }

type MPSCCompactIndirect struct{ inner *MPSCSeq[uintptr] }

func NewMPSCCompactIndirect(capacity int) *MPSCCompactIndirect {
	return &MPSCCompactIndirect{inner: NewMPSCSeq[uintptr](capacity)}
}
func (q *MPSCCompactIndirect) Enqueue(elem uintptr) error { return q.inner.Enqueue(&elem) }
func (q *MPSCCompactIndirect) Dequeue() (uintptr, error)  { return q.inner.Dequeue() }
func (q *MPSCCompactIndirect) Cap() int                   { return q.inner.Cap() }

type SPMCCompactIndirect struct{ inner *SPMCSeq[uintptr] }

func NewSPMCCompactIndirect(capacity int) *SPMCCompactIndirect {
	return &SPMCCompactIndirect{inner: NewSPMCSeq[uintptr](capacity)}
}
func (q *SPMCCompactIndirect) Enqueue(elem uintptr) error { return q.inner.Enqueue(&elem) }
func (q *SPMCCompactIndirect) Dequeue() (uintptr, error)  { return q.inner.Dequeue() }
func (q *SPMCCompactIndirect) Cap() int                   { return q.inner.Cap() }

type MPMCCompactIndirect struct{ inner *MPMCSeq[uintptr] }

func NewMPMCCompactIndirect(capacity int) *MPMCCompactIndirect {
	return &MPMCCompactIndirect{inner: NewMPMCSeq[uintptr](capacity)}
}
func (q *MPMCCompactIndirect) Enqueue(elem uintptr) error { return q.inner.Enqueue(&elem) }
func (q *MPMCCompactIndirect) Dequeue() (uintptr, error)  { return q.inner.Dequeue() }
func (q *MPMCCompactIndirect) Cap() int                   { return q.inner.Cap() }
