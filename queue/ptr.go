// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "unsafe"

// The unsafe.Pointer-handle flavors below adapt the generic typed queues
// to [QueuePtr], the zero-copy object-passing interface, the same way
// [MPSCIndirect] et al. adapt to [QueueIndirect].

type MPSCPtr struct{ inner *MPSC[unsafe.Pointer] }

func NewMPSCPtr(capacity int) *MPSCPtr { return &MPSCPtr{inner: NewMPSC[unsafe.Pointer](capacity)} }
func (q *MPSCPtr) Enqueue(elem unsafe.Pointer) error { return q.inner.Enqueue(&elem) }
func (q *MPSCPtr) Dequeue() (unsafe.Pointer, error)  { return q.inner.Dequeue() }
func (q *MPSCPtr) Cap() int                          { return q.inner.Cap() }
func (q *MPSCPtr) Drain()                            { q.inner.Drain() }

type SPMCPtr struct{ inner *SPMC[unsafe.Pointer] }

func NewSPMCPtr(capacity int) *SPMCPtr { return &SPMCPtr{inner: NewSPMC[unsafe.Pointer](capacity)} }
func (q *SPMCPtr) Enqueue(elem unsafe.Pointer) error { return q.inner.Enqueue(&elem) }
func (q *SPMCPtr) Dequeue() (unsafe.Pointer, error)  { return q.inner.Dequeue() }
func (q *SPMCPtr) Cap() int                          { return q.inner.Cap() }
func (q *SPMCPtr) Drain()                            { q.inner.Drain() }

type MPMCPtr struct{ inner *MPMC[unsafe.Pointer] }

func NewMPMCPtr(capacity int) *MPMCPtr { return &MPMCPtr{inner: NewMPMC[unsafe.Pointer](capacity)} }
func (q *MPMCPtr) Enqueue(elem unsafe.Pointer) error { return q.inner.Enqueue(&elem) }
func (q *MPMCPtr) Dequeue() (unsafe.Pointer, error)  { return q.inner.Dequeue() }
func (q *MPMCPtr) Cap() int                          { return q.inner.Cap() }
func (q *MPMCPtr) Drain()                            { q.inner.Drain() }

type MPSCPtrSeq struct{ inner *MPSCSeq[unsafe.Pointer] }

func NewMPSCPtrSeq(capacity int) *MPSCPtrSeq {
	return &MPSCPtrSeq{inner: NewMPSCSeq[unsafe.Pointer](capacity)}
}
func (q *MPSCPtrSeq) Enqueue(elem unsafe.Pointer) error { return q.inner.Enqueue(&elem) }
func (q *MPSCPtrSeq) Dequeue() (unsafe.Pointer, error)  { return q.inner.Dequeue() }
func (q *MPSCPtrSeq) Cap() int                          { return q.inner.Cap() }

type SPMCPtrSeq struct{ inner *SPMCSeq[unsafe.Pointer] }

func NewSPMCPtrSeq(capacity int) *SPMCPtrSeq {
	return &SPMCPtrSeq{inner: NewSPMCSeq[unsafe.Pointer](capacity)}
}
func (q *SPMCPtrSeq) Enqueue(elem unsafe.Pointer) error { return q.inner.Enqueue(&elem) }
func (q *SPMCPtrSeq) Dequeue() (unsafe.Pointer, error)  { return q.inner.Dequeue() }
func (q *SPMCPtrSeq) Cap() int                          { return q.inner.Cap() }

type MPMCPtrSeq struct{ inner *MPMCSeq[unsafe.Pointer] }

func NewMPMCPtrSeq(capacity int) *MPMCPtrSeq {
	return &MPMCPtrSeq{inner: NewMPMCSeq[unsafe.Pointer](capacity)}
}
func (q *MPMCPtrSeq) Enqueue(elem unsafe.Pointer) error { return q.inner.Enqueue(&elem) }
func (q *MPMCPtrSeq) Dequeue() (unsafe.Pointer, error)  { return q.inner.Dequeue() }
func (q *MPMCPtrSeq) Cap() int                          { return q.inner.Cap() }
