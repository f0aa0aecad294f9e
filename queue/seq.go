// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"code.forgecore.dev/corelf/atomicbuf"
	"code.forgecore.dev/corelf/idle"
)

// seqRing is the CAS-based compact core shared by [MPSCSeq], [SPMCSeq],
// and [MPMCSeq]: n physical slots for capacity n, coordinated by a
// parallel array of per-slot sequence words initialized so slot i holds
// i. A producer owning sequence s publishes by storing s+1 into slot
// s & mask; a consumer owning sequence s frees the slot for the producer
// n sequences later by storing s+capacity. The sequence word alone
// distinguishes claimed from published from reusable — no null element
// convention needed.
//
// Contended sides race a CAS on their index and re-read on failure;
// exclusive sides advance their index with an ordinary release store.
type seqRing[T any] struct {
	_        atomicbuf.Pad
	tail     atomicbuf.Uint64
	_        atomicbuf.Pad
	head     atomicbuf.Uint64
	_        atomicbuf.Pad
	seqs     *atomicbuf.SeqArray
	data     []T
	mask     uint64
	capacity uint64
}

func (r *seqRing[T]) init(capacity int) {
	if capacity < 2 {
		panic("corelf/queue: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	r.capacity = n
	r.mask = n - 1
	r.data = make([]T, n)
	r.seqs = atomicbuf.NewSeqArray(n, func(i uint64) uint64 { return i })
}

func (r *seqRing[T]) ringCap() int { return int(r.capacity) }

// produceShared: claim sequence tail by CAS, publish by storing tail+1
// into the slot's sequence word. A sequence word behind tail means the
// consumer side is a full lap behind — the ring is full.
func (r *seqRing[T]) produceShared(elem *T) error {
	backoff := idle.BusySpin{}
	for {
		tail := r.tail.LoadAcquire()
		slot := tail & r.mask
		seq := r.seqs.LoadAcquire(slot)

		if seq == tail {
			if r.tail.CompareAndSwapAcqRel(tail, tail+1) {
				r.data[slot] = *elem
				r.seqs.StoreRelease(slot, tail+1)
				return nil
			}
		} else if int64(seq) < int64(tail) {
			return ErrWouldBlock
		}
		backoff.IdleForce()
	}
}

// produceExclusive: the sole producer needs no CAS — validate the slot,
// publish, advance tail.
func (r *seqRing[T]) produceExclusive(elem *T) error {
	tail := r.tail.LoadRelaxed()
	slot := tail & r.mask
	if r.seqs.LoadAcquire(slot) != tail {
		return ErrWouldBlock
	}

	r.data[slot] = *elem
	r.seqs.StoreRelease(slot, tail+1)
	r.tail.StoreRelease(tail + 1)
	return nil
}

// consumeShared: claim sequence head by CAS once the slot's sequence
// word shows head+1 (published), then free the slot for the producer a
// lap ahead by storing head+capacity.
func (r *seqRing[T]) consumeShared() (T, error) {
	var zero T
	backoff := idle.BusySpin{}
	for {
		head := r.head.LoadAcquire()
		slot := head & r.mask
		seq := r.seqs.LoadAcquire(slot)

		if seq == head+1 {
			if r.head.CompareAndSwapAcqRel(head, head+1) {
				elem := r.data[slot]
				r.data[slot] = zero
				r.seqs.StoreRelease(slot, head+r.capacity)
				return elem, nil
			}
		} else if int64(seq) < int64(head+1) {
			return zero, ErrWouldBlock
		}
		backoff.IdleForce()
	}
}

// consumeExclusive: the sole consumer needs no CAS.
func (r *seqRing[T]) consumeExclusive() (T, error) {
	var zero T
	head := r.head.LoadRelaxed()
	slot := head & r.mask
	if r.seqs.LoadAcquire(slot) != head+1 {
		return zero, ErrWouldBlock
	}

	elem := r.data[slot]
	r.data[slot] = zero
	r.seqs.StoreRelease(slot, head+r.capacity)
	r.head.StoreRelease(head + 1)
	return elem, nil
}
