// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import (
	"code.forgecore.dev/corelf/atomicbuf"
	"code.forgecore.dev/corelf/idle"
)

// scqRing is the FAA-based core shared by [MPSC], [SPMC], and [MPMC]:
// whichever side is contended claims a position blindly with
// fetch-and-add and then validates the claim against the slot's round
// word, rather than CAS-racing on the index itself. A position p maps to
// slot p & mask and round p / capacity; with 2n physical slots for
// capacity n, each slot hosts every second round, so its round word
// advances by two per lap: claim at round r, publish as r+1, free as r+2.
//
// The round words live in an [atomicbuf.SeqArray] parallel to the element
// storage — one dense region of ordered 64-bit words for coordination,
// plain Go memory for the elements, with publication carried entirely by
// the release-store into the round word.
//
// Exclusive ("single") variants of each side skip the FAA and the retry
// loop: a sole owner of an index can read, validate, and advance it with
// plain stores.
type scqRing[T any] struct {
	_         atomicbuf.Pad
	tail      atomicbuf.Uint64
	_         atomicbuf.Pad
	head      atomicbuf.Uint64
	_         atomicbuf.Pad
	threshold atomicbuf.Int64 // livelock guard for shared consumers
	_         atomicbuf.Pad
	draining  atomicbuf.Bool
	_         atomicbuf.Pad
	rounds    *atomicbuf.SeqArray
	data      []T
	capacity  uint64 // n, usable capacity
	slots     uint64 // 2n, physical slot count
	mask      uint64 // 2n - 1
}

func (r *scqRing[T]) init(capacity int) {
	if capacity < 2 {
		panic("corelf/queue: capacity must be >= 2")
	}
	n := uint64(roundToPow2(capacity))
	r.capacity = n
	r.slots = n * 2
	r.mask = r.slots - 1
	r.data = make([]T, r.slots)
	r.rounds = atomicbuf.NewSeqArray(r.slots, func(i uint64) uint64 { return i / n })
	r.armThreshold()
}

func (r *scqRing[T]) ringCap() int { return int(r.capacity) }

// drain relaxes the livelock guard so consumers can empty the ring after
// the last producer is done. See [Drainer].
func (r *scqRing[T]) drain() { r.draining.StoreRelease(true) }

// armThreshold resets the livelock guard; called on every successful
// produce so consumer-side decrements only accumulate while nothing is
// being published.
func (r *scqRing[T]) armThreshold() { r.threshold.StoreRelaxed(3*int64(r.capacity) - 1) }

func (r *scqRing[T]) full(tail uint64) bool {
	return tail >= r.head.LoadAcquire()+r.capacity
}

// advanceTailTo drags a stale tail forward to target so the next
// producer claim lands past the slots a consumer already marked skipped.
func (r *scqRing[T]) advanceTailTo(target uint64) {
	for {
		tail := r.tail.LoadRelaxed()
		if tail >= target || r.tail.CompareAndSwapRelaxed(tail, target) {
			return
		}
	}
}

// produceShared is the multi-producer enqueue: FAA-claim a position,
// then validate the slot's round. A round word behind the claim means
// the consumer side hasn't freed the slot yet — the ring is full. A
// round word ahead means this claim lost a lap race; retry with a fresh
// position.
func (r *scqRing[T]) produceShared(elem *T) error {
	backoff := idle.BusySpin{}
	for {
		if r.full(r.tail.LoadAcquire()) {
			return ErrWouldBlock
		}

		pos := r.tail.AddAcqRel(1) - 1
		slot := pos & r.mask
		claim := pos / r.capacity

		have := r.rounds.LoadAcquire(slot)
		if have == claim {
			r.data[slot] = *elem
			r.rounds.StoreRelease(slot, claim+1)
			r.armThreshold()
			return nil
		}
		if int64(have) < int64(claim) {
			return ErrWouldBlock
		}
		backoff.IdleForce()
	}
}

// produceExclusive is the single-producer enqueue: the sole owner of
// tail validates the slot and advances the index with a plain store.
func (r *scqRing[T]) produceExclusive(elem *T) error {
	pos := r.tail.LoadRelaxed()
	if r.full(pos) {
		return ErrWouldBlock
	}
	slot := pos & r.mask
	claim := pos / r.capacity
	if r.rounds.LoadAcquire(slot) != claim {
		return ErrWouldBlock
	}

	r.data[slot] = *elem
	r.rounds.StoreRelease(slot, claim+1)
	r.tail.StoreRelaxed(pos + 1)
	r.armThreshold()
	return nil
}

// consumeShared is the multi-consumer dequeue. An FAA claim that lands
// on an unpublished slot marks it skipped for this lap (so the late
// producer's claim fails rather than publishing into a position no
// consumer will visit again), then either reports empty or charges the
// livelock threshold and retries.
func (r *scqRing[T]) consumeShared() (T, error) {
	var zero T
	if r.threshold.LoadRelaxed() < 0 && !r.draining.LoadAcquire() {
		return zero, ErrWouldBlock
	}

	backoff := idle.BusySpin{}
	for {
		pos := r.head.AddAcqRel(1) - 1
		slot := pos & r.mask
		want := pos/r.capacity + 1

		have := r.rounds.LoadAcquire(slot)
		if have == want {
			elem := r.data[slot]
			r.data[slot] = zero
			r.rounds.StoreRelease(slot, want+1)
			return elem, nil
		}
		if int64(have) < int64(want) {
			r.rounds.CompareAndSwapAcqRel(slot, have, want+1)

			if tail := r.tail.LoadAcquire(); tail <= pos+1 {
				r.advanceTailTo(pos + 1)
				r.threshold.AddAcqRel(-1)
				return zero, ErrWouldBlock
			}
			if r.threshold.AddAcqRel(-1) <= 0 && !r.draining.LoadAcquire() {
				return zero, ErrWouldBlock
			}
		}
		backoff.IdleForce()
	}
}

// consumeExclusive is the single-consumer dequeue.
//
// An unpublished slot may be observed even when tail > head, because a
// concurrent producer can have claimed the slot without having published
// yet; the dequeue then reports empty. This is a deliberate relaxation
// of emptiness semantics, not a bug to fix — any stricter answer would
// require producers and the consumer to synchronize on every operation.
func (r *scqRing[T]) consumeExclusive() (T, error) {
	var zero T
	pos := r.head.LoadRelaxed()
	slot := pos & r.mask
	want := pos/r.capacity + 1
	if r.rounds.LoadAcquire(slot) != want {
		return zero, ErrWouldBlock
	}

	elem := r.data[slot]
	r.data[slot] = zero
	r.rounds.StoreRelease(slot, want+1)
	r.head.StoreRelaxed(pos + 1)
	return elem, nil
}
