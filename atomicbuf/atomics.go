// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package atomicbuf is the substrate every other component of the
// coordination fabric is built on: typed, ordered access over a
// contiguous byte region, plus atomic scalar types for hot-path struct
// fields (ring indices, sequence tags, thresholds) and a [Pad] type that
// callers place between them to keep them on separate cache lines.
//
// Method names encode the caller's intended memory-ordering contract —
// plain, opaque, acquire, release, volatile (sequentially consistent),
// and CAS/fetch-and-add — mirroring the distinctions Java's VarHandle and
// C++'s std::atomic expose. Go's memory model (https://go.dev/ref/mem)
// only ever gives sync/atomic operations sequentially-consistent
// semantics: there is no relaxed or acquire/release intrinsic to drop
// down to. Every method below therefore compiles to the same fence; the
// names exist so a reader reasoning about the algorithm (and a future
// implementation with access to weaker hardware intrinsics) can see
// exactly which ordering each access requires, matching the ordering
// vocabulary every queue and buffer in this module is specified against.
package atomicbuf

import (
	"go.uber.org/atomic"
)

// Uint64 is an atomic uint64 with the ordering-qualified method surface
// used throughout ring queues for head/tail sequences.
type Uint64 struct {
	v atomic.Uint64
}

func (a *Uint64) LoadRelaxed() uint64  { return a.v.Load() }
func (a *Uint64) LoadAcquire() uint64  { return a.v.Load() }
func (a *Uint64) LoadVolatile() uint64 { return a.v.Load() }
func (a *Uint64) LoadOpaque() uint64   { return a.v.Load() }

func (a *Uint64) StoreRelaxed(val uint64)  { a.v.Store(val) }
func (a *Uint64) StoreRelease(val uint64)  { a.v.Store(val) }
func (a *Uint64) StoreVolatile(val uint64) { a.v.Store(val) }
func (a *Uint64) StoreOpaque(val uint64)   { a.v.Store(val) }

// AddAcqRel performs a fetch-and-add, returning the new value.
func (a *Uint64) AddAcqRel(delta uint64) uint64 { return a.v.Add(delta) }

// AddRelaxed performs a fetch-and-add without inter-thread ordering
// requirements beyond atomicity.
func (a *Uint64) AddRelaxed(delta uint64) uint64 { return a.v.Add(delta) }

func (a *Uint64) CompareAndSwapAcqRel(old, new uint64) bool {
	return a.v.CompareAndSwap(old, new)
}

func (a *Uint64) CompareAndSwapRelaxed(old, new uint64) bool {
	return a.v.CompareAndSwap(old, new)
}

// ExchangeAcqRel atomically replaces the value, returning the previous one.
func (a *Uint64) ExchangeAcqRel(val uint64) uint64 { return a.v.Swap(val) }

// Int64 is the signed counterpart, used for things like the MPMC/SPMC
// livelock-prevention threshold which must go negative.
type Int64 struct {
	v atomic.Int64
}

func (a *Int64) LoadRelaxed() int64  { return a.v.Load() }
func (a *Int64) LoadAcquire() int64  { return a.v.Load() }
func (a *Int64) LoadVolatile() int64 { return a.v.Load() }

func (a *Int64) StoreRelaxed(val int64)  { a.v.Store(val) }
func (a *Int64) StoreRelease(val int64)  { a.v.Store(val) }
func (a *Int64) StoreVolatile(val int64) { a.v.Store(val) }

func (a *Int64) AddAcqRel(delta int64) int64   { return a.v.Add(delta) }
func (a *Int64) AddRelaxed(delta int64) int64  { return a.v.Add(delta) }
func (a *Int64) CompareAndSwapAcqRel(old, new int64) bool {
	return a.v.CompareAndSwap(old, new)
}
func (a *Int64) CompareAndSwapRelaxed(old, new int64) bool {
	return a.v.CompareAndSwap(old, new)
}
func (a *Int64) ExchangeAcqRel(val int64) int64 { return a.v.Swap(val) }

// Uint32 backs 32-bit sequence/version fields (e.g. MarkFile's version word).
type Uint32 struct {
	v atomic.Uint32
}

func (a *Uint32) LoadRelaxed() uint32  { return a.v.Load() }
func (a *Uint32) LoadAcquire() uint32  { return a.v.Load() }
func (a *Uint32) LoadVolatile() uint32 { return a.v.Load() }

func (a *Uint32) StoreRelaxed(val uint32)  { a.v.Store(val) }
func (a *Uint32) StoreRelease(val uint32)  { a.v.Store(val) }
func (a *Uint32) StoreVolatile(val uint32) { a.v.Store(val) }

func (a *Uint32) AddAcqRel(delta uint32) uint32 { return a.v.Add(delta) }
func (a *Uint32) CompareAndSwapAcqRel(old, new uint32) bool {
	return a.v.CompareAndSwap(old, new)
}

// Bool is an atomic flag used for single-bit coordination signals: the
// MPSC/MPMC drain flag, the AgentRunner running flag, and similar.
type Bool struct {
	v atomic.Bool
}

func (a *Bool) LoadRelaxed() bool  { return a.v.Load() }
func (a *Bool) LoadAcquire() bool  { return a.v.Load() }
func (a *Bool) LoadVolatile() bool { return a.v.Load() }

func (a *Bool) StoreRelaxed(val bool)  { a.v.Store(val) }
func (a *Bool) StoreRelease(val bool)  { a.v.Store(val) }
func (a *Bool) StoreVolatile(val bool) { a.v.Store(val) }

func (a *Bool) CompareAndSwapAcqRel(old, new bool) bool {
	return a.v.CompareAndSwap(old, new)
}

// Pointer is an atomic unsafe-pointer-free reference cell, used for
// single-slot command handoff (DynamicCompositeAgent pending add/remove,
// AgentRunner's hot-swappable idle strategy) where the payload is itself a
// pointer-shaped Go value.
type Pointer[T any] struct {
	v atomic.Pointer[T]
}

func (a *Pointer[T]) LoadAcquire() *T                 { return a.v.Load() }
func (a *Pointer[T]) StoreRelease(val *T)             { a.v.Store(val) }
func (a *Pointer[T]) CompareAndSwapAcqRel(old, new *T) bool {
	return a.v.CompareAndSwap(old, new)
}
func (a *Pointer[T]) ExchangeAcqRel(val *T) *T { return a.v.Swap(val) }

// Counter is the minimal [external] AtomicCounter collaborator
// (increment-only error/event counters consumed by AgentRunner).
type Counter struct {
	v Int64
}

// NewCounter returns a ready-to-use Counter starting at zero.
func NewCounter() *Counter { return &Counter{} }

// Increment bumps the counter by one, release-ordered.
func (c *Counter) Increment() { c.v.AddAcqRel(1) }

// Get returns the current value.
func (c *Counter) Get() int64 { return c.v.LoadAcquire() }

// Pad is padding placed between hot fields owned by different threads to
// prevent false sharing: two cache lines, covering adjacent-line
// prefetchers that pull pairs of lines. A plain sized byte-array field,
// no struct-embedding chains required.
type Pad [128]byte
