// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

// Options configures queue creation and algorithm selection.
type Options struct {
	singleProducer bool
	singleConsumer bool
	compact        bool
	capacity       int
}

// Builder is a fluent constructor that picks the SPSC/MPSC/SPMC/MPMC
// algorithm from producer/consumer constraints, and the FAA-based default
// vs CAS-based Compact family from a performance hint.
//
// Example:
//
//	q := queue.Build[Event](queue.New(1024).SingleProducer().SingleConsumer())
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity. Capacity rounds up
// to the next power of two. Panics if capacity < 2.
func New(capacity int) *Builder {
	if capacity < 2 {
		panic("corelf/queue: capacity must be >= 2")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will enqueue.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will dequeue.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// Compact selects the CAS-based algorithm family (n physical slots)
// instead of the FAA-based default (2n slots). SPSC already uses n slots
// and ignores Compact().
func (b *Builder) Compact() *Builder {
	b.opts.compact = true
	return b
}

// Build creates a Queue[T] with automatic algorithm selection:
//
//	SingleProducer + SingleConsumer → SPSC
//	SingleProducer only             → SPMC (or SPMCSeq if Compact)
//	SingleConsumer only             → MPSC (or MPSCSeq if Compact)
//	neither                         → MPMC (or MPMCSeq if Compact)
func Build[T any](b *Builder) Queue[T] {
	switch {
	case b.opts.singleProducer && b.opts.singleConsumer:
		return NewSPSC[T](b.opts.capacity)
	case b.opts.singleProducer && b.opts.compact:
		return NewSPMCSeq[T](b.opts.capacity)
	case b.opts.singleProducer:
		return NewSPMC[T](b.opts.capacity)
	case b.opts.singleConsumer && b.opts.compact:
		return NewMPSCSeq[T](b.opts.capacity)
	case b.opts.singleConsumer:
		return NewMPSC[T](b.opts.capacity)
	case b.opts.compact:
		return NewMPMCSeq[T](b.opts.capacity)
	default:
		return NewMPMC[T](b.opts.capacity)
	}
}

// BuildSPSC creates an SPSC queue with compile-time type safety.
// Panics unless configured with SingleProducer().SingleConsumer().
func BuildSPSC[T any](b *Builder) *SPSC[T] {
	if !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("corelf/queue: BuildSPSC requires SingleProducer().SingleConsumer()")
	}
	return NewSPSC[T](b.opts.capacity)
}

// BuildMPSC creates an MPSC queue with compile-time type safety.
// Panics unless configured with SingleConsumer() only.
func BuildMPSC[T any](b *Builder) Queue[T] {
	if b.opts.singleProducer || !b.opts.singleConsumer {
		panic("corelf/queue: BuildMPSC requires SingleConsumer() without SingleProducer()")
	}
	if b.opts.compact {
		return NewMPSCSeq[T](b.opts.capacity)
	}
	return NewMPSC[T](b.opts.capacity)
}

// BuildSPMC creates an SPMC queue with compile-time type safety.
// Panics unless configured with SingleProducer() only.
func BuildSPMC[T any](b *Builder) Queue[T] {
	if !b.opts.singleProducer || b.opts.singleConsumer {
		panic("corelf/queue: BuildSPMC requires SingleProducer() without SingleConsumer()")
	}
	if b.opts.compact {
		return NewSPMCSeq[T](b.opts.capacity)
	}
	return NewSPMC[T](b.opts.capacity)
}

// BuildMPMC creates an MPMC queue with compile-time type safety.
// Panics if the builder has any constraint set.
func BuildMPMC[T any](b *Builder) Queue[T] {
	if b.opts.singleProducer || b.opts.singleConsumer {
		panic("corelf/queue: BuildMPMC requires no constraints")
	}
	if b.opts.compact {
		return NewMPMCSeq[T](b.opts.capacity)
	}
	return NewMPMC[T](b.opts.capacity)
}

// BuildIndirect creates a QueueIndirect for uintptr values.
func (b *Builder) BuildIndirect() QueueIndirect {
	switch {
	case b.opts.singleProducer && b.opts.singleConsumer:
		return NewSPSCIndirect(b.opts.capacity)
	case b.opts.compact && b.opts.singleProducer:
		return NewSPMCCompactIndirect(b.opts.capacity)
	case b.opts.compact && b.opts.singleConsumer:
		return NewMPSCCompactIndirect(b.opts.capacity)
	case b.opts.compact:
		return NewMPMCCompactIndirect(b.opts.capacity)
	case b.opts.singleProducer:
		return NewSPMCIndirect(b.opts.capacity)
	case b.opts.singleConsumer:
		return NewMPSCIndirect(b.opts.capacity)
	default:
		return NewMPMCIndirect(b.opts.capacity)
	}
}

// BuildPtr creates a QueuePtr for unsafe.Pointer values.
func (b *Builder) BuildPtr() QueuePtr {
	switch {
	case b.opts.singleProducer && b.opts.singleConsumer:
		return NewSPSCPtr(b.opts.capacity)
	case b.opts.singleProducer && b.opts.compact:
		return NewSPMCPtrSeq(b.opts.capacity)
	case b.opts.singleProducer:
		return NewSPMCPtr(b.opts.capacity)
	case b.opts.singleConsumer && b.opts.compact:
		return NewMPSCPtrSeq(b.opts.capacity)
	case b.opts.singleConsumer:
		return NewMPSCPtr(b.opts.capacity)
	case b.opts.compact:
		return NewMPMCPtrSeq(b.opts.capacity)
	default:
		return NewMPMCPtr(b.opts.capacity)
	}
}
