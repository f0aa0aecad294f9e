// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package queue provides bounded, lock-free FIFO queues for exchanging
// opaque element references between goroutines without allocation or
// blocking.
//
// Four producer/consumer patterns are offered:
//
//   - SPSC: Single-Producer Single-Consumer
//   - MPSC: Multi-Producer Single-Consumer
//   - SPMC: Single-Producer Multi-Consumer
//   - MPMC: Multi-Producer Multi-Consumer
//
// # Quick Start
//
//	q := queue.NewSPSC[Event](1024)
//	q := queue.NewMPMC[*Request](4096)
//
// The builder auto-selects an algorithm from constraints:
//
//	q := queue.Build[Event](queue.New(1024).SingleProducer().SingleConsumer()) // → SPSC
//	q := queue.Build[Event](queue.New(1024).SingleConsumer())                  // → MPSC
//	q := queue.Build[Event](queue.New(1024).SingleProducer())                  // → SPMC
//	q := queue.Build[Event](queue.New(1024))                                   // → MPMC
//
// # Basic Usage
//
//	q := queue.NewMPMC[int](1024)
//
//	val := 42
//	if err := q.Enqueue(&val); queue.IsWouldBlock(err) {
//	    // full — handle backpressure
//	}
//
//	elem, err := q.Dequeue()
//	if err == nil {
//	    fmt.Println(elem)
//	}
//
// # Value, Indirect, and Pointer flavors
//
//	Build[T]        - generic, type-safe queue for any T
//	BuildIndirect() - queue for uintptr values (pool indices, handles)
//	BuildPtr()      - queue for unsafe.Pointer values (zero-copy passing)
//
// # Algorithm Selection
//
// Default (FAA-based, 2n slots for capacity n):
//
//	SPSC: Lamport ring buffer (n slots, already optimal)
//	MPSC: FAA producers, sequential consumer
//	SPMC: sequential producer, FAA consumers
//	MPMC: FAA-based SCQ algorithm
//
// With Compact() (CAS-based, n slots for capacity n):
//
//	SPSC: same as default (already optimal)
//	MPSC: CAS producers, sequential consumer
//	SPMC: sequential producer, CAS consumers
//	MPMC: per-slot sequence-number algorithm
//
// FAA scales better under high contention but needs 2n physical slots.
// Compact() halves memory at the cost of contention scalability.
//
// # Graceful Shutdown
//
// FAA-based queues with multiple consumers (SPMC, MPMC) include a
// threshold mechanism that prevents livelock under contention. This can
// make Dequeue return ErrWouldBlock even when items remain, while waiting
// for producer activity to reset the threshold. Once producers are done,
// call Drain (type-assert to [Drainer]) so consumers can finish draining
// without threshold blocking. MPSC also implements Drainer, but its single
// consumer never consults the threshold, so Drain has no effect on it:
//
//	prodWg.Wait()
//	if d, ok := q.(queue.Drainer); ok {
//	    d.Drain()
//	}
//
// SPSC has no threshold mechanism and does not implement Drainer.
//
// # Thread Safety
//
// Each variant's name states its access pattern contract; violating it
// (e.g. two producers on an SPSC queue) causes data corruption, not a
// safe failure.
//
// # Capacity
//
// Capacity rounds up to the next power of two; minimum is 2.
//
// Size is intentionally omitted from the core [Queue] interface — an
// accurate element count in a lock-free ring requires cross-core
// synchronization the rest of the algorithm is built to avoid. [SPSC]
// offers Size as a best-effort diagnostic; treat it as an estimate.
package queue
