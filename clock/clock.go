// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package clock provides the time sources the rest of the coordination
// fabric is specified against — epoch-millisecond, monotonic-nanosecond,
// and epoch-nanosecond — plus a cached variant that amortizes the
// syscall behind a release-stored field, and a Snowflake-style id
// generator built on the same CAS primitives as [code.forgecore.dev/corelf/atomicbuf].
package clock

import (
	"context"
	"time"

	"code.forgecore.dev/corelf/atomicbuf"
)

// EpochClock returns milliseconds since the Unix epoch.
type EpochClock interface {
	TimeMillis() int64
}

// NanoClock returns a monotonic nanosecond count with no defined epoch,
// suitable only for measuring elapsed durations.
type NanoClock interface {
	NanoTime() int64
}

// EpochNanoClock returns nanoseconds since the Unix epoch.
type EpochNanoClock interface {
	EpochNanos() int64
}

// System is the OS-backed implementation of all three clock interfaces.
type System struct{}

// monoBase anchors System.NanoTime to the monotonic clock reading that
// time.Now carries, so NanoTime never goes backwards with wall-clock steps.
var monoBase = time.Now()

func (System) TimeMillis() int64  { return time.Now().UnixMilli() }
func (System) NanoTime() int64    { return int64(time.Since(monoBase)) }
func (System) EpochNanos() int64  { return time.Now().UnixNano() }

// CachedEpochClock holds a millisecond timestamp updated via release-store
// by some other goroutine (see [StartCachedClockUpdater]), letting hot
// paths read the time without a syscall per call.
type CachedEpochClock struct {
	millis atomicbuf.Int64
}

// NewCachedEpochClock returns a CachedEpochClock seeded from source.
func NewCachedEpochClock(source EpochClock) *CachedEpochClock {
	c := &CachedEpochClock{}
	c.millis.StoreRelease(source.TimeMillis())
	return c
}

func (c *CachedEpochClock) TimeMillis() int64 { return c.millis.LoadAcquire() }

// Advance release-stores a new timestamp; called by the updater goroutine.
func (c *CachedEpochClock) Advance(millis int64) { c.millis.StoreRelease(millis) }

// CachedNanoClock is the monotonic-nanosecond counterpart of
// [CachedEpochClock].
type CachedNanoClock struct {
	nanos atomicbuf.Int64
}

// NewCachedNanoClock returns a CachedNanoClock seeded from source.
func NewCachedNanoClock(source NanoClock) *CachedNanoClock {
	c := &CachedNanoClock{}
	c.nanos.StoreRelease(source.NanoTime())
	return c
}

func (c *CachedNanoClock) NanoTime() int64 { return c.nanos.LoadAcquire() }

// Advance release-stores a new timestamp; called by the updater goroutine.
func (c *CachedNanoClock) Advance(nanos int64) { c.nanos.StoreRelease(nanos) }

// cachedUpdatable is satisfied by both cached clock types; Advance is the
// common seam [StartCachedClockUpdater] drives.
type cachedUpdatable interface {
	Advance(int64)
}

// StartCachedClockUpdater launches a goroutine that refreshes cached every
// period by reading sample, until ctx is done. This is the
// "some thread" the cached-clock contract requires but leaves
// unspecified — here one dedicated updater goroutine per call, refreshing
// the single cached clock passed in, so readers of that clock never
// re-sample individually.
func StartCachedClockUpdater(ctx context.Context, cached cachedUpdatable, sample func() int64, period time.Duration) {
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cached.Advance(sample())
			}
		}
	}()
}

// OffsetEpochNanoClock derives an epoch-nanosecond clock from a coarse
// EpochClock (millisecond resolution) and a NanoClock (monotonic,
// arbitrary epoch) by sampling the nanosecond clock immediately before
// and after a millisecond-clock read and keeping the narrowest bracket
// seen across up to maxSamples attempts, then tracking the two clocks'
// offset and resampling it after every resampleInterval to correct for
// wall-clock drift between the two sources.
type OffsetEpochNanoClock struct {
	epoch NanoClock
	nano  NanoClock

	maxSamples       int
	resampleInterval time.Duration

	offsetNanos  atomicbuf.Int64
	lastResample atomicbuf.Int64 // nano timestamp of the last resample
}

// epochAsNano adapts an EpochClock to NanoClock for internal sampling.
type epochAsNano struct{ EpochClock }

func (e epochAsNano) NanoTime() int64 { return e.TimeMillis() * int64(time.Millisecond) }

// NewOffsetEpochNanoClock builds an OffsetEpochNanoClock over epoch
// (millisecond resolution) and nano (monotonic nanoseconds), resampling
// the offset between them up to maxSamples times per computation and at
// least once every resampleInterval thereafter.
func NewOffsetEpochNanoClock(epoch EpochClock, nano NanoClock, maxSamples int, resampleInterval time.Duration) *OffsetEpochNanoClock {
	if maxSamples < 1 {
		maxSamples = 1
	}
	c := &OffsetEpochNanoClock{
		epoch:            epochAsNano{epoch},
		nano:             nano,
		maxSamples:       maxSamples,
		resampleInterval: resampleInterval,
	}
	c.resample()
	return c
}

func (c *OffsetEpochNanoClock) resample() {
	bestWindow := int64(-1)
	var bestOffset int64
	for i := 0; i < c.maxSamples; i++ {
		before := c.nano.NanoTime()
		epochNanos := c.epoch.NanoTime()
		after := c.nano.NanoTime()
		window := after - before
		if bestWindow == -1 || window < bestWindow {
			bestWindow = window
			mid := before + window/2
			bestOffset = epochNanos - mid
		}
	}
	c.offsetNanos.StoreRelease(bestOffset)
	c.lastResample.StoreRelease(c.nano.NanoTime())
}

// EpochNanos returns the current epoch-nanosecond estimate, resampling
// the offset first if resampleInterval has elapsed since the last one.
func (c *OffsetEpochNanoClock) EpochNanos() int64 {
	now := c.nano.NanoTime()
	if c.resampleInterval > 0 && now-c.lastResample.LoadAcquire() >= int64(c.resampleInterval) {
		c.resample()
	}
	return now + c.offsetNanos.LoadAcquire()
}
