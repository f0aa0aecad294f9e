// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package clock_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"code.forgecore.dev/corelf/clock"
)

type fixedEpoch struct{ millis int64 }

func (f fixedEpoch) TimeMillis() int64 { return f.millis }

type fixedNano struct{ nanos int64 }

func (f fixedNano) NanoTime() int64 { return f.nanos }

func TestSystemClocksMonotonicallyProgress(t *testing.T) {
	var sys clock.System
	m1 := sys.TimeMillis()
	time.Sleep(2 * time.Millisecond)
	m2 := sys.TimeMillis()
	require.GreaterOrEqual(t, m2, m1)
}

func TestCachedEpochClock(t *testing.T) {
	c := clock.NewCachedEpochClock(fixedEpoch{millis: 1000})
	require.EqualValues(t, 1000, c.TimeMillis())
	c.Advance(2000)
	require.EqualValues(t, 2000, c.TimeMillis())
}

func TestCachedNanoClock(t *testing.T) {
	c := clock.NewCachedNanoClock(fixedNano{nanos: 5})
	require.EqualValues(t, 5, c.NanoTime())
	c.Advance(10)
	require.EqualValues(t, 10, c.NanoTime())
}

func TestStartCachedClockUpdaterRefreshes(t *testing.T) {
	c := clock.NewCachedEpochClock(fixedEpoch{millis: 0})
	var source int64
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock.StartCachedClockUpdater(ctx, c, func() int64 { return atomic.LoadInt64(&source) }, time.Millisecond)

	atomic.StoreInt64(&source, 42)
	require.Eventually(t, func() bool {
		return c.TimeMillis() == 42
	}, time.Second, time.Millisecond)
}

func TestOffsetEpochNanoClockTracksEpoch(t *testing.T) {
	nano := fixedNano{nanos: 1_000_000}
	epoch := fixedEpoch{millis: 1700}
	c := clock.NewOffsetEpochNanoClock(epoch, nano, 3, 0)
	require.InDelta(t, epoch.TimeMillis()*int64(time.Millisecond), c.EpochNanos(), float64(time.Millisecond))
}

// fakeMsClock returns base for the first holdCalls calls to TimeMillis
// and base+1 afterward, letting a test deterministically trigger
// Snowflake's spin-then-advance path without wall-clock sleeps.
type fakeMsClock struct {
	calls     int64
	base      int64
	holdCalls int64
}

func (f *fakeMsClock) TimeMillis() int64 {
	n := atomic.AddInt64(&f.calls, 1)
	if n <= f.holdCalls {
		return f.base
	}
	return f.base + 1
}

// TestSnowflakeSaturation: nodeIdBits=10,
// sequenceBits=12 exhausts the 4096-id-per-millisecond sequence space,
// the 4097th call must block until the clock advances, then succeed with
// a strictly greater id than the last one issued in the prior millisecond.
func TestSnowflakeSaturation(t *testing.T) {
	fc := &fakeMsClock{base: 1_000_000, holdCalls: 4100}
	gen, err := clock.NewSnowflakeIdGenerator(10, 12, 1, 0, fc)
	require.NoError(t, err)

	var ids []uint64
	for i := 0; i < 4096; i++ {
		id, err := gen.NextId(context.Background())
		require.NoError(t, err)
		if i > 0 {
			require.Greater(t, id, ids[i-1])
		}
		ids = append(ids, id)
	}

	next, err := gen.NextId(context.Background())
	require.NoError(t, err)
	require.Greater(t, next, ids[len(ids)-1])
}

func TestSnowflakeRejectsOversizedBits(t *testing.T) {
	_, err := clock.NewSnowflakeIdGenerator(16, 10, 0, 0, clock.System{})
	require.Error(t, err)
}

func TestSnowflakeRejectsOutOfRangeNodeId(t *testing.T) {
	_, err := clock.NewSnowflakeIdGenerator(4, 4, 100, 0, clock.System{})
	require.Error(t, err)
}

// sequenceClock returns successive values from a fixed list, repeating
// the last one once exhausted.
type sequenceClock struct {
	calls  int64
	values []int64
}

func (s *sequenceClock) TimeMillis() int64 {
	n := atomic.AddInt64(&s.calls, 1) - 1
	if int(n) >= len(s.values) {
		return s.values[len(s.values)-1]
	}
	return s.values[n]
}

func TestSnowflakeClockWentBackwards(t *testing.T) {
	sc := &sequenceClock{values: []int64{1000, 1000, 500}}
	gen, err := clock.NewSnowflakeIdGenerator(4, 4, 0, 0, sc)
	require.NoError(t, err)

	_, err = gen.NextId(context.Background())
	require.NoError(t, err)

	_, err = gen.NextId(context.Background())
	require.Error(t, err)
}

func TestSnowflakeContextCancellation(t *testing.T) {
	fc := &fakeMsClock{base: 1000, holdCalls: 1 << 30}
	gen, err := clock.NewSnowflakeIdGenerator(1, 1, 0, 0, fc)
	require.NoError(t, err)

	_, err = gen.NextId(context.Background())
	require.NoError(t, err)
	_, err = gen.NextId(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gen.NextId(ctx)
	require.Error(t, err)
}
