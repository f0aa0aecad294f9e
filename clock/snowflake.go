// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package clock

import (
	"context"

	"code.forgecore.dev/corelf/atomicbuf"
	"code.forgecore.dev/corelf/corelferr"
	"code.forgecore.dev/corelf/idle"
)

// SnowflakeIdGenerator allocates strictly increasing 64-bit ids per node
// without locking: a single packed word holds the millisecond timestamp
// (offset by timestampOffsetMs) in its high bits and a per-millisecond
// sequence counter in its low bits, advanced by CAS. Node identity is
// folded into the id returned from each successful claim, not into the
// packed word itself, so concurrent nodes never contend on the same word.
type SnowflakeIdGenerator struct {
	nodeIdBits, sequenceBits int
	nodeId                   int64
	timestampOffsetMs        int64
	clock                    EpochClock

	nodeIdAndSequenceBits uint
	maxSequence           int64

	timestampSequence atomicbuf.Uint64
	spin              idle.Strategy
}

// NewSnowflakeIdGenerator validates its arguments and returns a generator
// for the given node. clock supplies the millisecond timestamps; pass
// System{} for the OS clock.
func NewSnowflakeIdGenerator(nodeIdBits, sequenceBits int, nodeId int64, timestampOffsetMs int64, clk EpochClock) (*SnowflakeIdGenerator, error) {
	if nodeIdBits < 0 || sequenceBits < 0 {
		return nil, corelferr.Newf(corelferr.KindInvalidArgument, "clock: nodeIdBits and sequenceBits must be >= 0")
	}
	if nodeIdBits+sequenceBits > 22 {
		return nil, corelferr.Newf(corelferr.KindInvalidArgument, "clock: nodeIdBits+sequenceBits must be <= 22, got %d", nodeIdBits+sequenceBits)
	}
	maxNodeId := int64(1)<<uint(nodeIdBits) - 1
	if nodeId < 0 || nodeId > maxNodeId {
		return nil, corelferr.Newf(corelferr.KindInvalidArgument, "clock: nodeId %d out of range [0, %d]", nodeId, maxNodeId)
	}
	if clk == nil {
		clk = System{}
	}
	now := clk.TimeMillis()
	if timestampOffsetMs < 0 || timestampOffsetMs > now {
		return nil, corelferr.Newf(corelferr.KindInvalidArgument, "clock: timestampOffsetMs %d out of range [0, %d]", timestampOffsetMs, now)
	}
	g := &SnowflakeIdGenerator{
		nodeIdBits:            nodeIdBits,
		sequenceBits:          sequenceBits,
		nodeId:                nodeId,
		timestampOffsetMs:     timestampOffsetMs,
		clock:                 clk,
		nodeIdAndSequenceBits: uint(nodeIdBits + sequenceBits),
		maxSequence:           int64(1)<<uint(sequenceBits) - 1,
		spin:                  idle.BusySpin{},
	}
	return g, nil
}

// NextId allocates the next id for this node, spin-waiting if the current
// millisecond's sequence space is exhausted. ctx cancellation during that
// spin-wait surfaces as a ThreadInterrupt error; an observed clock
// regression surfaces as ClockWentBackwards.
func (g *SnowflakeIdGenerator) NextId(ctx context.Context) (uint64, error) {
	for {
		select {
		case <-ctx.Done():
			return 0, corelferr.New(corelferr.KindThreadInterrupt, "clock: interrupted waiting for snowflake sequence")
		default:
		}

		old := g.timestampSequence.LoadAcquire()
		oldTs := int64(old >> g.nodeIdAndSequenceBits)
		oldSeq := int64(old) & g.maxSequence

		now := g.clock.TimeMillis() - g.timestampOffsetMs

		switch {
		case now > oldTs:
			candidate := uint64(now) << g.nodeIdAndSequenceBits
			if g.timestampSequence.CompareAndSwapAcqRel(old, candidate) {
				return candidate | (uint64(g.nodeId) << g.sequenceBits), nil
			}
		case now == oldTs && oldSeq < g.maxSequence:
			candidate := old + 1
			if g.timestampSequence.CompareAndSwapAcqRel(old, candidate) {
				return candidate | (uint64(g.nodeId) << g.sequenceBits), nil
			}
		case now == oldTs:
			g.spin.IdleForce()
		default:
			return 0, corelferr.Newf(corelferr.KindClockWentBackwards,
				"clock: observed timestamp %d behind previous %d", now, oldTs)
		}
	}
}
