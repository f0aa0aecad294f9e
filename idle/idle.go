// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package idle provides the back-off family a duty cycle uses between
// ticks when doWork reports no progress, from a bare spin-wait hint up to
// an exponential spin/yield/park state machine, selectable by name.
package idle

import (
	"runtime"
	"time"

	"code.forgecore.dev/corelf/corelferr"
)

// Strategy is the four-method idle contract: idle(workCount) is a no-op
// when workCount > 0, idle() forces an idle step regardless, reset()
// clears any accumulated back-off state, and Alias names the strategy for
// registry lookup/logging.
type Strategy interface {
	Idle(workCount int)
	IdleForce()
	Reset()
	Alias() string
}

// NoOp returns immediately; useful when the caller's own loop already
// blocks (e.g. a channel receive) and doWork's return value is purely
// informational.
type NoOp struct{}

func (NoOp) Idle(int)    {}
func (NoOp) IdleForce()  {}
func (NoOp) Reset()      {}
func (NoOp) Alias() string { return "noop" }

// BusySpin hints to the CPU that this is a spin-wait loop (runtime.Gosched
// is the closest portable equivalent to a PAUSE instruction available
// without cgo or arch-specific assembly).
type BusySpin struct{}

func (BusySpin) Idle(workCount int) {
	if workCount <= 0 {
		runtime.Gosched()
	}
}
func (BusySpin) IdleForce()  { runtime.Gosched() }
func (BusySpin) Reset()      {}
func (BusySpin) Alias() string { return "spin" }

// Yielding yields the processor to the Go scheduler.
type Yielding struct{}

func (Yielding) Idle(workCount int) {
	if workCount <= 0 {
		runtime.Gosched()
	}
}
func (Yielding) IdleForce()  { runtime.Gosched() }
func (Yielding) Reset()      {}
func (Yielding) Alias() string { return "yield" }

// Sleeping parks the goroutine for a fixed duration.
type Sleeping struct {
	Duration time.Duration
}

func (s Sleeping) Idle(workCount int) {
	if workCount <= 0 {
		s.IdleForce()
	}
}
func (s Sleeping) IdleForce() { time.Sleep(s.Duration) }
func (Sleeping) Reset()       {}
func (Sleeping) Alias() string { return "sleep" }

type backoffState int

const (
	stateNotIdle backoffState = iota
	stateSpinning
	stateYielding
	stateParking
)

// Backoff implements the classic spin → yield → park state machine: up to
// maxSpins busy-spins, then up to maxYields scheduler yields, then parks
// with exponential back-off from minPark doubling up to maxPark. Reset
// clears the state machine back to not-idle, called whenever doWork makes
// progress again.
type Backoff struct {
	MaxSpins  int64
	MaxYields int64
	MinPark   time.Duration
	MaxPark   time.Duration

	state      backoffState
	spins      int64
	yields     int64
	parkPeriod time.Duration
}

func (b *Backoff) Idle(workCount int) {
	if workCount > 0 {
		b.Reset()
		return
	}
	b.IdleForce()
}

func (b *Backoff) IdleForce() {
	switch b.state {
	case stateNotIdle:
		b.state = stateSpinning
		b.spins++
	case stateSpinning:
		runtime.Gosched()
		b.spins++
		if b.spins > b.MaxSpins {
			b.state = stateYielding
			b.yields = 0
		}
	case stateYielding:
		b.yields++
		if b.yields > b.MaxYields {
			b.state = stateParking
			b.parkPeriod = b.MinPark
		} else {
			runtime.Gosched()
		}
	case stateParking:
		time.Sleep(b.parkPeriod)
		b.parkPeriod *= 2
		if b.parkPeriod > b.MaxPark {
			b.parkPeriod = b.MaxPark
		}
	}
}

func (b *Backoff) Reset() {
	b.state = stateNotIdle
	b.spins = 0
	b.yields = 0
	b.parkPeriod = 0
}

func (*Backoff) Alias() string { return "backoff" }

// StatusIndicator reports a strategy-selection hint for [Controllable],
// read fresh on every idle() call so an operator can retune a running
// agent's idle behavior without restarting it.
type StatusIndicator interface {
	Status() ControlledStatus
}

// ControlledStatus names the back-off behavior [Controllable] should
// dispatch to on its next call.
type ControlledStatus int

const (
	StatusNoOp ControlledStatus = iota
	StatusBusySpin
	StatusYield
	StatusPark
)

// Controllable dispatches to NoOp/BusySpin/Yielding/Sleeping based on a
// [StatusIndicator] read fresh every call, letting an external operator
// drive the idle behavior of a running agent.
type Controllable struct {
	Indicator  StatusIndicator
	ParkPeriod time.Duration

	spin  BusySpin
	yield Yielding
}

func (c *Controllable) Idle(workCount int) {
	if workCount > 0 {
		return
	}
	c.IdleForce()
}

func (c *Controllable) IdleForce() {
	switch c.Indicator.Status() {
	case StatusBusySpin:
		c.spin.IdleForce()
	case StatusYield:
		c.yield.IdleForce()
	case StatusPark:
		time.Sleep(c.ParkPeriod)
	default:
		// StatusNoOp: return immediately.
	}
}

func (*Controllable) Reset() {}
func (*Controllable) Alias() string { return "controllable" }

// Default back-off parameters used by [FromAlias] for "sleep" and
// "backoff"; chosen so an unconfigured strategy behaves sanely on a
// mostly-idle duty cycle without drowning a busy one in parks.
const (
	DefaultSleepPeriod = time.Millisecond
	DefaultMaxSpins    = 10
	DefaultMaxYields   = 5
	DefaultMinPark     = time.Microsecond
	DefaultMaxPark     = time.Millisecond
)

// FromAlias builds a strategy from its registry alias: "noop", "spin",
// "yield", "sleep", "backoff". Sleep and backoff use the Default*
// parameters above; construct the types directly to tune them.
// "controllable" is rejected because it cannot exist without a
// [StatusIndicator] — build a [Controllable] directly instead.
func FromAlias(alias string) (Strategy, error) {
	switch alias {
	case "noop":
		return NoOp{}, nil
	case "spin":
		return BusySpin{}, nil
	case "yield":
		return Yielding{}, nil
	case "sleep":
		return Sleeping{Duration: DefaultSleepPeriod}, nil
	case "backoff":
		return &Backoff{
			MaxSpins:  DefaultMaxSpins,
			MaxYields: DefaultMaxYields,
			MinPark:   DefaultMinPark,
			MaxPark:   DefaultMaxPark,
		}, nil
	case "controllable":
		return nil, corelferr.Newf(corelferr.KindInvalidArgument,
			"idle: %q requires a StatusIndicator; construct Controllable directly", alias)
	default:
		return nil, corelferr.Newf(corelferr.KindInvalidArgument, "idle: unknown strategy alias %q", alias)
	}
}
