// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package idle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"code.forgecore.dev/corelf/idle"
)

func TestNoOpNeverBlocks(t *testing.T) {
	s := idle.NoOp{}
	start := time.Now()
	s.Idle(0)
	s.IdleForce()
	s.Reset()
	require.Less(t, time.Since(start), 10*time.Millisecond)
	require.Equal(t, "noop", s.Alias())
}

func TestBusySpinSkipsWhenWorkDone(t *testing.T) {
	s := idle.BusySpin{}
	start := time.Now()
	s.Idle(1)
	require.Less(t, time.Since(start), 5*time.Millisecond)
	require.Equal(t, "spin", s.Alias())
}

func TestSleepingParksForDuration(t *testing.T) {
	s := idle.Sleeping{Duration: 10 * time.Millisecond}
	start := time.Now()
	s.Idle(0)
	require.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	start = time.Now()
	s.Idle(1) // work done: must not sleep
	require.Less(t, time.Since(start), 5*time.Millisecond)
}

// TestBackoffStateMachine drives enough IdleForce calls to walk the
// spin -> yield -> park transitions and confirms parking actually sleeps
// for at least MinPark once the spin/yield budgets are exhausted.
func TestBackoffStateMachine(t *testing.T) {
	b := &idle.Backoff{MaxSpins: 1, MaxYields: 1, MinPark: 10 * time.Millisecond, MaxPark: 40 * time.Millisecond}

	start := time.Now()
	for i := 0; i < 4; i++ {
		b.IdleForce() // notIdle->spinning, spinning->yielding, yielding, yielding->parking
	}
	require.Less(t, time.Since(start), 10*time.Millisecond, "spin/yield transitions must not sleep")

	start = time.Now()
	b.IdleForce() // first parking call actually sleeps MinPark
	require.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	start = time.Now()
	b.IdleForce() // parkPeriod doubles to 20ms
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestBackoffResetOnProgress(t *testing.T) {
	b := &idle.Backoff{MaxSpins: 1, MaxYields: 1, MinPark: 10 * time.Millisecond, MaxPark: 40 * time.Millisecond}
	for i := 0; i < 4; i++ {
		b.IdleForce()
	}
	b.Idle(1) // progress resets state back to not-idle

	start := time.Now()
	for i := 0; i < 4; i++ {
		b.IdleForce()
	}
	require.Less(t, time.Since(start), 10*time.Millisecond, "reset must restart the spin/yield sequence")
	require.Equal(t, "backoff", b.Alias())
}

type fakeIndicator struct{ status idle.ControlledStatus }

func (f *fakeIndicator) Status() idle.ControlledStatus { return f.status }

func TestControllableDispatch(t *testing.T) {
	ind := &fakeIndicator{status: idle.StatusNoOp}
	c := &idle.Controllable{Indicator: ind, ParkPeriod: 10 * time.Millisecond}

	start := time.Now()
	c.Idle(0)
	require.Less(t, time.Since(start), 5*time.Millisecond)

	ind.status = idle.StatusPark
	start = time.Now()
	c.Idle(0)
	require.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)

	ind.status = idle.StatusBusySpin
	start = time.Now()
	c.Idle(1) // work done: must skip regardless of status
	require.Less(t, time.Since(start), 5*time.Millisecond)

	require.Equal(t, "controllable", c.Alias())
}

func TestFromAlias(t *testing.T) {
	for _, alias := range []string{"noop", "spin", "yield", "sleep", "backoff"} {
		s, err := idle.FromAlias(alias)
		require.NoError(t, err)
		require.Equal(t, alias, s.Alias())
	}

	_, err := idle.FromAlias("controllable")
	require.Error(t, err, "controllable needs a StatusIndicator")

	_, err = idle.FromAlias("bogus")
	require.Error(t, err)
}
