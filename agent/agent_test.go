// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package agent_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"code.forgecore.dev/corelf/agent"
	"code.forgecore.dev/corelf/atomicbuf"
	"code.forgecore.dev/corelf/idle"
)

type fnAgent struct {
	agent.NopLifecycle
	role   string
	doWork func() (int, error)
}

func (a *fnAgent) DoWork() (int, error) { return a.doWork() }
func (a *fnAgent) RoleName() string     { return a.role }

func TestAgentInvokerLifecycle(t *testing.T) {
	var started, workCalls, closed int
	a := &fnAgent{role: "x", doWork: func() (int, error) { workCalls++; return 1, nil }}
	a.NopLifecycle = agent.NopLifecycle{}

	inv := agent.NewAgentInvoker(a, nil)
	require.NoError(t, inv.Start())
	require.Error(t, inv.Start(), "starting twice must fail")

	for i := 0; i < 5; i++ {
		n := inv.Invoke()
		require.Equal(t, 1, n)
	}
	require.Equal(t, 5, workCalls)

	require.NoError(t, inv.Close())
	require.Equal(t, 0, inv.Invoke(), "invoke after close is a no-op")
	_ = started
	_ = closed
}

// TestAgentInvokerErrorIsolation: an agent
// whose DoWork fails on every third invocation must not stop the loop,
// and the error handler must observe exactly N/3 errors after N calls.
func TestAgentInvokerErrorIsolation(t *testing.T) {
	const n = 30
	calls := 0
	a := &fnAgent{role: "flaky", doWork: func() (int, error) {
		calls++
		if calls%3 == 0 {
			return 0, errors.New("transient failure")
		}
		return 1, nil
	}}

	var mu sync.Mutex
	errCount := 0
	handler := agent.ErrorHandlerFunc(func(roleName string, err error) {
		mu.Lock()
		defer mu.Unlock()
		require.Equal(t, "flaky", roleName)
		errCount++
	})

	inv := agent.NewAgentInvoker(a, handler)
	require.NoError(t, inv.Start())
	for i := 0; i < n; i++ {
		inv.Invoke()
	}
	require.Equal(t, n, calls, "the loop must keep running despite errors")
	require.Equal(t, n/3, errCount)
}

func TestAgentRunnerTerminalErrorStopsLoop(t *testing.T) {
	calls := 0
	a := &fnAgent{role: "terminal", doWork: func() (int, error) {
		calls++
		if calls == 3 {
			return 0, agent.Terminate
		}
		return 1, nil
	}}

	r := agent.NewAgentRunner(a, idle.BusySpin{}, nil)
	require.NoError(t, r.Start())
	// Wait for the terminal error to end the loop on its own; closing
	// straight away could stop the loop before the third DoWork.
	<-r.Done()
	require.NoError(t, r.Close(5*time.Second))
	require.Equal(t, 3, calls)
}

func TestAgentRunnerErrorCounter(t *testing.T) {
	const n = 9
	calls := 0
	done := make(chan struct{})
	a := &fnAgent{role: "counted", doWork: func() (int, error) {
		calls++
		if calls == n {
			close(done)
			return 0, agent.Terminate
		}
		if calls%3 == 0 {
			return 0, errors.New("transient failure")
		}
		return 1, nil
	}}

	counter := atomicbuf.NewCounter()
	r := agent.NewAgentRunner(a, idle.BusySpin{}, agent.ErrorHandlerFunc(func(string, error) {}))
	r.SetErrorCounter(counter)
	require.NoError(t, r.Start())
	<-done
	require.NoError(t, r.Close(5*time.Second))
	require.Equal(t, n, calls)
	require.EqualValues(t, 2, counter.Get(), "errors at calls 3 and 6; terminal at 9 is not counted")
}

func TestAgentRunnerSetIdleStrategy(t *testing.T) {
	a := &fnAgent{role: "swap", doWork: func() (int, error) { return 0, nil }}
	r := agent.NewAgentRunner(a, idle.NoOp{}, nil)
	require.NoError(t, r.Start())
	r.SetIdleStrategy(idle.BusySpin{})
	require.NoError(t, r.Close(5*time.Second))
}

func TestCompositeAgentAggregatesErrors(t *testing.T) {
	good := &fnAgent{role: "good", doWork: func() (int, error) { return 1, nil }}
	bad1 := &fnAgent{role: "bad1", doWork: func() (int, error) { return 0, errors.New("bad1") }}
	bad2 := &fnAgent{role: "bad2", doWork: func() (int, error) { return 0, errors.New("bad2") }}

	c := agent.NewCompositeAgent("composite", good, bad1, bad2)
	require.NoError(t, c.OnStart())

	total, err := c.DoWork()
	require.Equal(t, 1, total)
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad1")
	require.Contains(t, err.Error(), "bad2")

	require.NoError(t, c.OnClose())
}

func TestCompositeAgentDefaultRoleName(t *testing.T) {
	a1 := &fnAgent{role: "a", doWork: func() (int, error) { return 0, nil }}
	a2 := &fnAgent{role: "b", doWork: func() (int, error) { return 0, nil }}
	c := agent.NewCompositeAgent("", a1, a2)
	require.Equal(t, "[a,b]", c.RoleName())
}

// TestDynamicCompositeAgentSpliceTiming: Add
// returns success immediately, completion is false until the next DoWork
// pass processes the splice, and the spliced agent's OnStart is invoked
// exactly once on the hosting call.
func TestDynamicCompositeAgentSpliceTiming(t *testing.T) {
	base := &fnAgent{role: "base", doWork: func() (int, error) { return 1, nil }}
	d := agent.NewDynamicCompositeAgent("dyn", base)
	require.NoError(t, d.OnStart())

	starts := 0
	added := &fnAgent{role: "added", doWork: func() (int, error) { return 1, nil }}
	added.NopLifecycle = agent.NopLifecycle{}
	wrapped := &startCountingAgent{fnAgent: added, onStart: func() { starts++ }}

	require.NoError(t, d.Add(wrapped))
	require.False(t, d.HasAddAgentCompleted())
	require.Equal(t, 0, starts)

	n, err := d.DoWork()
	require.NoError(t, err)
	require.Equal(t, 2, n, "base + newly spliced agent both ran this cycle")
	require.True(t, d.HasAddAgentCompleted())
	require.Equal(t, 1, starts)

	// A second DoWork pass must not start it again.
	_, err = d.DoWork()
	require.NoError(t, err)
	require.Equal(t, 1, starts)
}

func TestDynamicCompositeAgentRemove(t *testing.T) {
	closes := 0
	removable := &startCountingAgent{
		fnAgent: &fnAgent{role: "removable", doWork: func() (int, error) { return 1, nil }},
		onClose: func() { closes++ },
	}
	d := agent.NewDynamicCompositeAgent("dyn", removable)
	require.NoError(t, d.OnStart())

	require.NoError(t, d.Remove(removable))
	require.False(t, d.HasRemoveAgentCompleted())

	n, err := d.DoWork()
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.True(t, d.HasRemoveAgentCompleted())
	require.Equal(t, 1, closes)
}

func TestDynamicCompositeAgentAddAlreadyPending(t *testing.T) {
	d := agent.NewDynamicCompositeAgent("dyn")
	a1 := &fnAgent{role: "a1", doWork: func() (int, error) { return 0, nil }}
	a2 := &fnAgent{role: "a2", doWork: func() (int, error) { return 0, nil }}

	require.Error(t, d.Add(a1), "add before OnStart must fail")
	require.NoError(t, d.OnStart())
	require.NoError(t, d.Add(a1))
	require.Error(t, d.Add(a2))

	require.NoError(t, d.OnClose())
	require.Error(t, d.Add(a2), "add after OnClose must fail")
}

type startCountingAgent struct {
	*fnAgent
	onStart func()
	onClose func()
}

func (a *startCountingAgent) OnStart() error {
	if a.onStart != nil {
		a.onStart()
	}
	return nil
}

func (a *startCountingAgent) OnClose() error {
	if a.onClose != nil {
		a.onClose()
	}
	return nil
}
