// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package agent

import (
	"context"
	"fmt"
	"time"

	"code.forgecore.dev/corelf/atomicbuf"
	"code.forgecore.dev/corelf/corelferr"
	"code.forgecore.dev/corelf/idle"
)

type runnerState uint32

const (
	runnerInit runnerState = iota
	runnerRunning
	runnerClosed
)

// AgentRunner hosts a single [Agent] on one dedicated goroutine for its
// entire lifetime: OnStart, a tight DoWork/Idle loop, then OnClose — the
// Go counterpart of a dedicated native thread, using a CAS-guarded state
// word in place of a thread handle so Start/Close are each safe to call
// exactly once from any goroutine.
type AgentRunner struct {
	agent        Agent
	errorHandler ErrorHandler
	errorCounter *atomicbuf.Counter

	idleStrategy atomicbuf.Pointer[idle.Strategy]
	state        atomicbuf.Uint32
	closeReq     atomicbuf.Bool
	done         chan struct{}
}

// NewAgentRunner builds a runner for agent, idling per idleStrategy between
// empty duty cycles and reporting non-terminal DoWork errors to
// errorHandler. A nil errorHandler installs a no-op *ZapErrorHandler.
func NewAgentRunner(a Agent, idleStrategy idle.Strategy, errorHandler ErrorHandler) *AgentRunner {
	if errorHandler == nil {
		errorHandler = NewZapErrorHandler(nil)
	}
	r := &AgentRunner{
		agent:        a,
		errorHandler: errorHandler,
		done:         make(chan struct{}),
	}
	r.idleStrategy.StoreRelease(&idleStrategy)
	return r
}

// SetErrorCounter installs an optional counter incremented once per
// non-terminal DoWork error, alongside the ErrorHandler call. Must be set
// before Start.
func (r *AgentRunner) SetErrorCounter(c *atomicbuf.Counter) { r.errorCounter = c }

// Start installs the runner's goroutine. Returns an error if called more
// than once.
func (r *AgentRunner) Start() error {
	if !r.state.CompareAndSwapAcqRel(uint32(runnerInit), uint32(runnerRunning)) {
		return corelferr.Newf(corelferr.KindInvalidArgument, "agent: runner for %q already started", r.agent.RoleName())
	}
	go r.run()
	return nil
}

func (r *AgentRunner) run() {
	defer close(r.done)
	defer r.state.StoreRelease(uint32(runnerClosed))

	if err := r.agent.OnStart(); err != nil {
		r.errorHandler.OnError(r.agent.RoleName(), err)
		return
	}
	defer func() {
		if err := r.agent.OnClose(); err != nil {
			r.errorHandler.OnError(r.agent.RoleName(), err)
		}
	}()

	for !r.closeReq.LoadAcquire() {
		workCount, err := r.agent.DoWork()
		if err != nil {
			if corelferr.IsTerminal(err) {
				return
			}
			if r.errorCounter != nil {
				r.errorCounter.Increment()
			}
			r.errorHandler.OnError(r.agent.RoleName(), err)
		}
		(*r.idleStrategy.LoadAcquire()).Idle(workCount)
	}
}

// SetIdleStrategy hot-swaps the idle strategy the running duty cycle uses
// on its next idle() call, without stopping the runner.
func (r *AgentRunner) SetIdleStrategy(s idle.Strategy) {
	r.idleStrategy.StoreRelease(&s)
}

// Close requests the duty-cycle loop to stop after its current DoWork
// call, then waits up to timeout for OnClose to complete. A non-positive
// timeout waits forever.
func (r *AgentRunner) Close(timeout time.Duration) error {
	r.closeReq.StoreRelease(true)
	if timeout <= 0 {
		<-r.done
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("agent: runner for %q did not close within %s", r.agent.RoleName(), timeout)
	}
}

// Done returns a channel closed once the hosted agent's OnClose has
// returned (or OnStart failed).
func (r *AgentRunner) Done() <-chan struct{} { return r.done }
