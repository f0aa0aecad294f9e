// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package agent

import (
	"code.forgecore.dev/corelf/atomicbuf"
	"code.forgecore.dev/corelf/corelferr"
)

type invokerState uint32

const (
	invokerInit invokerState = iota
	invokerStarted
	invokerClosed
)

// AgentInvoker hosts an Agent cooperatively: the caller's own loop calls
// Invoke repeatedly instead of the agent owning a dedicated goroutine, the
// non-threaded counterpart to [AgentRunner]. Useful for embedding an Agent
// into an existing event loop (an HTTP handler's background maintenance,
// a test harness driving duty cycles deterministically) without paying
// for a goroutine.
type AgentInvoker struct {
	agent        Agent
	errorHandler ErrorHandler
	state        atomicbuf.Uint32
}

// NewAgentInvoker builds a non-threaded host for agent. A nil errorHandler
// installs a no-op *ZapErrorHandler.
func NewAgentInvoker(a Agent, errorHandler ErrorHandler) *AgentInvoker {
	if errorHandler == nil {
		errorHandler = NewZapErrorHandler(nil)
	}
	return &AgentInvoker{agent: a, errorHandler: errorHandler}
}

// Start calls the agent's OnStart exactly once. Returns an error if
// called more than once or after Close.
func (i *AgentInvoker) Start() error {
	if !i.state.CompareAndSwapAcqRel(uint32(invokerInit), uint32(invokerStarted)) {
		return corelferr.Newf(corelferr.KindInvalidArgument, "agent: invoker for %q already started", i.agent.RoleName())
	}
	if err := i.agent.OnStart(); err != nil {
		i.state.StoreRelease(uint32(invokerClosed))
		return err
	}
	return nil
}

// Invoke performs exactly one DoWork call and returns its work count.
// A terminal error closes the invoker (calling OnClose) and returns 0
// thereafter; any other error is forwarded to the ErrorHandler. Invoke is
// a no-op once closed.
func (i *AgentInvoker) Invoke() int {
	if invokerState(i.state.LoadAcquire()) != invokerStarted {
		return 0
	}
	workCount, err := i.agent.DoWork()
	if err != nil {
		if corelferr.IsTerminal(err) {
			_ = i.Close()
			return workCount
		}
		i.errorHandler.OnError(i.agent.RoleName(), err)
	}
	return workCount
}

// Close calls the agent's OnClose exactly once. Calling Close when not
// started, or more than once, is a no-op.
func (i *AgentInvoker) Close() error {
	if !i.state.CompareAndSwapAcqRel(uint32(invokerStarted), uint32(invokerClosed)) {
		return nil
	}
	return i.agent.OnClose()
}
