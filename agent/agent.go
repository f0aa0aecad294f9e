// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package agent implements the duty-cycle runtime: a stateful [Agent]
// lifecycle, a single-threaded [AgentRunner] and a cooperative
// [AgentInvoker], composite hosting of multiple agents as one, and the
// error-isolation policy that keeps one misbehaving agent from taking
// down its host loop.
//
// A duty cycle is one call to Agent.DoWork followed by
// [code.forgecore.dev/corelf/idle.Strategy.Idle] of the returned work
// count — the back-off contract [code.forgecore.dev/corelf/idle]
// implements.
package agent

import "code.forgecore.dev/corelf/corelferr"

// Agent is a stateful unit of work driven by one thread for its entire
// lifetime: OnStart, then repeated DoWork, then OnClose — always the
// same goroutine.
type Agent interface {
	// OnStart is called once before the first DoWork.
	OnStart() error
	// DoWork performs one duty cycle and returns the amount of progress
	// made (>= 0), consumed by an IdleStrategy to decide whether to back
	// off. Returning an error that satisfies corelferr.IsTerminal ends
	// the hosting loop cleanly; any other error is forwarded to the
	// host's ErrorHandler and the loop continues.
	DoWork() (int, error)
	// OnClose is called exactly once, after the last DoWork.
	OnClose() error
	// RoleName identifies the agent for logging/diagnostics.
	RoleName() string
}

// NopLifecycle is embeddable by Agent implementations that only need
// DoWork/RoleName, giving them no-op OnStart/OnClose for free.
type NopLifecycle struct{}

func (NopLifecycle) OnStart() error { return nil }
func (NopLifecycle) OnClose() error { return nil }

// Terminate is returned by DoWork to end the hosting loop cleanly. It is
// an alias of corelferr.Terminal for readability at call sites.
var Terminate = corelferr.Terminal
