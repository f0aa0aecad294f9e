// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package agent

import (
	"go.uber.org/multierr"

	"code.forgecore.dev/corelf/atomicbuf"
	"code.forgecore.dev/corelf/corelferr"
)

type dcState uint32

const (
	dcInit dcState = iota
	dcActive
	dcClosed
)

// DynamicCompositeAgent hosts a runtime-adjustable set of agents as a
// single Agent. Add/Remove may be called from any goroutine; the actual
// slice mutation, and the added/removed agent's OnStart/OnClose call,
// happen on the hosting thread's next DoWork so child lifecycle callbacks
// are never invoked concurrently with DoWork — the same single-writer
// contract [code.forgecore.dev/corelf/queue]'s ring buffers rely on,
// applied to agent-set membership instead of ring slots.
//
// Only one pending add and one pending remove may be outstanding at a
// time: Add/Remove CAS-install into a single-slot mailbox and report
// failure (queue-full style) if a previous request hasn't drained yet,
// rather than queueing unboundedly.
//
// An agent added after OnStart has already run is started the cycle it
// is actually spliced into the set, not retroactively — it never receives
// a start call it didn't live through.
type DynamicCompositeAgent struct {
	roleName string
	agents   []Agent

	pendingAdd    atomicbuf.Pointer[Agent]
	pendingRemove atomicbuf.Pointer[Agent]
	state         atomicbuf.Uint32

	addCompleted    atomicbuf.Bool
	removeCompleted atomicbuf.Bool
}

// NewDynamicCompositeAgent builds a dynamic composite naming itself
// roleName, initially hosting agents.
func NewDynamicCompositeAgent(roleName string, agents ...Agent) *DynamicCompositeAgent {
	return &DynamicCompositeAgent{roleName: roleName, agents: append([]Agent(nil), agents...)}
}

// Add requests a to be spliced into the hosted set on the next DoWork
// cycle, calling a.OnStart() at that point. Returns QueueFull if another
// add is already pending.
func (d *DynamicCompositeAgent) Add(a Agent) error {
	if dcState(d.state.LoadAcquire()) != dcActive {
		return corelferr.Newf(corelferr.KindInvalidArgument, "agent: %q is not active", d.roleName)
	}
	if !d.pendingAdd.CompareAndSwapAcqRel(nil, &a) {
		return corelferr.Newf(corelferr.KindQueueFull, "agent: add already pending for %q", d.roleName)
	}
	d.addCompleted.StoreRelease(false)
	return nil
}

// Remove requests a be spliced out of the hosted set on the next DoWork
// cycle, calling a.OnClose() at that point. Returns QueueFull if another
// remove is already pending.
func (d *DynamicCompositeAgent) Remove(a Agent) error {
	if dcState(d.state.LoadAcquire()) != dcActive {
		return corelferr.Newf(corelferr.KindInvalidArgument, "agent: %q is not active", d.roleName)
	}
	if !d.pendingRemove.CompareAndSwapAcqRel(nil, &a) {
		return corelferr.Newf(corelferr.KindQueueFull, "agent: remove already pending for %q", d.roleName)
	}
	d.removeCompleted.StoreRelease(false)
	return nil
}

// HasAddAgentCompleted reports whether the most recently requested Add has
// been processed (its OnStart has returned). An agent whose OnStart
// returned an error is not spliced into the hosted set.
func (d *DynamicCompositeAgent) HasAddAgentCompleted() bool { return d.addCompleted.LoadAcquire() }

// HasRemoveAgentCompleted reports whether the most recently requested
// Remove has been spliced out of the hosted set (its OnClose has returned).
func (d *DynamicCompositeAgent) HasRemoveAgentCompleted() bool {
	return d.removeCompleted.LoadAcquire()
}

func (d *DynamicCompositeAgent) OnStart() error {
	d.state.StoreRelease(uint32(dcActive))
	var errs error
	for _, a := range d.agents {
		if err := a.OnStart(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (d *DynamicCompositeAgent) DoWork() (int, error) {
	var errs error

	if p := d.pendingAdd.ExchangeAcqRel(nil); p != nil {
		a := *p
		if err := a.OnStart(); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			d.agents = append(d.agents, a)
		}
		d.addCompleted.StoreRelease(true)
	}
	if p := d.pendingRemove.ExchangeAcqRel(nil); p != nil {
		target := *p
		for i, a := range d.agents {
			if a == target {
				d.agents = append(d.agents[:i], d.agents[i+1:]...)
				break
			}
		}
		if err := target.OnClose(); err != nil {
			errs = multierr.Append(errs, err)
		}
		d.removeCompleted.StoreRelease(true)
	}

	total := 0
	for _, a := range d.agents {
		n, err := a.DoWork()
		total += n
		if err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return total, errs
}

func (d *DynamicCompositeAgent) OnClose() error {
	d.state.StoreRelease(uint32(dcClosed))
	var errs error
	for _, a := range d.agents {
		if err := a.OnClose(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	d.agents = nil
	return errs
}

func (d *DynamicCompositeAgent) RoleName() string { return d.roleName }
