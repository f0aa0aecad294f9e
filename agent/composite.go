// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package agent

import (
	"strings"

	"go.uber.org/multierr"
)

// CompositeAgent hosts a fixed set of agents as a single Agent: OnStart
// starts each child in order, DoWork calls each child's DoWork once per
// cycle and sums the work counts, and OnClose closes every child
// regardless of earlier failures, aggregating all of their errors via
// multierr so a failure in child 2 never hides a failure in child 3.
//
// The agent set is fixed at construction. Use [DynamicCompositeAgent] for
// runtime add/remove.
type CompositeAgent struct {
	roleName string
	agents   []Agent
}

// NewCompositeAgent builds a static composite naming itself roleName and
// hosting agents in the given order.
func NewCompositeAgent(roleName string, agents ...Agent) *CompositeAgent {
	return &CompositeAgent{roleName: roleName, agents: agents}
}

func (c *CompositeAgent) OnStart() error {
	var errs error
	for _, a := range c.agents {
		if err := a.OnStart(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (c *CompositeAgent) DoWork() (int, error) {
	total := 0
	var errs error
	for _, a := range c.agents {
		n, err := a.DoWork()
		total += n
		if err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return total, errs
}

func (c *CompositeAgent) OnClose() error {
	var errs error
	for _, a := range c.agents {
		if err := a.OnClose(); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (c *CompositeAgent) RoleName() string {
	if c.roleName != "" {
		return c.roleName
	}
	names := make([]string, len(c.agents))
	for i, a := range c.agents {
		names[i] = a.RoleName()
	}
	return "[" + strings.Join(names, ",") + "]"
}
