// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command agent-demo hosts a small pipeline of Agents on an AgentRunner
// to exercise the duty-cycle runtime end to end: a generator feeding a
// bounded queue, a consumer draining it, composed under one
// DynamicCompositeAgent so either side can be added or removed live.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"code.forgecore.dev/corelf/agent"
	"code.forgecore.dev/corelf/idle"
	"code.forgecore.dev/corelf/queue"
)

var cli struct {
	Capacity int           `help:"Queue capacity." default:"1024"`
	Duration time.Duration `help:"How long to run before shutting down." default:"5s"`
}

type generator struct {
	agent.NopLifecycle
	q *queue.SPSC[int]
	n int
}

func (g *generator) RoleName() string { return "generator" }

func (g *generator) DoWork() (int, error) {
	g.n++
	if err := g.q.Enqueue(&g.n); err != nil {
		if queue.IsWouldBlock(err) {
			return 0, nil
		}
		return 0, err
	}
	return 1, nil
}

type consumer struct {
	agent.NopLifecycle
	q       *queue.SPSC[int]
	total   int
	logger  *zap.Logger
}

func (c *consumer) RoleName() string { return "consumer" }

func (c *consumer) DoWork() (int, error) {
	v, err := c.q.Dequeue()
	if err != nil {
		if queue.IsWouldBlock(err) {
			return 0, nil
		}
		return 0, err
	}
	c.total += v
	return 1, nil
}

func main() {
	kong.Parse(&cli)

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	q := queue.NewSPSC[int](cli.Capacity)
	gen := &generator{q: q}
	cons := &consumer{q: q, logger: logger}
	pipeline := agent.NewDynamicCompositeAgent("pipeline", gen, cons)

	runner := agent.NewAgentRunner(pipeline, &idle.Backoff{
		MaxSpins:  100,
		MaxYields: 100,
		MinPark:   time.Microsecond,
		MaxPark:   time.Millisecond,
	}, agent.NewZapErrorHandler(logger))

	if err := runner.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case <-time.After(cli.Duration):
	}

	if err := runner.Close(2 * time.Second); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Info("pipeline finished", zap.Int("consumed", cons.total))
}
