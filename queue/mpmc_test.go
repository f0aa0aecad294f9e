// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"code.forgecore.dev/corelf/queue"
)

// TestMPMCSeqFullAndDrain: capacity 2, two
// producers each try to offer two items (four attempts total), exactly
// two succeed, the consumer drains both, and a subsequent poll finds the
// queue empty.
func TestMPMCSeqFullAndDrain(t *testing.T) {
	q := queue.NewMPMCSeq[int](2)

	var wg sync.WaitGroup
	var succeeded int32
	var mu sync.Mutex
	attempt := func(base int) {
		defer wg.Done()
		for i := 0; i < 2; i++ {
			v := base + i
			if err := q.Enqueue(&v); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}
	}
	wg.Add(2)
	go attempt(100)
	go attempt(200)
	wg.Wait()

	require.EqualValues(t, 2, succeeded, "only capacity-many offers may succeed")

	seen := map[int]bool{}
	for i := 0; i < 2; i++ {
		v, err := q.Dequeue()
		require.NoError(t, err)
		seen[v] = true
	}
	require.Len(t, seen, 2)

	_, err := q.Dequeue()
	require.True(t, queue.IsWouldBlock(err))
}

func TestMPMCRoundTrip(t *testing.T) {
	q := queue.NewMPMC[string](4)
	val := "hello"
	require.NoError(t, q.Enqueue(&val))
	v, err := q.Dequeue()
	require.NoError(t, err)
	require.Equal(t, "hello", v)
}

func TestMPMCConcurrentProducersConsumers(t *testing.T) {
	const n = 2000
	q := queue.NewMPMC[int](64)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			v := i
			for q.Enqueue(&v) != nil {
			}
		}
	}()

	sum := 0
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for {
				v, err := q.Dequeue()
				if err == nil {
					sum += v
					break
				}
			}
		}
	}()
	wg.Wait()
	require.Equal(t, n*(n-1)/2, sum)
}

func TestMPMCDrainerUnblocksConsumer(t *testing.T) {
	q := queue.NewMPMC[int](2)
	v := 1
	require.NoError(t, q.Enqueue(&v))

	// Drain on a queue that still holds a published element must leave the
	// consumer able to take it. The livelock-prevention threshold is not
	// exhausted here: every successful Enqueue re-arms it.
	q.Drain()
	got, err := q.Dequeue()
	require.NoError(t, err)
	require.Equal(t, 1, got)
}
