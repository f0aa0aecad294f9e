// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.forgecore.dev/corelf/queue"
)

// TestSPSCRoundTrip: capacity 4, four
// successful offers, a fifth that would block, then FIFO drain.
func TestSPSCRoundTrip(t *testing.T) {
	q := queue.NewSPSC[int](4)
	require.Equal(t, 4, q.Cap())

	for i := 1; i <= 4; i++ {
		v := i
		require.NoError(t, q.Enqueue(&v))
	}

	overflow := 5
	err := q.Enqueue(&overflow)
	require.True(t, queue.IsWouldBlock(err))

	for i := 1; i <= 4; i++ {
		v, err := q.Dequeue()
		require.NoError(t, err)
		require.Equal(t, i, v)
	}

	_, err = q.Dequeue()
	require.True(t, queue.IsWouldBlock(err))
}

func TestSPSCSizeEstimate(t *testing.T) {
	q := queue.NewSPSC[int](4)
	require.Equal(t, 0, q.Size())

	for i := 0; i < 3; i++ {
		v := i
		require.NoError(t, q.Enqueue(&v))
	}
	require.Equal(t, 3, q.Size())

	_, err := q.Dequeue()
	require.NoError(t, err)
	require.Equal(t, 2, q.Size())
}

func TestSPSCCapacityRoundsToPowerOfTwo(t *testing.T) {
	q := queue.NewSPSC[int](3)
	require.Equal(t, 4, q.Cap())
}

func TestSPSCCapacityPanicsBelowTwo(t *testing.T) {
	require.Panics(t, func() { queue.NewSPSC[int](1) })
}

func TestSPSCIndirectRoundTrip(t *testing.T) {
	q := queue.NewSPSCIndirect(4)
	require.NoError(t, q.Enqueue(0xdead))
	v, err := q.Dequeue()
	require.NoError(t, err)
	require.EqualValues(t, 0xdead, v)
}
