// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.forgecore.dev/corelf/queue"
)

func TestDrainWithRespectsLimit(t *testing.T) {
	q := queue.NewSPSC[int](8)
	for i := 1; i <= 5; i++ {
		v := i
		require.NoError(t, q.Enqueue(&v))
	}

	var got []int
	n := queue.DrainWith[int](q, func(v int) { got = append(got, v) }, 3)
	require.Equal(t, 3, n)
	require.Equal(t, []int{1, 2, 3}, got)

	// Remaining elements drain on the next call; stops at empty.
	n = queue.DrainWith[int](q, func(v int) { got = append(got, v) }, 10)
	require.Equal(t, 2, n)
	require.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestDrainAppend(t *testing.T) {
	q := queue.NewMPSC[string](8)
	for _, s := range []string{"x", "y", "z"} {
		s := s
		require.NoError(t, q.Enqueue(&s))
	}

	dst, n := queue.DrainAppend[string](q, nil, 10)
	require.Equal(t, 3, n)
	require.Equal(t, []string{"x", "y", "z"}, dst)

	dst, n = queue.DrainAppend[string](q, dst, 10)
	require.Zero(t, n)
	require.Len(t, dst, 3)
}
