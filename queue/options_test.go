// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.forgecore.dev/corelf/queue"
)

type event struct{ id int }

func TestBuilderSelectsSPSC(t *testing.T) {
	q := queue.Build[event](queue.New(8).SingleProducer().SingleConsumer())
	require.IsType(t, &queue.SPSC[event]{}, q)
}

func TestBuilderSelectsMPSC(t *testing.T) {
	q := queue.Build[event](queue.New(8).SingleConsumer())
	require.IsType(t, &queue.MPSC[event]{}, q)
}

func TestBuilderSelectsSPMC(t *testing.T) {
	q := queue.Build[event](queue.New(8).SingleProducer())
	require.IsType(t, &queue.SPMC[event]{}, q)
}

func TestBuilderSelectsMPMC(t *testing.T) {
	q := queue.Build[event](queue.New(8))
	require.IsType(t, &queue.MPMC[event]{}, q)
}

func TestBuilderCompactSelectsSeqVariants(t *testing.T) {
	q := queue.Build[event](queue.New(8).Compact())
	require.IsType(t, &queue.MPMCSeq[event]{}, q)

	q = queue.Build[event](queue.New(8).SingleProducer().Compact())
	require.IsType(t, &queue.SPMCSeq[event]{}, q)

	q = queue.Build[event](queue.New(8).SingleConsumer().Compact())
	require.IsType(t, &queue.MPSCSeq[event]{}, q)
}

func TestBuildSPMCPanicsOnMismatchedConstraints(t *testing.T) {
	require.Panics(t, func() {
		queue.BuildSPMC[event](queue.New(8).SingleConsumer())
	})
}

func TestBuilderBuildIndirectAndPtr(t *testing.T) {
	ind := queue.New(8).SingleProducer().SingleConsumer().BuildIndirect()
	require.NoError(t, ind.Enqueue(42))
	v, err := ind.Dequeue()
	require.NoError(t, err)
	require.EqualValues(t, 42, v)

	ptr := queue.New(8).BuildPtr()
	require.NoError(t, ptr.Enqueue(nil))
	_, err = ptr.Dequeue()
	require.NoError(t, err)
}
