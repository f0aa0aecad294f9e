// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package broadcast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.forgecore.dev/corelf/broadcast"
)

func TestCopyReceiverDeliversAllAvailable(t *testing.T) {
	buf := newBuffer(t, 4)
	tx, err := broadcast.NewTransmitter(buf, recordSize)
	require.NoError(t, err)
	rx, err := broadcast.NewReceiver(buf)
	require.NoError(t, err)
	cp := broadcast.NewCopyReceiver(rx)

	require.NoError(t, tx.Transmit(1, []byte("a")))
	require.NoError(t, tx.Transmit(2, []byte("bb")))
	require.NoError(t, tx.Transmit(3, []byte("ccc")))

	var types []int32
	var payloads []string
	n, err := cp.Receive(func(typeID int32, payload []byte) {
		types = append(types, typeID)
		payloads = append(payloads, string(payload))
	})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []int32{1, 2, 3}, types)
	require.Equal(t, []string{"a", "bb", "ccc"}, payloads)

	n, err = cp.Receive(func(int32, []byte) { t.Fatal("no record expected") })
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestCopyReceiverSkipsLoss(t *testing.T) {
	buf := newBuffer(t, 4)
	tx, err := broadcast.NewTransmitter(buf, recordSize)
	require.NoError(t, err)
	rx, err := broadcast.NewReceiver(buf)
	require.NoError(t, err)
	cp := broadcast.NewCopyReceiver(rx)

	for i := 0; i < 10; i++ {
		require.NoError(t, tx.TransmitUint64(1, uint64(i)))
	}

	n, err := cp.Receive(func(int32, []byte) {})
	require.NoError(t, err)
	require.Greater(t, n, 0)
	require.GreaterOrEqual(t, cp.LostTransmissions(), int64(6))
}

func TestReceiveControlledBreak(t *testing.T) {
	buf := newBuffer(t, 4)
	tx, err := broadcast.NewTransmitter(buf, recordSize)
	require.NoError(t, err)
	rx, err := broadcast.NewReceiver(buf)
	require.NoError(t, err)
	cp := broadcast.NewCopyReceiver(rx)

	require.NoError(t, tx.Transmit(1, nil))
	require.NoError(t, tx.Transmit(2, nil))
	require.NoError(t, tx.Transmit(3, nil))

	n, err := cp.ReceiveControlled(func(typeID int32, _ []byte) broadcast.ControlledAction {
		if typeID == 2 {
			return broadcast.ActionBreak
		}
		return broadcast.ActionContinue
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// The third record is still pending.
	n, err = cp.Receive(func(int32, []byte) {})
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestReceiveControlledAbortRedelivers(t *testing.T) {
	buf := newBuffer(t, 4)
	tx, err := broadcast.NewTransmitter(buf, recordSize)
	require.NoError(t, err)
	rx, err := broadcast.NewReceiver(buf)
	require.NoError(t, err)
	cp := broadcast.NewCopyReceiver(rx)

	require.NoError(t, tx.Transmit(9, []byte("again")))

	n, err := cp.ReceiveControlled(func(int32, []byte) broadcast.ControlledAction {
		return broadcast.ActionAbort
	})
	require.NoError(t, err)
	require.Zero(t, n)

	// Aborted record is redelivered on the next pass.
	var redelivered string
	n, err = cp.Receive(func(_ int32, payload []byte) { redelivered = string(payload) })
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "again", redelivered)
}
