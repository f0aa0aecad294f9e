// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package broadcast_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.forgecore.dev/corelf/broadcast"
)

func TestTryClaimCommitRoundTrip(t *testing.T) {
	buf := newBuffer(t, 4)
	tx, err := broadcast.NewTransmitter(buf, recordSize)
	require.NoError(t, err)
	rx, err := broadcast.NewReceiver(buf)
	require.NoError(t, err)

	claim, err := tx.TryClaim(7, 5)
	require.NoError(t, err)
	copy(claim.Payload(), "world")

	// Not yet committed: nothing for the receiver.
	result, err := rx.ReceiveNext()
	require.NoError(t, err)
	require.Equal(t, broadcast.NotAvailable, result)

	require.NoError(t, claim.Commit())

	result, err = rx.ReceiveNext()
	require.NoError(t, err)
	require.Equal(t, broadcast.Available, result)
	require.EqualValues(t, 7, rx.TypeID())
	got, err := rx.Payload()
	require.NoError(t, err)
	require.Equal(t, []byte("world"), got)
}

func TestTryClaimAbortReusesSequence(t *testing.T) {
	buf := newBuffer(t, 4)
	tx, err := broadcast.NewTransmitter(buf, recordSize)
	require.NoError(t, err)
	rx, err := broadcast.NewReceiver(buf)
	require.NoError(t, err)

	claim, err := tx.TryClaim(1, 4)
	require.NoError(t, err)
	claim.Abort()

	// The aborted slot is reclaimed by the next transmit at the same
	// sequence, so the receiver sees only the committed record.
	require.NoError(t, tx.Transmit(2, []byte("live")))
	result, err := rx.ReceiveNext()
	require.NoError(t, err)
	require.Equal(t, broadcast.Available, result)
	require.EqualValues(t, 2, rx.TypeID())
	require.Zero(t, rx.LostTransmissions())
}

func TestTryClaimValidation(t *testing.T) {
	buf := newBuffer(t, 4)
	tx, err := broadcast.NewTransmitter(buf, recordSize)
	require.NoError(t, err)

	_, err = tx.TryClaim(0, 4)
	require.Error(t, err)

	_, err = tx.TryClaim(1, tx.MaxPayloadLength()+1)
	require.Error(t, err)
}

func TestCommitTwiceFails(t *testing.T) {
	buf := newBuffer(t, 4)
	tx, err := broadcast.NewTransmitter(buf, recordSize)
	require.NoError(t, err)

	claim, err := tx.TryClaim(1, 0)
	require.NoError(t, err)
	require.NoError(t, claim.Commit())
	require.Error(t, claim.Commit())
}
