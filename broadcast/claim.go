// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package broadcast

import (
	"code.forgecore.dev/corelf/corelferr"
)

// Claim is a reserved record slot the transmitter streams a payload into
// directly, avoiding the staging copy Transmit performs. The record is
// invisible to receivers until Commit; an Abort (or an abandoned Claim)
// leaves the slot claimed-but-uncommitted, and the next claim or transmit
// reuses the same sequence.
type Claim struct {
	t            *Transmitter
	sequence     int64
	recordOffset int
	payload      []byte
	done         bool
}

// TryClaim reserves the next record slot for a payload of length bytes and
// returns a Claim whose Payload the caller fills in place. Only one Claim
// may be outstanding at a time (the transmitter is single-writer).
func (t *Transmitter) TryClaim(typeId, length int32) (*Claim, error) {
	if typeId < 1 {
		return nil, corelferr.Newf(corelferr.KindInvalidArgument, "broadcast: typeId must be >= 1, got %d", typeId)
	}
	if length < 0 || length > t.MaxPayloadLength() {
		return nil, corelferr.Newf(corelferr.KindInvalidArgument,
			"broadcast: claim length %d exceeds max %d", length, t.MaxPayloadLength())
	}

	s, err := t.buf.GetInt64Volatile(t.latestIndex)
	if err != nil {
		return nil, err
	}
	slot := int(s) & t.mask
	recordOffset := slot * int(t.recordSize)

	// Claim the slot for sequence s; receivers treat it as overwritten
	// until the commit store publishes s+1.
	if err := t.buf.PutInt64Ordered(recordOffset, s); err != nil {
		return nil, err
	}
	if err := t.buf.PutInt32Plain(recordOffset+8, length); err != nil {
		return nil, err
	}
	if err := t.buf.PutInt32Plain(recordOffset+12, typeId); err != nil {
		return nil, err
	}
	payloadStart := recordOffset + recordHeaderLength
	return &Claim{
		t:            t,
		sequence:     s,
		recordOffset: recordOffset,
		payload:      t.buf.Bytes()[payloadStart : payloadStart+int(length)],
	}, nil
}

// Payload is the writable view over the claimed record's payload bytes.
// It must not be touched after Commit or Abort.
func (c *Claim) Payload() []byte { return c.payload }

// Commit publishes the record: the slot's sequence indicator advances to
// sequence+1 and latestCounter follows, making the record discoverable.
func (c *Claim) Commit() error {
	if c.done {
		return corelferr.Newf(corelferr.KindInvalidArgument, "broadcast: claim already committed or aborted")
	}
	c.done = true
	if err := c.t.buf.PutInt64Ordered(c.recordOffset, c.sequence+1); err != nil {
		return err
	}
	return c.t.buf.PutInt64Ordered(c.t.latestIndex, c.sequence+1)
}

// Abort abandons the claim without publishing. latestCounter never
// advanced, so the next claim or transmit reclaims the same slot.
func (c *Claim) Abort() {
	c.done = true
	c.payload = nil
}
