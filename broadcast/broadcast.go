// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package broadcast implements a fixed-size, single-transmitter
// multi-receiver dissemination buffer: the transmitter never blocks on a
// slow receiver, and a receiver that falls behind is told so (loss)
// rather than silently skipped or stalling the transmitter.
//
// Record layout (bit-exact, matches the persisted layout every receiver
// and transmitter over the same buffer must agree on):
//
//	[sequenceIndicator: i64][length: i32][typeId: i32][payload: recordSize-16 bytes]
//
// repeated N times (N a power of two), followed by a trailer:
//
//	[latestCounter: i64][recordSize: i32][padding]
package broadcast

import (
	"encoding/binary"

	"code.forgecore.dev/corelf/atomicbuf"
	"code.forgecore.dev/corelf/corelferr"
)

const (
	recordHeaderLength = 16 // sequenceIndicator(8) + length(4) + typeId(4)
	trailerLength      = 16 // latestCounter(8) + recordSize(4) + padding(4)
	minRecordSize      = 16
)

// ReceiveResult classifies the outcome of [Receiver.ReceiveNext].
type ReceiveResult int

const (
	// NotAvailable: the transmitter hasn't published the next record yet.
	NotAvailable ReceiveResult = iota
	// Available: the next record in sequence is ready to read.
	Available
	// Loss: the transmitter advanced past the receiver's cursor; some
	// records were skipped. The receiver's cursor jumps forward.
	Loss
)

func validateLayout(totalLen int, recordSize int32) (numRecords int, mask int, err error) {
	if recordSize < minRecordSize || recordSize%8 != 0 {
		return 0, 0, corelferr.Newf(corelferr.KindInvalidArgument,
			"broadcast: recordSize %d must be >= %d and a multiple of 8", recordSize, minRecordSize)
	}
	recordsLen := totalLen - trailerLength
	if recordsLen <= 0 || recordsLen%int(recordSize) != 0 {
		return 0, 0, corelferr.Newf(corelferr.KindInvalidArgument,
			"broadcast: buffer length %d minus trailer must be a multiple of recordSize %d", totalLen, recordSize)
	}
	n := recordsLen / int(recordSize)
	if n&(n-1) != 0 || n < 1 {
		return 0, 0, corelferr.Newf(corelferr.KindInvalidArgument,
			"broadcast: record count %d must be a power of two", n)
	}
	return n, n - 1, nil
}

// Transmitter is the single writer broadcasting fixed-size records.
type Transmitter struct {
	buf         *atomicbuf.Buffer
	recordsLen  int
	recordSize  int32
	mask        int
	latestIndex int // byte offset of the trailer's latestCounter field
}

// NewTransmitter creates a Transmitter over buf, writing recordSize into
// the trailer so receivers constructed afterward can discover it.
func NewTransmitter(buf []byte, recordSize int32) (*Transmitter, error) {
	n, mask, err := validateLayout(len(buf), recordSize)
	if err != nil {
		return nil, err
	}
	recordsLen := n * int(recordSize)
	ab := atomicbuf.Wrap(buf)
	if err := ab.PutInt32Plain(recordsLen+8, recordSize); err != nil {
		return nil, err
	}
	if err := ab.PutInt64Volatile(recordsLen, 0); err != nil {
		return nil, err
	}
	return &Transmitter{
		buf:         ab,
		recordsLen:  recordsLen,
		recordSize:  recordSize,
		mask:        mask,
		latestIndex: recordsLen,
	}, nil
}

// MaxPayloadLength is the largest payload a single record can carry.
func (t *Transmitter) MaxPayloadLength() int32 { return t.recordSize - recordHeaderLength }

// Transmit publishes one record. typeId must be >= 1. Returns
// InvalidArgument if typeId < 1 or payload exceeds MaxPayloadLength.
func (t *Transmitter) Transmit(typeId int32, payload []byte) error {
	if typeId < 1 {
		return corelferr.Newf(corelferr.KindInvalidArgument, "broadcast: typeId must be >= 1, got %d", typeId)
	}
	if int32(len(payload)) > t.MaxPayloadLength() {
		return corelferr.Newf(corelferr.KindInvalidArgument,
			"broadcast: payload length %d exceeds max %d", len(payload), t.MaxPayloadLength())
	}

	s, err := t.buf.GetInt64Volatile(t.latestIndex)
	if err != nil {
		return err
	}
	slot := int(s) & t.mask
	recordOffset := slot * int(t.recordSize)

	// 1. Claim: mark the slot as belonging to sequence s.
	if err := t.buf.PutInt64Ordered(recordOffset, s); err != nil {
		return err
	}
	// 2+3. Write header fields and payload (plain — protected by the
	// release stores that bracket them).
	if err := t.buf.PutInt32Plain(recordOffset+8, int32(len(payload))); err != nil {
		return err
	}
	if err := t.buf.PutInt32Plain(recordOffset+12, typeId); err != nil {
		return err
	}
	if len(payload) > 0 {
		if err := t.buf.PutBytes(recordOffset+recordHeaderLength, payload); err != nil {
			return err
		}
	}
	// 4. Commit the slot.
	if err := t.buf.PutInt64Ordered(recordOffset, s+1); err != nil {
		return err
	}
	// 5. Advance latestCounter so receivers can discover the new record.
	return t.buf.PutInt64Ordered(t.latestIndex, s+1)
}

// TransmitUint64 is a convenience for fixed-size 8-byte payloads, common
// for sequence/heartbeat style broadcasts.
func (t *Transmitter) TransmitUint64(typeId int32, val uint64) error {
	var payload [8]byte
	binary.LittleEndian.PutUint64(payload[:], val)
	return t.Transmit(typeId, payload[:])
}

// Receiver tracks one loss-tolerant reader's position in the buffer.
type Receiver struct {
	buf               *atomicbuf.Buffer
	recordSize        int32
	mask              int
	latestIndex       int
	nextRecord        int64
	recordOffset      int
	lostTransmissions int64
	typeID            int32
	length            int32
}

// NewReceiver creates a Receiver over buf, reading recordSize back out of
// the trailer the Transmitter wrote.
func NewReceiver(buf []byte) (*Receiver, error) {
	if len(buf) < trailerLength {
		return nil, corelferr.Newf(corelferr.KindInvalidArgument, "broadcast: buffer too small for trailer")
	}
	ab := atomicbuf.Wrap(buf)
	recordsLen := len(buf) - trailerLength
	recordSize, err := ab.GetInt32Plain(recordsLen + 8)
	if err != nil {
		return nil, err
	}
	n, mask, err := validateLayout(len(buf), recordSize)
	if err != nil {
		return nil, err
	}
	_ = n
	return &Receiver{
		buf:         ab,
		recordSize:  recordSize,
		mask:        mask,
		latestIndex: recordsLen,
	}, nil
}

// ReceiveNext advances to the next record, if any. Callers must check the
// returned [ReceiveResult]; on [Available], [Receiver.TypeID],
// [Receiver.Payload], and [Receiver.Validate] describe the current record.
func (r *Receiver) ReceiveNext() (ReceiveResult, error) {
	slot := int(r.nextRecord) & r.mask
	recordOffset := slot * int(r.recordSize)
	seq, err := r.buf.GetInt64Volatile(recordOffset)
	if err != nil {
		return NotAvailable, err
	}

	expected := r.nextRecord + 1
	switch {
	case seq == expected:
		r.recordOffset = recordOffset
		length, err := r.buf.GetInt32Plain(recordOffset + 8)
		if err != nil {
			return NotAvailable, err
		}
		typeID, err := r.buf.GetInt32Plain(recordOffset + 12)
		if err != nil {
			return NotAvailable, err
		}
		r.length = length
		r.typeID = typeID
		r.nextRecord++
		return Available, nil
	case seq > expected:
		lost := (seq - 1) - r.nextRecord
		r.lostTransmissions += lost
		r.nextRecord = seq - 1
		return Loss, nil
	default:
		return NotAvailable, nil
	}
}

// TypeID returns the current record's type id (valid after Available).
func (r *Receiver) TypeID() int32 { return r.typeID }

// Length returns the current record's payload length (valid after Available).
func (r *Receiver) Length() int32 { return r.length }

// Payload copies out the current record's payload. Callers must call
// Validate after copying to confirm the transmitter did not overwrite the
// record mid-read.
func (r *Receiver) Payload() ([]byte, error) {
	return r.buf.GetBytes(r.recordOffset+recordHeaderLength, int(r.length))
}

// Validate reports whether the record most recently returned by
// ReceiveNext is still intact: the sequence indicator must still equal
// cursor+1. If it does not, the transmitter overwrote the slot while the
// payload was being read and the copy must be discarded.
func (r *Receiver) Validate() (bool, error) {
	seq, err := r.buf.GetInt64Volatile(r.recordOffset)
	if err != nil {
		return false, err
	}
	return seq == r.nextRecord, nil
}

// LostTransmissions returns the cumulative count of records this receiver
// has skipped over due to falling behind the transmitter.
func (r *Receiver) LostTransmissions() int64 { return r.lostTransmissions }

// KeepUpWithTransmitter jumps the cursor to the transmitter's current
// position, recording any skipped records as loss. Useful for a receiver
// that wants to discard backlog rather than catch up record by record.
func (r *Receiver) KeepUpWithTransmitter() error {
	latest, err := r.buf.GetInt64Volatile(r.latestIndex)
	if err != nil {
		return err
	}
	if latest > r.nextRecord {
		r.lostTransmissions += latest - r.nextRecord
		r.nextRecord = latest
	}
	return nil
}
