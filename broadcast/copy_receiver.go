// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package broadcast

// MessageHandler consumes one validated record. The payload slice is a
// scratch buffer owned by the [CopyReceiver] and is only valid for the
// duration of the call; handlers that retain the bytes must copy them.
type MessageHandler func(typeID int32, payload []byte)

// ControlledAction directs a [ControlledMessageHandler]'s read loop.
type ControlledAction int

const (
	// ActionAbort stops the loop without consuming the current record;
	// the next receive pass redelivers it.
	ActionAbort ControlledAction = iota
	// ActionBreak consumes the current record, then stops the loop.
	ActionBreak
	// ActionCommit consumes the current record and continues.
	ActionCommit
	// ActionContinue consumes the current record and continues.
	ActionContinue
)

// ControlledMessageHandler consumes one validated record and returns the
// action controlling whether the record is kept and whether the loop
// continues. The payload slice has the same lifetime rules as
// [MessageHandler]'s.
type ControlledMessageHandler func(typeID int32, payload []byte) ControlledAction

// CopyReceiver wraps a [Receiver] with a scratch buffer so callers get the
// copy-then-validate dance done for them: every payload handed to a
// handler has already been copied out and revalidated, so it can never be
// a torn read. Records overwritten mid-copy surface as loss on the next
// pass, never as corrupt payloads.
type CopyReceiver struct {
	recv    *Receiver
	scratch []byte
}

// NewCopyReceiver wraps recv. The scratch buffer is sized to the largest
// possible payload so Receive never allocates.
func NewCopyReceiver(recv *Receiver) *CopyReceiver {
	return &CopyReceiver{
		recv:    recv,
		scratch: make([]byte, int(recv.recordSize)-recordHeaderLength),
	}
}

// LostTransmissions reports the wrapped receiver's cumulative loss count.
func (c *CopyReceiver) LostTransmissions() int64 { return c.recv.lostTransmissions }

// Receive delivers every currently available record to handler and
// returns the number delivered. Records invalidated between copy and
// validate are skipped; the resulting loss is reported through
// LostTransmissions on a later pass.
func (c *CopyReceiver) Receive(handler MessageHandler) (int, error) {
	count := 0
	for {
		result, err := c.recv.ReceiveNext()
		if err != nil {
			return count, err
		}
		switch result {
		case NotAvailable:
			return count, nil
		case Loss:
			continue
		}
		payload, ok, err := c.copyOut()
		if err != nil {
			return count, err
		}
		if !ok {
			continue
		}
		handler(c.recv.typeID, payload)
		count++
	}
}

// ReceiveControlled is Receive with per-record flow control: the handler's
// returned [ControlledAction] decides whether the record counts as
// consumed and whether the loop keeps going.
func (c *CopyReceiver) ReceiveControlled(handler ControlledMessageHandler) (int, error) {
	count := 0
	for {
		cursorBefore := c.recv.nextRecord
		result, err := c.recv.ReceiveNext()
		if err != nil {
			return count, err
		}
		switch result {
		case NotAvailable:
			return count, nil
		case Loss:
			continue
		}
		payload, ok, err := c.copyOut()
		if err != nil {
			return count, err
		}
		if !ok {
			continue
		}
		switch handler(c.recv.typeID, payload) {
		case ActionAbort:
			c.recv.nextRecord = cursorBefore
			return count, nil
		case ActionBreak:
			count++
			return count, nil
		default:
			count++
		}
	}
}

// copyOut copies the current record's payload into the scratch buffer and
// revalidates. ok is false if the transmitter overwrote the record
// mid-copy, in which case the copy must be discarded.
func (c *CopyReceiver) copyOut() ([]byte, bool, error) {
	length := int(c.recv.length)
	if length < 0 || length > len(c.scratch) {
		// Torn header read while the transmitter rewrites the slot.
		return nil, false, nil
	}
	start := c.recv.recordOffset + recordHeaderLength
	copy(c.scratch[:length], c.recv.buf.Bytes()[start:start+length])
	valid, err := c.recv.Validate()
	if err != nil || !valid {
		return nil, false, err
	}
	return c.scratch[:length], true, nil
}
