// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package queue

import "github.com/pkg/errors"

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Enqueue: the queue is full (backpressure).
// For Dequeue: the queue is empty (no data available).
//
// ErrWouldBlock is a control-flow signal, not a failure: queues never
// return a [code.forgecore.dev/corelf/corelferr] error for the ordinary
// full/empty case, so
// callers retry (with back-off via [code.forgecore.dev/corelf/idle])
// rather than propagating it up the stack.
var ErrWouldBlock = errors.New("corelf/queue: would block")

// IsWouldBlock reports whether err is (or wraps) ErrWouldBlock.
func IsWouldBlock(err error) bool {
	return errors.Is(err, ErrWouldBlock)
}
