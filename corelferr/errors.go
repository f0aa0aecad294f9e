// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package corelferr provides the error-kind taxonomy shared by every
// component of the coordination fabric.
//
// Queues and buffers never use these for flow control — Enqueue/Dequeue
// and broadcast publication return bool/sentinel results, never an error
// from this package, for the common full/empty case. These kinds cover
// genuine misuse and environmental failures: bad construction arguments,
// out-of-bounds access, misaligned atomic access, clock regression, and
// agent lifecycle signals.
package corelferr

import "github.com/pkg/errors"

// Kind classifies an error for callers that need to branch on it without
// string matching. Kind is carried via errors.As on the *Error wrapper.
type Kind int

const (
	// KindInvalidArgument: null element, negative capacity, bad bit budget,
	// invalid typeId, over-long broadcast payload, bad MarkFile offsets.
	KindInvalidArgument Kind = iota
	// KindOutOfRange: bounds-check failure, CAS on misaligned index (strict mode).
	KindOutOfRange
	// KindAlignmentError: verifyAlignment failed.
	KindAlignmentError
	// KindQueueFull: add()-style variant demanding success on a full queue.
	KindQueueFull
	// KindQueueEmpty: remove()-style variant demanding success on an empty queue.
	KindQueueEmpty
	// KindClockWentBackwards: Snowflake observed a timestamp less than the previous.
	KindClockWentBackwards
	// KindThreadInterrupt: raised by Snowflake's spin-wait on interrupt.
	KindThreadInterrupt
	// KindTerminal: an agent's doWork wants to end its duty cycle cleanly.
	KindTerminal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindOutOfRange:
		return "out_of_range"
	case KindAlignmentError:
		return "alignment_error"
	case KindQueueFull:
		return "queue_full"
	case KindQueueEmpty:
		return "queue_empty"
	case KindClockWentBackwards:
		return "clock_went_backwards"
	case KindThreadInterrupt:
		return "thread_interrupt"
	case KindTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Error wraps a Kind with a stack trace captured at construction, via
// github.com/pkg/errors, so callers get a useful trace without paying for
// one on the hot, non-erroring path.
type Error struct {
	kind  Kind
	cause error
}

func (e *Error) Error() string { return e.cause.Error() }

func (e *Error) Unwrap() error { return e.cause }

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// New creates an Error of the given kind with a stack trace attached.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, cause: errors.New(msg)}
}

// Newf creates an Error of the given kind with a formatted message and
// stack trace attached.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, cause: errors.Errorf(format, args...)}
}

// Is reports whether err carries the given Kind, unwrapping as needed.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.kind == kind
}

// IsTerminal reports whether err signals an agent wants to end its loop.
func IsTerminal(err error) bool { return Is(err, KindTerminal) }

// Terminal is a shared sentinel for Agent.DoWork implementations that want
// to end their duty cycle without allocating a fresh error each tick.
var Terminal = New(KindTerminal, "agent requested termination")
