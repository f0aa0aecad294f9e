// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corelferr_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"code.forgecore.dev/corelf/corelferr"
)

func TestKindString(t *testing.T) {
	cases := map[corelferr.Kind]string{
		corelferr.KindInvalidArgument:    "invalid_argument",
		corelferr.KindOutOfRange:         "out_of_range",
		corelferr.KindAlignmentError:     "alignment_error",
		corelferr.KindQueueFull:          "queue_full",
		corelferr.KindQueueEmpty:         "queue_empty",
		corelferr.KindClockWentBackwards: "clock_went_backwards",
		corelferr.KindThreadInterrupt:    "thread_interrupt",
		corelferr.KindTerminal:           "terminal",
		corelferr.Kind(99):               "unknown",
	}
	for kind, want := range cases {
		require.Equal(t, want, kind.String())
	}
}

func TestNewAndIs(t *testing.T) {
	err := corelferr.New(corelferr.KindQueueFull, "queue is full")
	require.True(t, corelferr.Is(err, corelferr.KindQueueFull))
	require.False(t, corelferr.Is(err, corelferr.KindQueueEmpty))
	require.Equal(t, "queue is full", err.Error())
}

func TestNewfFormats(t *testing.T) {
	err := corelferr.Newf(corelferr.KindOutOfRange, "index %d out of range [0, %d)", 5, 3)
	require.Equal(t, "index 5 out of range [0, 3)", err.Error())
	require.Equal(t, corelferr.KindOutOfRange, err.Kind())
}

func TestIsUnwrapsWrappedError(t *testing.T) {
	base := corelferr.New(corelferr.KindAlignmentError, "misaligned")
	wrapped := fmt.Errorf("operation failed: %w", base)
	require.True(t, corelferr.Is(wrapped, corelferr.KindAlignmentError))
}

func TestIsFalseForPlainError(t *testing.T) {
	require.False(t, corelferr.Is(fmt.Errorf("plain"), corelferr.KindInvalidArgument))
}

func TestTerminalSentinel(t *testing.T) {
	require.True(t, corelferr.IsTerminal(corelferr.Terminal))
	require.False(t, corelferr.IsTerminal(corelferr.New(corelferr.KindQueueEmpty, "empty")))
}
