// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package atomicbuf_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"code.forgecore.dev/corelf/atomicbuf"
)

func TestUint64CompareAndSwap(t *testing.T) {
	var v atomicbuf.Uint64
	v.StoreRelease(5)

	require.True(t, v.CompareAndSwapAcqRel(5, 9))
	require.False(t, v.CompareAndSwapAcqRel(5, 20))
	require.EqualValues(t, 9, v.LoadAcquire())
}

func TestInt64AddAcqRelConcurrent(t *testing.T) {
	var v atomicbuf.Int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.AddAcqRel(1)
		}()
	}
	wg.Wait()
	require.EqualValues(t, 100, v.LoadAcquire())
}

func TestBoolCompareAndSwap(t *testing.T) {
	var b atomicbuf.Bool
	require.True(t, b.CompareAndSwapAcqRel(false, true))
	require.True(t, b.LoadAcquire())
	require.False(t, b.CompareAndSwapAcqRel(false, true))
}

func TestPointerExchange(t *testing.T) {
	var p atomicbuf.Pointer[int]
	a, b := 1, 2
	p.StoreRelease(&a)
	old := p.ExchangeAcqRel(&b)
	require.Equal(t, &a, old)
	require.Equal(t, &b, p.LoadAcquire())
}

func TestCounter(t *testing.T) {
	c := atomicbuf.NewCounter()
	for i := 0; i < 5; i++ {
		c.Increment()
	}
	require.EqualValues(t, 5, c.Get())
}
