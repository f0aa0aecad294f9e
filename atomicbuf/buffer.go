// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package atomicbuf

import (
	"sync/atomic"
	"unsafe"

	"code.forgecore.dev/corelf/corelferr"
)

// boundsCheckEnabled and strictAlignment are process-wide toggles. Both
// default to enabled: disabling checks is an opt-in for embedders that
// have stress-tested with them on, never the starting posture.
var (
	boundsCheckEnabled atomic.Bool
	strictAlignment    atomic.Bool
)

func init() {
	boundsCheckEnabled.Store(true)
	strictAlignment.Store(true)
}

// SetBoundsCheckEnabled toggles the process-wide bounds-check flag.
// Disabling it removes a branch from every typed accessor; only do so
// once the embedding application has been fuzzed/stress-tested with it on.
func SetBoundsCheckEnabled(enabled bool) { boundsCheckEnabled.Store(enabled) }

// SetStrictAlignment toggles the process-wide strict-alignment flag.
// In strict mode, ordered/atomic access on a heap-byte-array backing is
// refused unless the index is aligned to the access width.
func SetStrictAlignment(enabled bool) { strictAlignment.Store(enabled) }

// Buffer is a view over a contiguous byte region: (base, offset, length)
// with offset+length <= capacity of the underlying array. Buffer is
// non-owning — the region's lifetime is managed by whoever created it
// (an on-heap []byte, an mmap'd region, or a sub-view of another Buffer).
//
// Wrap is not thread-safe: retargeting a Buffer while another goroutine
// is reading or writing through it is the caller's bug.
type Buffer struct {
	data []byte
}

// Wrap creates a Buffer over the whole of b. b is not copied; the Buffer
// is a view, and mutations through it mutate b in place.
func Wrap(b []byte) *Buffer {
	return &Buffer{data: b}
}

// WrapSlice creates a Buffer over b[offset : offset+length].
func WrapSlice(b []byte, offset, length int) (*Buffer, error) {
	if offset < 0 || length < 0 || offset+length > len(b) {
		return nil, corelferr.Newf(corelferr.KindInvalidArgument,
			"atomicbuf: wrap slice out of range: offset=%d length=%d cap=%d", offset, length, len(b))
	}
	return &Buffer{data: b[offset : offset+length : offset+length]}, nil
}

// Capacity returns the buffer's length in bytes.
func (b *Buffer) Capacity() int { return len(b.data) }

// Bytes returns the raw backing slice. Callers that need non-atomic bulk
// access (e.g. copying a whole broadcast record payload) use this; the
// atomic accessors below are for the header fields requiring ordering.
func (b *Buffer) Bytes() []byte { return b.data }

func (b *Buffer) checkBounds(index, width int) error {
	if !boundsCheckEnabled.Load() {
		return nil
	}
	if index < 0 || width < 0 || index+width > len(b.data) {
		return corelferr.Newf(corelferr.KindOutOfRange,
			"atomicbuf: index %d width %d out of range (capacity %d)", index, width, len(b.data))
	}
	return nil
}

func (b *Buffer) verifyAlignment(index, width int) error {
	if !strictAlignment.Load() {
		return nil
	}
	if index%width != 0 {
		return corelferr.Newf(corelferr.KindAlignmentError,
			"atomicbuf: index %d is not aligned to width %d", index, width)
	}
	return nil
}

func ptrAt[T any](b *Buffer, index int) *T {
	return (*T)(unsafe.Pointer(&b.data[index]))
}

// --- int32 family ---

// GetInt32Plain reads a 32-bit value with no atomicity or ordering
// guarantee; only safe with external synchronization.
func (b *Buffer) GetInt32Plain(index int) (int32, error) {
	if err := b.checkBounds(index, 4); err != nil {
		return 0, err
	}
	return *ptrAt[int32](b, index), nil
}

// PutInt32Plain writes a 32-bit value with no atomicity or ordering guarantee.
func (b *Buffer) PutInt32Plain(index int, val int32) error {
	if err := b.checkBounds(index, 4); err != nil {
		return err
	}
	*ptrAt[int32](b, index) = val
	return nil
}

// GetInt32Volatile reads a 32-bit value with sequentially-consistent ordering.
func (b *Buffer) GetInt32Volatile(index int) (int32, error) {
	if err := b.checkBounds(index, 4); err != nil {
		return 0, err
	}
	if err := b.verifyAlignment(index, 4); err != nil {
		return 0, err
	}
	return atomic.LoadInt32((*int32)(unsafe.Pointer(&b.data[index]))), nil
}

// PutInt32Volatile writes a 32-bit value with sequentially-consistent ordering.
func (b *Buffer) PutInt32Volatile(index int, val int32) error {
	if err := b.checkBounds(index, 4); err != nil {
		return err
	}
	if err := b.verifyAlignment(index, 4); err != nil {
		return err
	}
	atomic.StoreInt32((*int32)(unsafe.Pointer(&b.data[index])), val)
	return nil
}

// PutInt32Ordered performs a release-store: subsequent acquire-loads of
// this index observe every write the writer performed beforehand.
func (b *Buffer) PutInt32Ordered(index int, val int32) error {
	return b.PutInt32Volatile(index, val)
}

// CompareAndSetInt32 performs a sequentially-consistent CAS.
func (b *Buffer) CompareAndSetInt32(index int, expected, update int32) (bool, error) {
	if err := b.checkBounds(index, 4); err != nil {
		return false, err
	}
	if err := b.verifyAlignment(index, 4); err != nil {
		return false, err
	}
	return atomic.CompareAndSwapInt32((*int32)(unsafe.Pointer(&b.data[index])), expected, update), nil
}

// GetAndAddInt32 performs a fetch-and-add, returning the previous value.
func (b *Buffer) GetAndAddInt32(index int, delta int32) (int32, error) {
	if err := b.checkBounds(index, 4); err != nil {
		return 0, err
	}
	if err := b.verifyAlignment(index, 4); err != nil {
		return 0, err
	}
	return atomic.AddInt32((*int32)(unsafe.Pointer(&b.data[index])), delta) - delta, nil
}

// GetAndSetInt32 atomically replaces the value, returning the previous one.
func (b *Buffer) GetAndSetInt32(index int, val int32) (int32, error) {
	if err := b.checkBounds(index, 4); err != nil {
		return 0, err
	}
	if err := b.verifyAlignment(index, 4); err != nil {
		return 0, err
	}
	return atomic.SwapInt32((*int32)(unsafe.Pointer(&b.data[index])), val), nil
}

// --- int64 family ---

// GetInt64Plain reads a 64-bit value with no ordering guarantee.
func (b *Buffer) GetInt64Plain(index int) (int64, error) {
	if err := b.checkBounds(index, 8); err != nil {
		return 0, err
	}
	return *ptrAt[int64](b, index), nil
}

// PutInt64Plain writes a 64-bit value with no ordering guarantee.
func (b *Buffer) PutInt64Plain(index int, val int64) error {
	if err := b.checkBounds(index, 8); err != nil {
		return err
	}
	*ptrAt[int64](b, index) = val
	return nil
}

// GetInt64Volatile reads a 64-bit value with sequentially-consistent ordering.
func (b *Buffer) GetInt64Volatile(index int) (int64, error) {
	if err := b.checkBounds(index, 8); err != nil {
		return 0, err
	}
	if err := b.verifyAlignment(index, 8); err != nil {
		return 0, err
	}
	return atomic.LoadInt64((*int64)(unsafe.Pointer(&b.data[index]))), nil
}

// PutInt64Volatile writes a 64-bit value with sequentially-consistent ordering.
func (b *Buffer) PutInt64Volatile(index int, val int64) error {
	if err := b.checkBounds(index, 8); err != nil {
		return err
	}
	if err := b.verifyAlignment(index, 8); err != nil {
		return err
	}
	atomic.StoreInt64((*int64)(unsafe.Pointer(&b.data[index])), val)
	return nil
}

// PutInt64Ordered performs a release-store.
func (b *Buffer) PutInt64Ordered(index int, val int64) error {
	return b.PutInt64Volatile(index, val)
}

// CompareAndSetInt64 performs a sequentially-consistent CAS.
func (b *Buffer) CompareAndSetInt64(index int, expected, update int64) (bool, error) {
	if err := b.checkBounds(index, 8); err != nil {
		return false, err
	}
	if err := b.verifyAlignment(index, 8); err != nil {
		return false, err
	}
	return atomic.CompareAndSwapInt64((*int64)(unsafe.Pointer(&b.data[index])), expected, update), nil
}

// GetAndAddInt64 performs a fetch-and-add, returning the previous value.
func (b *Buffer) GetAndAddInt64(index int, delta int64) (int64, error) {
	if err := b.checkBounds(index, 8); err != nil {
		return 0, err
	}
	if err := b.verifyAlignment(index, 8); err != nil {
		return 0, err
	}
	return atomic.AddInt64((*int64)(unsafe.Pointer(&b.data[index])), delta) - delta, nil
}

// GetAndSetInt64 atomically replaces the value, returning the previous one.
func (b *Buffer) GetAndSetInt64(index int, val int64) (int64, error) {
	if err := b.checkBounds(index, 8); err != nil {
		return 0, err
	}
	if err := b.verifyAlignment(index, 8); err != nil {
		return 0, err
	}
	return atomic.SwapInt64((*int64)(unsafe.Pointer(&b.data[index])), val), nil
}

// --- byte range ---

// GetBytes copies length bytes starting at index into a new slice.
func (b *Buffer) GetBytes(index, length int) ([]byte, error) {
	if err := b.checkBounds(index, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, b.data[index:index+length])
	return out, nil
}

// PutBytes copies src into the buffer starting at index.
func (b *Buffer) PutBytes(index int, src []byte) error {
	if err := b.checkBounds(index, len(src)); err != nil {
		return err
	}
	copy(b.data[index:index+len(src)], src)
	return nil
}

// GetUint16Plain reads a 16-bit value with no ordering guarantee. Go's
// sync/atomic has no 16-bit primitive, so no ordered 16-bit access is
// offered. A plain access is sufficient for fields of this width written
// by a single writer ahead of a publishing release-store on another field
// (the pattern a broadcast record's plain 32-bit length/typeId writes
// follow ahead of the sequence-indicator commit).
func (b *Buffer) GetUint16Plain(index int) (uint16, error) {
	if err := b.checkBounds(index, 2); err != nil {
		return 0, err
	}
	return *ptrAt[uint16](b, index), nil
}

// PutUint16Plain writes a 16-bit value with no ordering guarantee. See
// [Buffer.GetUint16Plain] for why this is sufficient.
func (b *Buffer) PutUint16Plain(index int, val uint16) error {
	if err := b.checkBounds(index, 2); err != nil {
		return err
	}
	*ptrAt[uint16](b, index) = val
	return nil
}
