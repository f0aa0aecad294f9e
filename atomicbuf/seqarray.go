// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package atomicbuf

import "sync/atomic"

// SeqArray is a fixed array of 64-bit sequence words laid out in a byte
// region and accessed through the same ordered primitives as [Buffer].
// Ring queues keep their per-slot sequence tags here, parallel to the
// element storage, so the coordination words live in one dense region
// addressed by slot index rather than being interleaved with element
// data.
//
// Length is a power of two; indexes wrap by masking, matching the ring
// position arithmetic of every caller.
type SeqArray struct {
	buf  *Buffer
	mask uint64
}

// NewSeqArray allocates a region for length sequence words and sets word
// i to init(i). Length must be a power of two >= 1. A Go heap allocation
// is at least 8-byte aligned, so every word satisfies the alignment the
// ordered accessors require.
func NewSeqArray(length uint64, init func(i uint64) uint64) *SeqArray {
	if length == 0 || length&(length-1) != 0 {
		panic("atomicbuf: SeqArray length must be a power of two")
	}
	s := &SeqArray{
		buf:  Wrap(make([]byte, length*8)),
		mask: length - 1,
	}
	if init != nil {
		for i := uint64(0); i < length; i++ {
			s.StorePlain(i, init(i))
		}
	}
	return s
}

// Len returns the number of sequence words.
func (s *SeqArray) Len() int { return int(s.mask + 1) }

func (s *SeqArray) word(i uint64) *uint64 {
	return ptrAt[uint64](s.buf, int(i&s.mask)<<3)
}

// StorePlain writes word i with no ordering guarantee; used only during
// construction, before the array is shared.
func (s *SeqArray) StorePlain(i, val uint64) { *s.word(i) = val }

// LoadAcquire reads word i; a matching StoreRelease by another goroutine
// happens-before this load observing its value.
func (s *SeqArray) LoadAcquire(i uint64) uint64 { return atomic.LoadUint64(s.word(i)) }

// StoreRelease publishes word i: every write the caller performed before
// this store is visible to a goroutine that acquire-loads the new value.
func (s *SeqArray) StoreRelease(i, val uint64) { atomic.StoreUint64(s.word(i), val) }

// CompareAndSwapAcqRel performs a CAS on word i.
func (s *SeqArray) CompareAndSwapAcqRel(i, old, new uint64) bool {
	return atomic.CompareAndSwapUint64(s.word(i), old, new)
}
