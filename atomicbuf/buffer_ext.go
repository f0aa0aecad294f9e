// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package atomicbuf

import (
	"encoding/binary"
	"math"
)

// --- int8 family ---
//
// A single byte never tears on any architecture Go targets, so plain and
// ordered access coincide; no CAS/FAA is offered because no call site in
// this module needs single-byte read-modify-write (every field the
// broadcast and MarkFile layouts access is 32 or 64 bits wide).

// GetInt8Plain reads a single byte.
func (b *Buffer) GetInt8Plain(index int) (int8, error) {
	if err := b.checkBounds(index, 1); err != nil {
		return 0, err
	}
	return int8(b.data[index]), nil
}

// PutInt8Plain writes a single byte.
func (b *Buffer) PutInt8Plain(index int, val int8) error {
	if err := b.checkBounds(index, 1); err != nil {
		return err
	}
	b.data[index] = byte(val)
	return nil
}

// GetInt8Volatile reads a single byte with sequentially-consistent
// ordering. Equivalent to GetInt8Plain: see the package note above.
func (b *Buffer) GetInt8Volatile(index int) (int8, error) { return b.GetInt8Plain(index) }

// PutInt8Volatile writes a single byte with sequentially-consistent
// ordering. Equivalent to PutInt8Plain: see the package note above.
func (b *Buffer) PutInt8Volatile(index int, val int8) error { return b.PutInt8Plain(index, val) }

// --- float32 / float64 family ---
//
// Ordered float access reinterprets the bit pattern through the existing
// int32/int64 atomic primitives, the same technique go.uber.org/atomic
// uses for its Float32/Float64 wrappers: there is no hardware float CAS,
// but the ordering and atomicity guarantees only depend on the width, not
// the interpretation of the bits.

// GetFloat32Plain reads a 32-bit float with no ordering guarantee.
func (b *Buffer) GetFloat32Plain(index int) (float32, error) {
	v, err := b.GetInt32Plain(index)
	return math.Float32frombits(uint32(v)), err
}

// PutFloat32Plain writes a 32-bit float with no ordering guarantee.
func (b *Buffer) PutFloat32Plain(index int, val float32) error {
	return b.PutInt32Plain(index, int32(math.Float32bits(val)))
}

// GetFloat32Volatile reads a 32-bit float with sequentially-consistent ordering.
func (b *Buffer) GetFloat32Volatile(index int) (float32, error) {
	v, err := b.GetInt32Volatile(index)
	return math.Float32frombits(uint32(v)), err
}

// PutFloat32Volatile writes a 32-bit float with sequentially-consistent ordering.
func (b *Buffer) PutFloat32Volatile(index int, val float32) error {
	return b.PutInt32Volatile(index, int32(math.Float32bits(val)))
}

// CompareAndSetFloat32 performs a sequentially-consistent CAS on the
// underlying bit pattern. NaN payloads compare by bit pattern, not by
// IEEE-754 equality, matching the semantics of an integer CAS over the
// same bytes.
func (b *Buffer) CompareAndSetFloat32(index int, expected, update float32) (bool, error) {
	return b.CompareAndSetInt32(index, int32(math.Float32bits(expected)), int32(math.Float32bits(update)))
}

// GetFloat64Plain reads a 64-bit float with no ordering guarantee.
func (b *Buffer) GetFloat64Plain(index int) (float64, error) {
	v, err := b.GetInt64Plain(index)
	return math.Float64frombits(uint64(v)), err
}

// PutFloat64Plain writes a 64-bit float with no ordering guarantee.
func (b *Buffer) PutFloat64Plain(index int, val float64) error {
	return b.PutInt64Plain(index, int64(math.Float64bits(val)))
}

// GetFloat64Volatile reads a 64-bit float with sequentially-consistent ordering.
func (b *Buffer) GetFloat64Volatile(index int) (float64, error) {
	v, err := b.GetInt64Volatile(index)
	return math.Float64frombits(uint64(v)), err
}

// PutFloat64Volatile writes a 64-bit float with sequentially-consistent ordering.
func (b *Buffer) PutFloat64Volatile(index int, val float64) error {
	return b.PutInt64Volatile(index, int64(math.Float64bits(val)))
}

// CompareAndSetFloat64 performs a sequentially-consistent CAS on the
// underlying bit pattern; see [Buffer.CompareAndSetFloat32] for the NaN note.
func (b *Buffer) CompareAndSetFloat64(index int, expected, update float64) (bool, error) {
	return b.CompareAndSetInt64(index, int64(math.Float64bits(expected)), int64(math.Float64bits(update)))
}

// --- explicit byte-order overloads ---
//
// The typed accessors above use the platform's native byte order (the
// only option for ordered/CAS/FAA access, since those require the CPU's
// native atomic instructions). Plain gets/puts additionally accept an
// explicit [binary.ByteOrder] for wire formats that mandate a specific
// order regardless of host endianness — this module's own persisted
// layouts (MarkFile, broadcast records) are native-order and use the
// unqualified accessors; these exist for Buffer's general-purpose use as
// the substrate other wire-format code in an embedding application builds
// on.

// GetInt32PlainOrder reads a 32-bit value in the given byte order, with no
// atomicity or ordering guarantee.
func (b *Buffer) GetInt32PlainOrder(index int, order binary.ByteOrder) (int32, error) {
	raw, err := b.GetBytes(index, 4)
	if err != nil {
		return 0, err
	}
	return int32(order.Uint32(raw)), nil
}

// PutInt32PlainOrder writes a 32-bit value in the given byte order, with
// no atomicity or ordering guarantee.
func (b *Buffer) PutInt32PlainOrder(index int, val int32, order binary.ByteOrder) error {
	var raw [4]byte
	order.PutUint32(raw[:], uint32(val))
	return b.PutBytes(index, raw[:])
}

// GetInt64PlainOrder reads a 64-bit value in the given byte order, with no
// atomicity or ordering guarantee.
func (b *Buffer) GetInt64PlainOrder(index int, order binary.ByteOrder) (int64, error) {
	raw, err := b.GetBytes(index, 8)
	if err != nil {
		return 0, err
	}
	return int64(order.Uint64(raw)), nil
}

// PutInt64PlainOrder writes a 64-bit value in the given byte order, with
// no atomicity or ordering guarantee.
func (b *Buffer) PutInt64PlainOrder(index int, val int64, order binary.ByteOrder) error {
	var raw [8]byte
	order.PutUint64(raw[:], uint64(val))
	return b.PutBytes(index, raw[:])
}

// --- opaque / acquire aliases ---
//
// Opaque access (atomic, no inter-thread ordering) and acquire-load are
// distinct ordering modes in the VarHandle/std::atomic sense. Go's memory model
// only defines sequentially-consistent atomics (https://go.dev/ref/mem),
// so both compile to the same fence as the Volatile methods; they are
// named separately so call sites document the weakest ordering they
// actually depend on; matching the rationale in atomics.go for the
// scalar atomic types.

// GetInt32Opaque reads a 32-bit value atomically without inter-thread
// ordering guarantees beyond atomicity. See the package note above.
func (b *Buffer) GetInt32Opaque(index int) (int32, error) { return b.GetInt32Volatile(index) }

// PutInt32Opaque writes a 32-bit value atomically without inter-thread
// ordering guarantees beyond atomicity. See the package note above.
func (b *Buffer) PutInt32Opaque(index int, val int32) error { return b.PutInt32Volatile(index, val) }

// GetInt32Acquire reads a 32-bit value with acquire ordering. See the
// package note above.
func (b *Buffer) GetInt32Acquire(index int) (int32, error) { return b.GetInt32Volatile(index) }

// GetInt64Opaque reads a 64-bit value atomically without inter-thread
// ordering guarantees beyond atomicity. See the package note above.
func (b *Buffer) GetInt64Opaque(index int) (int64, error) { return b.GetInt64Volatile(index) }

// PutInt64Opaque writes a 64-bit value atomically without inter-thread
// ordering guarantees beyond atomicity. See the package note above.
func (b *Buffer) PutInt64Opaque(index int, val int64) error { return b.PutInt64Volatile(index, val) }

// GetInt64Acquire reads a 64-bit value with acquire ordering. See the
// package note above.
func (b *Buffer) GetInt64Acquire(index int) (int64, error) { return b.GetInt64Volatile(index) }
