// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package markfile implements a cross-process liveness marker: a small
// mmap'd file one process writes to and any number of other processes —
// including ones started later, or on their way down — can poll without
// IPC of their own, interpreted through
// [code.forgecore.dev/corelf/atomicbuf.Buffer] the same way every other
// shared-memory region in this module is.
package markfile

import (
	"os"
	"time"

	"golang.org/x/sys/unix"

	"code.forgecore.dev/corelf/atomicbuf"
	"code.forgecore.dev/corelf/corelferr"
)

// ExistencePolicy governs how Open reconciles a requested path against
// what's already on disk.
type ExistencePolicy int

const (
	// MustExist fails unless path already exists. An existing file shorter
	// than the layout's TotalLength is grown to that length.
	MustExist ExistencePolicy = iota
	// MustNotExist fails if path already exists.
	MustNotExist
	// OpenOrCreate opens path if present (growing it to the layout's
	// TotalLength if shorter; a longer file is not shrunk) or creates and
	// zero-fills it otherwise.
	OpenOrCreate
)

// Layout describes where the version and timestamp fields live within the
// mapped region. versionOffset+4 must be <= timestampOffset.
type Layout struct {
	TotalLength     int
	VersionOffset   int
	TimestampOffset int
}

func (l Layout) validate() error {
	if l.TotalLength <= 0 {
		return corelferr.New(corelferr.KindInvalidArgument, "markfile: totalLength must be > 0")
	}
	if l.VersionOffset < 0 || l.TimestampOffset < 0 {
		return corelferr.New(corelferr.KindInvalidArgument, "markfile: offsets must be >= 0")
	}
	if l.VersionOffset+4 > l.TimestampOffset {
		return corelferr.Newf(corelferr.KindInvalidArgument,
			"markfile: versionOffset+4 (%d) must be <= timestampOffset (%d)", l.VersionOffset+4, l.TimestampOffset)
	}
	if l.TimestampOffset+8 > l.TotalLength {
		return corelferr.Newf(corelferr.KindInvalidArgument,
			"markfile: timestampOffset+8 (%d) exceeds totalLength (%d)", l.TimestampOffset+8, l.TotalLength)
	}
	return nil
}

// MarkFile is a liveness marker backed by a memory-mapped file.
type MarkFile struct {
	file   *os.File
	region []byte
	buf    *atomicbuf.Buffer
	layout Layout
	closed atomicbuf.Bool
}

// Open maps path per policy and layout, creating and zero-filling the
// file when policy is OpenOrCreate and no file exists.
func Open(path string, layout Layout, policy ExistencePolicy) (*MarkFile, error) {
	if err := layout.validate(); err != nil {
		return nil, err
	}

	_, statErr := os.Stat(path)
	exists := statErr == nil
	switch policy {
	case MustExist:
		if !exists {
			return nil, corelferr.Newf(corelferr.KindInvalidArgument, "markfile: %s does not exist", path)
		}
	case MustNotExist:
		if exists {
			return nil, corelferr.Newf(corelferr.KindInvalidArgument, "markfile: %s already exists", path)
		}
	case OpenOrCreate:
		// handled below
	}

	flags := os.O_RDWR
	if !exists {
		flags |= os.O_CREATE
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, corelferr.Newf(corelferr.KindInvalidArgument, "markfile: open %s: %v", path, err)
	}
	if !exists {
		if err := f.Truncate(int64(layout.TotalLength)); err != nil {
			f.Close()
			return nil, corelferr.Newf(corelferr.KindInvalidArgument, "markfile: truncate %s: %v", path, err)
		}
	} else if policy == MustExist || policy == OpenOrCreate {
		if info, err := f.Stat(); err == nil && info.Size() < int64(layout.TotalLength) {
			if err := f.Truncate(int64(layout.TotalLength)); err != nil {
				f.Close()
				return nil, corelferr.Newf(corelferr.KindInvalidArgument, "markfile: grow %s: %v", path, err)
			}
		}
	}

	region, err := unix.Mmap(int(f.Fd()), 0, layout.TotalLength, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, corelferr.Newf(corelferr.KindInvalidArgument, "markfile: mmap %s: %v", path, err)
	}

	return &MarkFile{
		file:   f,
		region: region,
		buf:    atomicbuf.Wrap(region),
		layout: layout,
	}, nil
}

// MapExisting waits up to timeout for a peer to create and
// initialize path (a nonzero version), sleeping 1-16ms between attempts,
// opening it MustExist. Used by a late-joining reader that doesn't own
// creation.
func MapExisting(path string, layout Layout, timeout time.Duration) (*MarkFile, error) {
	deadline := time.Now().Add(timeout)
	sleep := time.Millisecond
	for {
		if _, err := os.Stat(path); err == nil {
			m, err := Open(path, layout, MustExist)
			if err != nil {
				return nil, err
			}
			version, err := m.VersionVolatile()
			if err != nil {
				m.Close()
				return nil, err
			}
			if version != 0 {
				return m, nil
			}
			m.Close()
		}
		if time.Now().After(deadline) {
			return nil, corelferr.Newf(corelferr.KindInvalidArgument, "markfile: %s was not initialized within %s", path, timeout)
		}
		time.Sleep(sleep)
		if sleep < 16*time.Millisecond {
			sleep *= 2
		}
	}
}

// SignalReady release-stores version, the point at which isActive begins
// considering this mark file live.
func (m *MarkFile) SignalReady(version uint32) error {
	return m.buf.PutInt32Ordered(m.layout.VersionOffset, int32(version))
}

// TimestampOrdered release-stores the liveness timestamp (epoch
// milliseconds), called periodically by the owning process.
func (m *MarkFile) TimestampOrdered(ts int64) error {
	return m.buf.PutInt64Ordered(m.layout.TimestampOffset, ts)
}

// VersionVolatile reads version with sequentially-consistent ordering.
func (m *MarkFile) VersionVolatile() (uint32, error) {
	v, err := m.buf.GetInt32Volatile(m.layout.VersionOffset)
	return uint32(v), err
}

// TimestampVolatile reads the timestamp with sequentially-consistent ordering.
func (m *MarkFile) TimestampVolatile() (int64, error) {
	return m.buf.GetInt64Volatile(m.layout.TimestampOffset)
}

// VersionWeak reads version with no ordering guarantee, for callers that
// already hold a happens-before edge from elsewhere.
func (m *MarkFile) VersionWeak() (uint32, error) {
	v, err := m.buf.GetInt32Plain(m.layout.VersionOffset)
	return uint32(v), err
}

// TimestampWeak reads the timestamp with no ordering guarantee.
func (m *MarkFile) TimestampWeak() (int64, error) {
	return m.buf.GetInt64Plain(m.layout.TimestampOffset)
}

// IsActive reports whether a nonzero version has appeared and the most
// recent timestamp is within timeoutMs of nowMs.
func (m *MarkFile) IsActive(nowMs int64, timeoutMs int64) (bool, error) {
	version, err := m.VersionVolatile()
	if err != nil {
		return false, err
	}
	if version == 0 {
		return false, nil
	}
	ts, err := m.TimestampVolatile()
	if err != nil {
		return false, err
	}
	return nowMs-ts <= timeoutMs, nil
}

// Close unmaps the region and closes the underlying file, exactly once;
// subsequent calls are a no-op.
func (m *MarkFile) Close() error {
	if !m.closed.CompareAndSwapAcqRel(false, true) {
		return nil
	}
	err := unix.Munmap(m.region)
	if cerr := m.file.Close(); err == nil {
		err = cerr
	}
	return err
}
