package engine

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// stridePages is the number of pages in the default mapper stride
// (see DefaultStride), per spec.md §4.4: a multiple of the page size, large enough to amortize queue overhead
// without holding too much of the file resident at once. It is a
// tuning knob, not a correctness parameter (spec.md §8, "Boundary:
// correctness is unaffected by the mapper stride").
const stridePages = 4096

// Mapper opens a regular file read-only, maps it once for its whole
// length, and hands out chunks (byte windows) over that single
// mapping in file order. Chunks share the underlying mapping, so
// "each chunk's bytes are stable and readable for the lifetime of
// that chunk" (spec.md §4.2) holds trivially: the mapping outlives
// every chunk drawn from it.
//
// Grounded on other_examples/agoosev-1brc__main.go's direct
// unix.Mmap/unix.Munmap use; madvise(MADV_SEQUENTIAL) mirrors
// file.io.hpp's MemoryMapped constructor in original_source/.
type Mapper struct {
	file   *os.File
	data   []byte
	stride int
}

// OpenMapper opens path read-only and maps its full contents. A
// non-positive stride selects DefaultStride(); any positive stride is
// used exactly as given, unclamped and not rounded to a page boundary
// (tests exercise strides as small as one byte).
func OpenMapper(path string, stride int) (*Mapper, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotReadable, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrInputNotReadable, path, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrInputNotReadable, path)
	}

	size := info.Size()
	if stride <= 0 {
		stride = DefaultStride()
	}

	if size == 0 {
		return &Mapper{file: f, data: nil, stride: stride}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrMapFailed, path, err)
	}
	if err := unix.Madvise(data, unix.MADV_SEQUENTIAL); err != nil {
		// advisory only: prefetch tuning, never fatal.
		_ = err
	}

	return &Mapper{file: f, data: data, stride: stride}, nil
}

// DefaultStride returns stridePages page-sized windows, falling back to
// spec.md §6's mandated default of 4096 bytes/page if the host doesn't
// expose a usable page size.
func DefaultStride() int {
	pageSize := os.Getpagesize()
	if pageSize <= 0 {
		pageSize = 4096
	}
	return stridePages * pageSize
}

// Len returns the total mapped length in bytes.
func (m *Mapper) Len() int { return len(m.data) }

// Chunk is a contiguous byte window [Offset, Offset+len(Bytes)) of the
// mapped file. It carries no ownership beyond the mapping's own
// lifetime: releasing a Chunk is just letting it become unreachable.
type Chunk struct {
	Offset int
	Bytes  []byte
	// Sentinel marks the single distinguished empty chunk the producer
	// enqueues after the mapper is exhausted (spec.md §4.4). Never
	// produced by Chunks(); set only by the pipeline layer.
	Sentinel bool
}

// Chunks returns a channel yielding chunks in file order, each of
// length m.stride except possibly the last. The channel is closed after
// the final chunk, or as soon as ctx is done — a caller that stops
// ranging early (e.g. because a sibling goroutine failed) must cancel
// ctx, or the feeding goroutine below would block forever trying to
// send a chunk nobody will ever receive. This is the "lazy sequence of
// fixed-size byte windows" spec.md §4.2 asks for; a channel is the
// idiomatic Go stand-in for the coroutine generator (`generate_mmap`)
// the original C++ source uses (spec.md's Design Notes call out that
// any pull-based iterator abstraction satisfies the contract).
func (m *Mapper) Chunks(ctx context.Context) <-chan Chunk {
	out := make(chan Chunk)
	go func() {
		defer close(out)
		for off := 0; off < len(m.data); off += m.stride {
			end := off + m.stride
			if end > len(m.data) {
				end = len(m.data)
			}
			select {
			case out <- Chunk{Offset: off, Bytes: m.data[off:end]}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Close unmaps the file and releases the descriptor. Safe to call once
// after all chunks handed out by Chunks have been consumed.
func (m *Mapper) Close() error {
	var err error
	if m.data != nil {
		err = unix.Munmap(m.data)
	}
	if cerr := m.file.Close(); err == nil {
		err = cerr
	}
	return err
}
