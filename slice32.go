package appendbytes

import (
	"fmt"
	"math"
	"sync/atomic"
)

// BytesSlice32 is a BytesSlice whose bounds are stored as uint32, for
// callers holding very large numbers of views over sequences known to
// stay under 4 GiB. Purely a representation-size optimization; semantics
// match BytesSlice.
type BytesSlice32 struct {
	raw   *block
	start uint32
	end   uint32
}

// Slice32 mints a narrow-bound view over [start, end) of the committed
// region. Fails with ErrRange if a bound exceeds math.MaxUint32.
func (a *AppendOnlyBytes) Slice32(start, end int) (*BytesSlice32, error) {
	if atomic.LoadInt32(&a.closed) == 1 {
		return nil, ErrClosed
	}
	if err := checkRange(start, end, a.len); err != nil {
		return nil, err
	}
	if uint64(end) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d..%d exceeds uint32 bounds", ErrRange, start, end)
	}
	a.raw.acquire()
	return &BytesSlice32{raw: a.raw, start: uint32(start), end: uint32(end)}, nil
}

// Compact converts the view to narrow bounds. Fails with ErrRange if an
// offset does not fit in uint32. The result holds its own reference;
// s is unaffected and must still be freed.
func (s *BytesSlice) Compact() (*BytesSlice32, error) {
	if uint64(s.end) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d..%d exceeds uint32 bounds", ErrRange, s.start, s.end)
	}
	s.raw.acquire()
	return &BytesSlice32{raw: s.raw, start: uint32(s.start), end: uint32(s.end)}, nil
}

// Wide converts back to a regular view. The result holds its own
// reference.
func (s *BytesSlice32) Wide() *BytesSlice {
	s.raw.acquire()
	return &BytesSlice{raw: s.raw, start: int(s.start), end: int(s.end)}
}

// Bytes returns the viewed range without copying, nil after Free.
func (s *BytesSlice32) Bytes() []byte {
	if s.raw.freed() {
		logWarnf("Bytes on freed slice")
		return nil
	}
	return s.raw.buf[s.start:s.end]
}

// Len reports the view's length.
func (s *BytesSlice32) Len() int {
	return int(s.end - s.start)
}

// IsEmpty reports whether the view covers no bytes.
func (s *BytesSlice32) IsEmpty() bool {
	return s.end == s.start
}

// Slice mints a narrower view relative to this view's bounds, sharing the
// same block.
func (s *BytesSlice32) Slice(start, end int) (*BytesSlice32, error) {
	if err := checkRange(start, end, s.Len()); err != nil {
		return nil, err
	}
	s.raw.acquire()
	return &BytesSlice32{
		raw:   s.raw,
		start: s.start + uint32(start),
		end:   s.start + uint32(end),
	}, nil
}

// Clone duplicates the view; each copy must be freed independently.
func (s *BytesSlice32) Clone() *BytesSlice32 {
	s.raw.acquire()
	return &BytesSlice32{raw: s.raw, start: s.start, end: s.end}
}

// Free releases the view's share of the block's live-reference count.
func (s *BytesSlice32) Free() {
	s.raw.release()
}
