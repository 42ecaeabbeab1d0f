package appendbytes

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// BytesSlice is an immutable window over a byte range fixed at mint time.
// It pins the storage block it was cut from, so the bytes it observes
// never change or move, no matter what the owner appends afterwards or
// whether the owner is dropped entirely. Slices may be read, resliced,
// cloned, and freed from any goroutine.
type BytesSlice struct {
	raw   *block
	start int
	end   int
}

// FromBytes returns a standalone slice backed by its own block, with data
// copied in.
func FromBytes(data []byte) *BytesSlice {
	raw, err := allocBlock(len(data))
	if err != nil {
		// len(data) always fits a block.
		panic(err)
	}
	copy(raw.buf, data)
	return &BytesSlice{raw: raw, start: 0, end: len(data)}
}

// Bytes returns the viewed range without copying. The content is stable
// for the slice's whole lifetime. After Free it returns nil.
func (s *BytesSlice) Bytes() []byte {
	if s.raw.freed() {
		logWarnf("Bytes on freed slice")
		return nil
	}
	return s.raw.buf[s.start:s.end]
}

// Len reports the view's length.
func (s *BytesSlice) Len() int {
	return s.end - s.start
}

// IsEmpty reports whether the view covers no bytes.
func (s *BytesSlice) IsEmpty() bool {
	return s.end == s.start
}

// Start reports the view's absolute start offset within its block.
func (s *BytesSlice) Start() int {
	return s.start
}

// End reports the view's absolute end offset within its block.
func (s *BytesSlice) End() int {
	return s.end
}

func (s *BytesSlice) String() string {
	return fmt.Sprintf("BytesSlice{data: %v, start: %d, end: %d}", s.Bytes(), s.start, s.end)
}

// Slice mints a narrower view. The range is relative to this view's own
// bounds; the result shares the same block (another live reference), no
// bytes are copied, and the owner is not involved.
func (s *BytesSlice) Slice(start, end int) (*BytesSlice, error) {
	if err := checkRange(start, end, s.Len()); err != nil {
		return nil, err
	}
	s.raw.acquire()
	return &BytesSlice{raw: s.raw, start: s.start + start, end: s.start + end}, nil
}

// SliceString returns the given sub-range as a string, failing if it does
// not hold valid UTF-8.
func (s *BytesSlice) SliceString(start, end int) (string, error) {
	if err := checkRange(start, end, s.Len()); err != nil {
		return "", err
	}
	b := s.raw.buf[s.start+start : s.start+end]
	if !utf8.Valid(b) {
		return "", fmt.Errorf("bytes %d..%d are not valid UTF-8", start, end)
	}
	return string(b), nil
}

// Clone duplicates the view. Both views share the block; each must be
// freed independently.
func (s *BytesSlice) Clone() *BytesSlice {
	s.raw.acquire()
	return &BytesSlice{raw: s.raw, start: s.start, end: s.end}
}

// Free releases the view's share of the block's live-reference count. If
// this was the last reference the block is detached on the spot. Free the
// slice exactly once; an unfreed slice is not a leak (the collector still
// reclaims it), it just delays deterministic retirement.
func (s *BytesSlice) Free() {
	s.raw.release()
}

// replace rebinds the view to fresh's block and range, dropping the old
// reference if one was held. Used when decoding into an existing view.
func (s *BytesSlice) replace(fresh *BytesSlice) {
	old := s.raw
	*s = *fresh
	if old != nil {
		old.release()
	}
}

// Equal reports whether both views observe the same byte content.
func (s *BytesSlice) Equal(other *BytesSlice) bool {
	return bytes.Equal(s.Bytes(), other.Bytes())
}

// Compare orders two views by their byte content, like bytes.Compare.
func (s *BytesSlice) Compare(other *BytesSlice) int {
	return bytes.Compare(s.Bytes(), other.Bytes())
}

// SameBlock reports whether both views were cut from the same storage
// block generation.
func (s *BytesSlice) SameBlock(other *BytesSlice) bool {
	return s.raw == other.raw
}

// CanMerge reports whether other starts exactly where this view ends in
// the same block, so the two could be one contiguous view.
func (s *BytesSlice) CanMerge(other *BytesSlice) bool {
	return s.SameBlock(other) && s.end == other.start
}

// TryMerge extends this view in place to cover other's range when the two
// are adjacent in the same block. Fails with ErrMergeFailed otherwise.
// The merged view still holds a single reference; other keeps its own.
func (s *BytesSlice) TryMerge(other *BytesSlice) error {
	if !s.CanMerge(other) {
		return ErrMergeFailed
	}
	s.end = other.end
	return nil
}
