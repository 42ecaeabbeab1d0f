// Package appendbytes implements an append-only byte container whose
// slices stay valid and immutable forever.
//
// A single owner appends bytes; any number of goroutines may hold slices
// into ranges the owner has already committed. A slice observes exactly
// the bytes present when it was minted, even after later appends force
// the owner onto a larger storage block: retired blocks stay alive for as
// long as a slice still references them, accounted by an atomic
// live-reference count, and are detached the moment the last referent
// drops.
package appendbytes

import (
	"fmt"
	"sync/atomic"
	"unicode/utf8"
)

// minCapacity is the floor for the doubling growth policy.
const minCapacity = 32

// AppendOnlyBytes is the owner handle: the single writer over the byte
// sequence. It is not safe for concurrent use by multiple writers; slices
// minted from it may be used from any goroutine.
type AppendOnlyBytes struct {
	raw    *block
	len    int
	closed int32
}

// New returns an empty container backed by a zero-capacity block; the
// byte region is first allocated on append.
func New() *AppendOnlyBytes {
	a, _ := WithCapacity(0)
	return a
}

// WithCapacity returns an empty container backed by a block of at least
// the given capacity.
func WithCapacity(capacity int) (*AppendOnlyBytes, error) {
	raw, err := allocBlock(capacity)
	if err != nil {
		return nil, err
	}
	return &AppendOnlyBytes{raw: raw}, nil
}

// Len reports the committed length.
func (a *AppendOnlyBytes) Len() int {
	return a.len
}

// Cap reports the capacity of the current storage block.
func (a *AppendOnlyBytes) Cap() int {
	return a.raw.capacity()
}

// IsEmpty reports whether no bytes have been committed.
func (a *AppendOnlyBytes) IsEmpty() bool {
	return a.len == 0
}

// Bytes returns the committed region of the current block without
// copying. The returned slice is valid only until the next append; unlike
// a slice view it does not extend the block's lifetime, so it must not be
// retained.
func (a *AppendOnlyBytes) Bytes() []byte {
	if atomic.LoadInt32(&a.closed) == 1 {
		return nil
	}
	return a.raw.buf[:a.len]
}

func (a *AppendOnlyBytes) String() string {
	return fmt.Sprintf("AppendOnlyBytes{data: %v, len: %d}", a.Bytes(), a.len)
}

// Append commits data at the end of the sequence, growing the storage
// block first if the remaining capacity is short. It is all-or-nothing:
// on error no byte is committed and the handle is unchanged. Committed
// positions are never rewritten.
func (a *AppendOnlyBytes) Append(data []byte) error {
	if err := a.reserve(len(data)); err != nil {
		return err
	}
	copy(a.raw.buf[a.len:], data)
	a.len += len(data)
	atomic.AddInt64(&stats.appends, 1)
	atomic.AddInt64(&stats.appendedBytes, int64(len(data)))
	return nil
}

// AppendByte commits a single byte.
func (a *AppendOnlyBytes) AppendByte(b byte) error {
	if err := a.reserve(1); err != nil {
		return err
	}
	a.raw.buf[a.len] = b
	a.len++
	atomic.AddInt64(&stats.appends, 1)
	atomic.AddInt64(&stats.appendedBytes, 1)
	return nil
}

// AppendString commits the bytes of s.
func (a *AppendOnlyBytes) AppendString(s string) error {
	if err := a.reserve(len(s)); err != nil {
		return err
	}
	copy(a.raw.buf[a.len:], s)
	a.len += len(s)
	atomic.AddInt64(&stats.appends, 1)
	atomic.AddInt64(&stats.appendedBytes, int64(len(s)))
	return nil
}

// reserve ensures capacity for size more bytes, replacing the current
// block with a larger one when needed. The old block is not freed here;
// the owner merely releases its own share, so outstanding slices keep it
// alive for exactly as long as they need it.
func (a *AppendOnlyBytes) reserve(size int) error {
	if atomic.LoadInt32(&a.closed) == 1 {
		logWarnf("append on closed handle")
		return ErrClosed
	}
	target := a.len + size
	if size < 0 || target < a.len || target > maxCapacity {
		return fmt.Errorf("%w: growing %d bytes past length %d", ErrAllocation, size, a.len)
	}
	if target <= a.Cap() {
		return nil
	}

	next := a.Cap() * 2
	if next < minCapacity {
		next = minCapacity
	}
	for next < target {
		next *= 2
	}
	if next > maxCapacity {
		// The doubling overshot; the exact target still fits.
		next = target
	}

	grown, err := allocBlock(next)
	if err != nil {
		return err
	}
	copy(grown.buf, a.raw.buf[:a.len])
	old := a.raw
	a.raw = grown
	old.release()
	atomic.AddInt64(&stats.growths, 1)
	logDebugf("storage block grown to %d bytes for length %d", next, target)
	return nil
}

// Slice mints a view over [start, end) of the committed region. O(1): the
// view shares the current block and pins it alive, no bytes are copied.
// Later appends never alter what the view observes.
func (a *AppendOnlyBytes) Slice(start, end int) (*BytesSlice, error) {
	if atomic.LoadInt32(&a.closed) == 1 {
		return nil, ErrClosed
	}
	if err := checkRange(start, end, a.len); err != nil {
		return nil, err
	}
	a.raw.acquire()
	return &BytesSlice{raw: a.raw, start: start, end: end}, nil
}

// SliceFrom mints a view over [start, Len()).
func (a *AppendOnlyBytes) SliceFrom(start int) (*BytesSlice, error) {
	return a.Slice(start, a.len)
}

// SliceTo mints a view over [0, end).
func (a *AppendOnlyBytes) SliceTo(end int) (*BytesSlice, error) {
	return a.Slice(0, end)
}

// SliceAll mints a view over the whole committed region.
func (a *AppendOnlyBytes) SliceAll() (*BytesSlice, error) {
	return a.Slice(0, a.len)
}

// ToSlice returns the whole committed region as a view and closes the
// handle: the owner's share of the block transfers to the view. Returns
// nil if the handle was already closed.
func (a *AppendOnlyBytes) ToSlice() *BytesSlice {
	if !atomic.CompareAndSwapInt32(&a.closed, 0, 1) {
		logWarnf("ToSlice on closed handle")
		return nil
	}
	return &BytesSlice{raw: a.raw, start: 0, end: a.len}
}

// SliceString returns [start, end) of the committed region as a string,
// failing if the range does not hold valid UTF-8.
func (a *AppendOnlyBytes) SliceString(start, end int) (string, error) {
	if atomic.LoadInt32(&a.closed) == 1 {
		return "", ErrClosed
	}
	if err := checkRange(start, end, a.len); err != nil {
		return "", err
	}
	b := a.raw.buf[start:end]
	if !utf8.Valid(b) {
		return "", fmt.Errorf("bytes %d..%d are not valid UTF-8", start, end)
	}
	return string(b), nil
}

// Clone deep-copies the committed bytes into a fresh block with the same
// capacity. The clone shares nothing with the original.
func (a *AppendOnlyBytes) Clone() *AppendOnlyBytes {
	if atomic.LoadInt32(&a.closed) == 1 {
		logWarnf("Clone on closed handle")
		return New()
	}
	raw, err := allocBlock(a.Cap())
	if err != nil {
		// Cap() was already representable, so this cannot happen.
		panic(err)
	}
	copy(raw.buf, a.Bytes())
	return &AppendOnlyBytes{raw: raw, len: a.len}
}

// Close releases the owner's share of the current block. Outstanding
// slices are unaffected; the handle rejects further appends and slicing.
// Close is idempotent.
func (a *AppendOnlyBytes) Close() {
	if atomic.CompareAndSwapInt32(&a.closed, 0, 1) {
		a.raw.release()
	}
}

// checkRange validates 0 <= start <= end <= length, per the container's
// slicing contract. Violations are reported, never clamped.
func checkRange(start, end, length int) error {
	if start < 0 || start > end || end > length {
		return fmt.Errorf("%w: %d..%d of %d", ErrRange, start, end, length)
	}
	return nil
}
