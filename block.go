package appendbytes

import (
	"fmt"
	"math"
	"sync/atomic"
)

// block is one storage generation: a fixed-capacity byte region shared by
// the owner handle and every slice cut from it. The refcount is the only
// field mutated after publication; buf contents are written strictly
// beyond the committed prefix, and only by the owner.
type block struct {
	buf  []byte
	refs int32
}

// maxCapacity caps a single block so capacity arithmetic can never
// overflow int.
const maxCapacity = math.MaxInt / 2

// allocBlock returns a block with capacity cap and refcount 1, held by
// its creator.
func allocBlock(capacity int) (*block, error) {
	if capacity < 0 || capacity > maxCapacity {
		return nil, fmt.Errorf("%w: capacity %d", ErrAllocation, capacity)
	}
	atomic.AddInt64(&stats.blocksAlloc, 1)
	return &block{
		buf:  make([]byte, capacity),
		refs: 1,
	}, nil
}

func (b *block) capacity() int {
	return len(b.buf)
}

// acquire adds a live reference on behalf of a new slice or clone.
func (b *block) acquire() {
	atomic.AddInt32(&b.refs, 1)
}

// release drops one live reference. Whoever performs the final decrement
// detaches the byte region immediately, so retirement is deterministic
// rather than waiting on the collector.
func (b *block) release() {
	if atomic.AddInt32(&b.refs, -1) == 0 {
		b.buf = nil
		atomic.AddInt64(&stats.blocksFreed, 1)
		logDebugf("storage block freed")
	}
}

func (b *block) freed() bool {
	return atomic.LoadInt32(&b.refs) <= 0
}
