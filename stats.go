package appendbytes

import "sync/atomic"

// blockStats 保存存储块的统计信息
type blockStats struct {
	appends       int64 // 追加操作次数
	appendedBytes int64 // 追加的总字节数
	growths       int64 // 扩容次数
	blocksAlloc   int64 // 已分配的存储块数
	blocksFreed   int64 // 已释放的存储块数
}

var stats blockStats

// Stats is a point-in-time snapshot of the package-wide storage counters.
type Stats struct {
	Appends       int64
	AppendedBytes int64
	Growths       int64
	BlocksAlloc   int64
	BlocksFreed   int64
}

// ReadStats returns a snapshot of the storage counters. LiveBlocks is
// derived: blocks allocated minus blocks whose refcount reached zero.
func ReadStats() Stats {
	return Stats{
		Appends:       atomic.LoadInt64(&stats.appends),
		AppendedBytes: atomic.LoadInt64(&stats.appendedBytes),
		Growths:       atomic.LoadInt64(&stats.growths),
		BlocksAlloc:   atomic.LoadInt64(&stats.blocksAlloc),
		BlocksFreed:   atomic.LoadInt64(&stats.blocksFreed),
	}
}

// LiveBlocks reports how many storage blocks are currently retained by an
// owner handle or by outstanding slices.
func (s Stats) LiveBlocks() int64 {
	return s.BlocksAlloc - s.BlocksFreed
}
