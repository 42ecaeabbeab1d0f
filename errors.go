package appendbytes

import "errors"

// ErrRange 请求的范围越界错误
var ErrRange = errors.New("range out of bounds")

// ErrAllocation 无法分配所需容量错误
var ErrAllocation = errors.New("allocation failed")

// ErrMergeFailed 两个切片无法合并错误
var ErrMergeFailed = errors.New("slices cannot be merged")

// ErrClosed 所有者句柄已关闭错误
var ErrClosed = errors.New("append-only bytes closed")
