// Package arena 提供一个基于池化内存块的线性分配器，用于解码变长字段。
//
// 同一个 Arena 分配出的内存在 Reset 或 Release 之前一直有效，
// 解码出的消息引用这些内存，因此消息的生命周期不能超过 Arena。
// Arena 不是并发安全的，每个 goroutine 应使用各自的 Arena。
package arena

import (
	"github.com/valyala/bytebufferpool"

	"github.com/lk2023060901/messgen-go/pkg/util/merr"
)

// DefaultCapacity 为 New(0) 时使用的默认容量。
const DefaultCapacity = 4 * 1024

var slabPool bytebufferpool.Pool

// Arena 按顺序从一块固定大小的内存中切分空间，容量耗尽后 Alloc 返回 nil。
type Arena struct {
	slab *bytebufferpool.ByteBuffer
	off  int
	// short 为最近一次失败的 Alloc 请求的字节数，成功的 Alloc 会清零。
	short int
}

// New 创建容量为 capacity 字节的 Arena，capacity <= 0 时使用 DefaultCapacity。
func New(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	slab := slabPool.Get()
	if cap(slab.B) < capacity {
		slab.B = make([]byte, capacity)
	} else {
		slab.B = slab.B[:capacity]
	}
	return &Arena{slab: slab}
}

// Alloc 返回长度为 n 的已清零内存，空间不足或已 Release 时返回 nil。
// 返回的切片容量被限制为 n，append 不会越界写到相邻分配上。
func (a *Arena) Alloc(n int) []byte {
	if n < 0 {
		return nil
	}
	if a.slab == nil || n > len(a.slab.B)-a.off {
		a.short = max(n, 1)
		return nil
	}
	a.short = 0
	end := a.off + n
	b := a.slab.B[a.off:end:end]
	clear(b)
	a.off = end
	return b
}

// AllocErr 在最近一次 Alloc 因容量不足失败时返回 ErrAllocExhausted。
func (a *Arena) AllocErr() error {
	if a.short == 0 {
		return nil
	}
	return merr.WrapErrAllocExhausted(a.short, a.Available())
}

// Used 返回已分配的字节数。
func (a *Arena) Used() int {
	return a.off
}

// Cap 返回总容量，Release 之后为 0。
func (a *Arena) Cap() int {
	if a.slab == nil {
		return 0
	}
	return len(a.slab.B)
}

// Available 返回剩余可分配的字节数。
func (a *Arena) Available() int {
	return a.Cap() - a.off
}

// Reset 回收全部已分配空间以便复用，之前分配的内存随之失效。
func (a *Arena) Reset() {
	a.off = 0
	a.short = 0
}

// Release 把内存块归还到池中，之后 Alloc 始终返回 nil。
func (a *Arena) Release() {
	if a.slab == nil {
		return
	}
	slabPool.Put(a.slab)
	a.slab = nil
	a.off = 0
	a.short = 0
}
