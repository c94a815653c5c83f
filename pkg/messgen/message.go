package messgen

// Message 是每个生成消息类型必须满足的契约。
//
// TypeID 对同一类型必须恒定，与值无关；解码时用来校验调用方期望的类型。
type Message interface {
	// TypeID 返回该类型在协议内唯一的类型 ID。
	TypeID() uint8

	// EncodedSize 返回消息体的精确字节数，不需要真正序列化。
	EncodedSize() int

	// EncodeBody 向 dst 写入恰好 EncodedSize() 个字节。
	// 调用方已经保证容量，实现不做边界检查。
	EncodeBody(dst []byte)

	// DecodeBody 从 src 还原消息体，返回消费的字节数。
	// 返回 0 表示失败（字段非法、长度不足或 alloc 耗尽）。
	DecodeBody(src []byte, alloc Allocator) int
}

// MessagePtr 约束一个指针类型实现了 Message，供 DecodeAs 在调用处静态分派。
type MessagePtr[T any] interface {
	*T
	Message
}

// Allocator 为解码过程中的变长字段提供临时内存。
//
// 返回的内存归属于被解码的消息，生命周期由调用方控制；
// 容量不足时返回 nil。
type Allocator interface {
	Alloc(n int) []byte
}

// AllocReporter 由能够说明 Alloc 失败原因的 Allocator 实现，
// 消息体解码失败时 Decode 会把该错误一并返回。
type AllocReporter interface {
	// AllocErr 返回最近一次 Alloc 的失败原因，最近一次 Alloc 成功时返回 nil。
	AllocErr() error
}

// HeapAllocator 直接从 Go 堆上分配，永不耗尽。
type HeapAllocator struct{}

var _ Allocator = HeapAllocator{}

func (HeapAllocator) Alloc(n int) []byte {
	if n < 0 {
		return nil
	}
	return make([]byte, n)
}
