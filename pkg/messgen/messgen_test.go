package messgen

import (
	"bytes"
)

// 测试用消息类型，避免依赖 internal/schema/demo 造成循环引用。

const (
	blobType  uint8 = 7
	emptyType uint8 = 1
	pairType  uint8 = 2
)

// blob 是任意长度的不透明消息体。
type blob struct {
	body []byte
}

func (*blob) TypeID() uint8 { return blobType }

func (m *blob) EncodedSize() int { return len(m.body) }

func (m *blob) EncodeBody(dst []byte) { copy(dst, m.body) }

func (m *blob) DecodeBody(src []byte, alloc Allocator) int {
	buf := alloc.Alloc(len(src))
	if buf == nil {
		return 0
	}
	copy(buf, src)
	m.body = buf
	return len(src)
}

func (m *blob) equal(o *blob) bool { return bytes.Equal(m.body, o.body) }

// empty 没有消息体。
type empty struct{}

func (*empty) TypeID() uint8 { return emptyType }

func (*empty) EncodedSize() int { return 0 }

func (*empty) EncodeBody([]byte) {}

func (*empty) DecodeBody([]byte, Allocator) int { return 0 }

// pair 是两个字节的定长消息，只消费前两个字节。
type pair struct {
	a, b byte
}

func (*pair) TypeID() uint8 { return pairType }

func (*pair) EncodedSize() int { return 2 }

func (m *pair) EncodeBody(dst []byte) {
	dst[0], dst[1] = m.a, m.b
}

func (m *pair) DecodeBody(src []byte, _ Allocator) int {
	if len(src) < 2 {
		return 0
	}
	m.a, m.b = src[0], src[1]
	return 2
}

// sized 报告一个任意的消息体长度，用于测试长度校验。
type sized struct {
	size int
}

func (*sized) TypeID() uint8 { return 99 }

func (m *sized) EncodedSize() int { return m.size }

func (*sized) EncodeBody([]byte) {}

func (*sized) DecodeBody([]byte, Allocator) int { return 0 }

// greedy 声称消费了比负载更多的字节。
type greedy struct{}

func (*greedy) TypeID() uint8 { return 5 }

func (*greedy) EncodedSize() int { return 1 }

func (*greedy) EncodeBody(dst []byte) { dst[0] = 1 }

func (*greedy) DecodeBody(src []byte, _ Allocator) int { return len(src) + 1 }

type nilAllocator struct{}

func (nilAllocator) Alloc(int) []byte { return nil }
