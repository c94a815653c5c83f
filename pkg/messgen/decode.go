package messgen

import (
	"github.com/lk2023060901/messgen-go/pkg/util/merr"
)

// Decode 按 m 的类型解码 d 描述的帧，结果写入 m。
//
// d.TypeID 与 m.TypeID() 不一致时返回 ErrTypeMismatch；消息体解码返回 0
// 时返回 ErrBodyDecode，若 alloc 实现了 AllocReporter 且报告了耗尽，错误同时
// 满足 ErrAllocExhausted；消息体没有消费完整个负载时返回 ErrTrailingPayload。
// 空负载且解码后 EncodedSize() 为 0 的消息视为成功。
func Decode(d Descriptor, m Message, alloc Allocator) error {
	return decode(d, m, alloc, true)
}

// DecodeLoose 与 Decode 相同，但允许消息体只消费负载的一部分。
func DecodeLoose(d Descriptor, m Message, alloc Allocator) error {
	return decode(d, m, alloc, false)
}

// DecodeAs 创建一个新的 T 并解码，类型在调用处静态确定：
//
//	tm, err := messgen.DecodeAs[demo.Telemetry](d, alloc)
func DecodeAs[T any, P MessagePtr[T]](d Descriptor, alloc Allocator) (P, error) {
	p := P(new(T))
	if err := Decode(d, p, alloc); err != nil {
		return nil, err
	}
	return p, nil
}

func decode(d Descriptor, m Message, alloc Allocator, strict bool) error {
	if m == nil {
		return merr.WrapErrParameterInvalidMsg("message is nil")
	}
	if alloc == nil {
		alloc = HeapAllocator{}
	}
	if d.TypeID != m.TypeID() {
		return merr.WrapErrTypeMismatch(m.TypeID(), d.TypeID)
	}

	size := len(d.Payload)
	n := m.DecodeBody(d.Payload, alloc)
	switch {
	case n == 0 && size == 0 && m.EncodedSize() == 0:
		return nil
	case n <= 0:
		err := merr.WrapErrBodyDecode(d.TypeID, size)
		if r, ok := alloc.(AllocReporter); ok {
			if allocErr := r.AllocErr(); allocErr != nil {
				return merr.Combine(err, allocErr)
			}
		}
		return err
	case n > size:
		return merr.WrapErrBodyDecode(d.TypeID, size, "consumed past payload end")
	case strict && n < size:
		return merr.WrapErrTrailingPayload(d.TypeID, n, size)
	}
	return nil
}
