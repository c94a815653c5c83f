package messgen

import (
	"github.com/lk2023060901/messgen-go/pkg/util/merr"
)

// SerializedSize 返回消息编码后包含帧头的总长度。
func SerializedSize(m Message) int {
	return HeaderSize + m.EncodedSize()
}

// Encode 把 m 编码为一帧写入 dst，返回写入的字节数。
//
// 要么完整写入整帧，要么不写任何字节：dst 容量不足时返回 0 和
// ErrBufferTooSmall，消息体超过 MaxPayloadSize 时返回 ErrPayloadTooLarge。
// 帧头只携带类型与长度，更高层的字段（序号等）由调用方自行维护。
func Encode(m Message, dst []byte) (int, error) {
	if m == nil {
		return 0, merr.WrapErrParameterInvalidMsg("message is nil")
	}
	size, err := checkBodySize(m)
	if err != nil {
		return 0, err
	}
	total := HeaderSize + size
	if len(dst) < total {
		return 0, merr.WrapErrBufferTooSmall(total, len(dst))
	}

	PutHeader(dst, m.TypeID(), uint16(size))
	m.EncodeBody(dst[HeaderSize:total])
	return total, nil
}

// Append 把 m 编码后追加到 dst 末尾并返回新的切片，容量不够时会扩容。
// 失败时返回原始 dst。
func Append(dst []byte, m Message) ([]byte, error) {
	if m == nil {
		return dst, merr.WrapErrParameterInvalidMsg("message is nil")
	}
	size, err := checkBodySize(m)
	if err != nil {
		return dst, err
	}
	start := len(dst)
	total := HeaderSize + size
	if cap(dst)-start < total {
		grown := make([]byte, start, start+total+start/4)
		copy(grown, dst)
		dst = grown
	}
	out := dst[:start+total]
	PutHeader(out[start:], m.TypeID(), uint16(size))
	m.EncodeBody(out[start+HeaderSize:])
	return out, nil
}

func checkBodySize(m Message) (int, error) {
	size := m.EncodedSize()
	if size < 0 {
		return 0, merr.WrapErrParameterInvalidRange(0, MaxPayloadSize, size, "encoded size")
	}
	if size > MaxPayloadSize {
		return 0, merr.WrapErrPayloadTooLarge(size, MaxPayloadSize)
	}
	return size, nil
}
