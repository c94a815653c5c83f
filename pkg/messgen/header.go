package messgen

import (
	"encoding/binary"

	"github.com/lk2023060901/messgen-go/pkg/util/merr"
)

const (
	// HeaderSize 为固定帧头长度。
	HeaderSize = 3
	// MaxPayloadSize 为 16 位长度字段能表示的最大负载。
	MaxPayloadSize = 1<<16 - 1
)

// Descriptor 是解析帧头后的结果。
//
// Payload 直接引用源缓冲区 buf[3:3+Size]，不复制；
// 源缓冲区被修改或回收后 Descriptor 随之失效。
type Descriptor struct {
	TypeID  uint8
	Size    uint16
	Payload []byte
}

// TotalSize 返回包含帧头在内的整帧长度，用于跳到下一帧。
func (d Descriptor) TotalSize() int {
	return HeaderSize + int(d.Size)
}

// DecodeHeader 解析 buf 起始处的帧头。
//
// buf 不足 3 字节返回 ErrHeaderTruncated；声明的负载超出 buf 剩余部分返回
// ErrPayloadTruncated。
func DecodeHeader(buf []byte) (Descriptor, error) {
	if len(buf) < HeaderSize {
		return Descriptor{}, merr.WrapErrHeaderTruncated(HeaderSize, len(buf))
	}
	d, ok := parseHeader(buf)
	if !ok {
		return Descriptor{}, merr.WrapErrPayloadTruncated(int(d.Size), len(buf)-HeaderSize)
	}
	return d, nil
}

// parseHeader 是 DecodeHeader 的无分配版本，供遍历的热路径使用。
// 失败时仍会返回已读出的帧头字段（如果有）。
func parseHeader(buf []byte) (Descriptor, bool) {
	if len(buf) < HeaderSize {
		return Descriptor{}, false
	}
	d := Descriptor{
		TypeID: buf[0],
		Size:   binary.LittleEndian.Uint16(buf[1:HeaderSize]),
	}
	end := HeaderSize + int(d.Size)
	if len(buf) < end {
		return d, false
	}
	// 限制容量，防止对 Payload 的 append 覆盖下一帧。
	d.Payload = buf[HeaderSize:end:end]
	return d, true
}

// PutHeader 把帧头写入 dst[0:3]。dst 长度不足 3 时 panic。
func PutHeader(dst []byte, typeID uint8, size uint16) {
	_ = dst[HeaderSize-1]
	dst[0] = typeID
	binary.LittleEndian.PutUint16(dst[1:HeaderSize], size)
}
