// Package demo 是一组手写的消息类型，形式上等同于 schema 编译器的生成代码，
// 用于测试编解码层和 messgen-dump 工具。
//
// 所有多字节字段均为小端序。
package demo

import (
	"encoding/binary"
	"fmt"

	"github.com/lk2023060901/messgen-go/pkg/messgen"
)

const (
	HeartbeatType uint8 = 1
	TelemetryType uint8 = 2
	TrackType     uint8 = 3
	RawType       uint8 = 7
)

var (
	_ messgen.Message = (*Heartbeat)(nil)
	_ messgen.Message = (*Telemetry)(nil)
	_ messgen.Message = (*Track)(nil)
	_ messgen.Message = (*Raw)(nil)
)

// Name 返回类型 ID 对应的消息名，未知类型返回 "unknown(<id>)"。
func Name(typeID uint8) string {
	switch typeID {
	case HeartbeatType:
		return "Heartbeat"
	case TelemetryType:
		return "Telemetry"
	case TrackType:
		return "Track"
	case RawType:
		return "Raw"
	default:
		return fmt.Sprintf("unknown(%d)", typeID)
	}
}

// New 按类型 ID 创建一个空消息，未知类型返回 nil。
func New(typeID uint8) messgen.Message {
	switch typeID {
	case HeartbeatType:
		return &Heartbeat{}
	case TelemetryType:
		return &Telemetry{}
	case TrackType:
		return &Track{}
	case RawType:
		return &Raw{}
	default:
		return nil
	}
}

// Heartbeat 没有消息体。
type Heartbeat struct{}

func (*Heartbeat) TypeID() uint8 { return HeartbeatType }

func (*Heartbeat) EncodedSize() int { return 0 }

func (*Heartbeat) EncodeBody([]byte) {}

func (*Heartbeat) DecodeBody([]byte, messgen.Allocator) int { return 0 }

const telemetrySize = 4 + 2 + 2 + 1

// Telemetry 是定长消息。
type Telemetry struct {
	Seq         uint32 `json:"seq"`
	Temperature int16  `json:"temperature"`
	Voltage     uint16 `json:"voltage"`
	Flags       uint8  `json:"flags"`
}

func (*Telemetry) TypeID() uint8 { return TelemetryType }

func (*Telemetry) EncodedSize() int { return telemetrySize }

func (m *Telemetry) EncodeBody(dst []byte) {
	binary.LittleEndian.PutUint32(dst[0:4], m.Seq)
	binary.LittleEndian.PutUint16(dst[4:6], uint16(m.Temperature))
	binary.LittleEndian.PutUint16(dst[6:8], m.Voltage)
	dst[8] = m.Flags
}

func (m *Telemetry) DecodeBody(src []byte, _ messgen.Allocator) int {
	if len(src) < telemetrySize {
		return 0
	}
	m.Seq = binary.LittleEndian.Uint32(src[0:4])
	m.Temperature = int16(binary.LittleEndian.Uint16(src[4:6]))
	m.Voltage = binary.LittleEndian.Uint16(src[6:8])
	m.Flags = src[8]
	return telemetrySize
}

// Raw 携带一段不透明的字节，解码时拷贝到 Allocator 提供的内存中。
type Raw struct {
	Body []byte `json:"body"`
}

func (*Raw) TypeID() uint8 { return RawType }

func (m *Raw) EncodedSize() int { return len(m.Body) }

func (m *Raw) EncodeBody(dst []byte) {
	copy(dst, m.Body)
}

func (m *Raw) DecodeBody(src []byte, alloc messgen.Allocator) int {
	buf := alloc.Alloc(len(src))
	if buf == nil {
		return 0
	}
	copy(buf, src)
	m.Body = buf
	return len(src)
}
