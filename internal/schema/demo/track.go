package demo

import (
	"encoding/binary"

	"github.com/lk2023060901/messgen-go/pkg/messgen"
)

const pointSize = 4

// Point 为轨迹上的一个点。
type Point struct {
	X int16 `json:"x"`
	Y int16 `json:"y"`
}

// PointList 是以小端字节存放的变长点数组，长度由 Len 给出。
// 解码得到的 PointList 引用 Allocator 分配的内存。
type PointList struct {
	raw []byte
}

// MakePointList 把 points 编码为 PointList。
func MakePointList(points ...Point) PointList {
	raw := make([]byte, len(points)*pointSize)
	for i, p := range points {
		putPoint(raw[i*pointSize:], p)
	}
	return PointList{raw: raw}
}

func (l PointList) Len() int {
	return len(l.raw) / pointSize
}

func (l PointList) At(i int) Point {
	b := l.raw[i*pointSize : (i+1)*pointSize]
	return Point{
		X: int16(binary.LittleEndian.Uint16(b[0:2])),
		Y: int16(binary.LittleEndian.Uint16(b[2:4])),
	}
}

// Points 把 PointList 展开为新的切片。
func (l PointList) Points() []Point {
	out := make([]Point, l.Len())
	for i := range out {
		out[i] = l.At(i)
	}
	return out
}

func putPoint(dst []byte, p Point) {
	binary.LittleEndian.PutUint16(dst[0:2], uint16(p.X))
	binary.LittleEndian.PutUint16(dst[2:4], uint16(p.Y))
}

// Track 包含一个变长标签与一个变长点数组：
//
//	id u16 | label_len u8 | label | count u16 | count * (x i16, y i16)
type Track struct {
	ID     uint16
	Label  []byte
	Points PointList
}

func (*Track) TypeID() uint8 { return TrackType }

// label 返回实际编码的标签，超过 255 字节的部分被截断。
func (m *Track) label() []byte {
	if len(m.Label) > 0xFF {
		return m.Label[:0xFF]
	}
	return m.Label
}

func (m *Track) EncodedSize() int {
	return 2 + 1 + len(m.label()) + 2 + len(m.Points.raw)
}

func (m *Track) EncodeBody(dst []byte) {
	label := m.label()
	binary.LittleEndian.PutUint16(dst[0:2], m.ID)
	dst[2] = uint8(len(label))
	off := 3 + copy(dst[3:], label)
	binary.LittleEndian.PutUint16(dst[off:off+2], uint16(m.Points.Len()))
	copy(dst[off+2:], m.Points.raw)
}

func (m *Track) DecodeBody(src []byte, alloc messgen.Allocator) int {
	if len(src) < 3 {
		return 0
	}
	id := binary.LittleEndian.Uint16(src[0:2])
	labelLen := int(src[2])
	off := 3
	if len(src) < off+labelLen+2 {
		return 0
	}
	label := alloc.Alloc(labelLen)
	if label == nil {
		return 0
	}
	copy(label, src[off:off+labelLen])
	off += labelLen

	count := int(binary.LittleEndian.Uint16(src[off : off+2]))
	off += 2
	n := count * pointSize
	if len(src) < off+n {
		return 0
	}
	raw := alloc.Alloc(n)
	if raw == nil {
		return 0
	}
	copy(raw, src[off:off+n])
	off += n

	m.ID = id
	m.Label = label
	m.Points = PointList{raw: raw}
	return off
}
