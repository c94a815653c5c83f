package messgen

import (
	"iter"
)

// Walk 依次访问 buf 中首尾相接的每一个完整帧，返回已消费的字节数。
//
// 帧头解析失败（头部不完整，或声明的负载超出剩余数据）即视为有效数据结束，
// 不作为错误上报；末尾的残帧或垃圾数据被忽略，调用方可用返回值与 len(buf)
// 比较判断是否有未消费的字节。visit 收到的 Descriptor 只在 buf 有效期内可用。
func Walk(buf []byte, visit func(Descriptor)) int {
	off := 0
	for {
		d, ok := parseHeader(buf[off:])
		if !ok {
			return off
		}
		visit(d)
		off += d.TotalSize()
	}
}

// WalkE 与 Walk 相同，但 visit 返回错误时立即停止。
// 此时返回出错帧的起始偏移和该错误，出错帧不计入已消费字节。
func WalkE(buf []byte, visit func(Descriptor) error) (int, error) {
	off := 0
	for {
		d, ok := parseHeader(buf[off:])
		if !ok {
			return off, nil
		}
		if err := visit(d); err != nil {
			return off, err
		}
		off += d.TotalSize()
	}
}

// Frames 返回 buf 中完整帧的迭代器，语义与 Walk 相同。
func Frames(buf []byte) iter.Seq[Descriptor] {
	return func(yield func(Descriptor) bool) {
		off := 0
		for {
			d, ok := parseHeader(buf[off:])
			if !ok || !yield(d) {
				return
			}
			off += d.TotalSize()
		}
	}
}

// Scanner 以拉取方式遍历 buf 中的帧，适合需要提前停止的调用方。
//
//	sc := messgen.NewScanner(buf)
//	for sc.Next() {
//		handle(sc.Frame())
//	}
//	if err := sc.Err(); err != nil {
//		// sc.Remaining() 为未消费的尾部数据
//	}
type Scanner struct {
	buf []byte
	off int
	cur Descriptor
}

func NewScanner(buf []byte) *Scanner {
	return &Scanner{buf: buf}
}

// Next 前进到下一帧，没有完整帧时返回 false。
func (s *Scanner) Next() bool {
	d, ok := parseHeader(s.buf[s.off:])
	if !ok {
		s.cur = Descriptor{}
		return false
	}
	s.cur = d
	s.off += d.TotalSize()
	return true
}

// Frame 返回最近一次 Next 得到的帧。
func (s *Scanner) Frame() Descriptor {
	return s.cur
}

// Offset 返回已消费的字节数。
func (s *Scanner) Offset() int {
	return s.off
}

// Remaining 返回尚未消费的字节，引用原缓冲区。
func (s *Scanner) Remaining() []byte {
	return s.buf[s.off:]
}

// Err 在 Next 返回 false 后给出停止原因；缓冲区恰好被完整消费时返回 nil。
func (s *Scanner) Err() error {
	if s.off == len(s.buf) {
		return nil
	}
	_, err := DecodeHeader(s.buf[s.off:])
	return err
}
