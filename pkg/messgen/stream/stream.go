// Package stream 在 io.Reader / io.Writer 之上按帧读写，帧格式与 messgen 相同。
package stream

import (
	"encoding/binary"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/lk2023060901/messgen-go/pkg/messgen"
	"github.com/lk2023060901/messgen-go/pkg/util/merr"
)

// Reader 从流中逐帧读取。
//
// ReadFrame 返回的 Descriptor 引用 Reader 内部缓冲区，只在下一次读取前有效；
// 需要长期保留的负载由调用方自行拷贝，或在解码时通过 Allocator 复制。
type Reader struct {
	r          io.Reader
	buf        []byte
	maxPayload int
}

type ReaderOption func(*Reader)

// WithMaxPayload 限制可接受的负载长度，超出时 ReadFrame 返回 ErrPayloadTooLarge。
// 默认不超过 messgen.MaxPayloadSize。
func WithMaxPayload(n int) ReaderOption {
	return func(r *Reader) {
		if n >= 0 && n < messgen.MaxPayloadSize {
			r.maxPayload = n
		}
	}
}

func NewReader(r io.Reader, opts ...ReaderOption) *Reader {
	sr := &Reader{
		r:          r,
		buf:        make([]byte, messgen.HeaderSize, 512),
		maxPayload: messgen.MaxPayloadSize,
	}
	for _, opt := range opts {
		opt(sr)
	}
	return sr
}

// ReadFrame 读取下一帧。
//
// 在帧边界处遇到流结束时返回 io.EOF；帧读到一半流结束时返回的错误同时满足
// errors.Is(err, io.ErrUnexpectedEOF) 与 errors.Is(err, merr.ErrIoUnexpectEOF)。
// 负载超出限制时 Reader 不再与帧边界对齐，调用方应放弃该流。
func (r *Reader) ReadFrame() (messgen.Descriptor, error) {
	hdr := r.buf[:messgen.HeaderSize]
	if n, err := io.ReadFull(r.r, hdr); err != nil {
		return messgen.Descriptor{}, readErr(err, n, messgen.HeaderSize)
	}
	size := int(binary.LittleEndian.Uint16(hdr[1:]))
	if size > r.maxPayload {
		return messgen.Descriptor{}, merr.WrapErrPayloadTooLarge(size, r.maxPayload)
	}

	total := messgen.HeaderSize + size
	if cap(r.buf) < total {
		grown := make([]byte, total)
		copy(grown, hdr)
		r.buf = grown
	}
	r.buf = r.buf[:total]
	if n, err := io.ReadFull(r.r, r.buf[messgen.HeaderSize:]); err != nil {
		return messgen.Descriptor{}, readErr(eofMidFrame(err), messgen.HeaderSize+n, total)
	}

	return messgen.DecodeHeader(r.buf)
}

// ReadMessage 读取下一帧并解码到 m，见 messgen.Decode。
func (r *Reader) ReadMessage(m messgen.Message, alloc messgen.Allocator) error {
	d, err := r.ReadFrame()
	if err != nil {
		return err
	}
	return messgen.Decode(d, m, alloc)
}

// 读取负载时遇到 io.EOF 说明帧不完整。
func eofMidFrame(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func readErr(err error, read, want int) error {
	switch {
	case err == io.EOF:
		return io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return merr.Combine(io.ErrUnexpectedEOF, merr.WrapErrIoUnexpectEOF(read, want))
	default:
		return merr.WrapErrIoFailed(err)
	}
}

// Writer 把消息编码为帧写入流，每帧只调用一次底层 Write。
// Writer 复用内部缓冲区，不能在多个 goroutine 间共享。
type Writer struct {
	w   io.Writer
	buf []byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:   w,
		buf: make([]byte, 0, 512),
	}
}

// WriteMessage 编码 m 并写出一帧，返回写出的字节数。
func (w *Writer) WriteMessage(m messgen.Message) (int, error) {
	buf, err := messgen.Append(w.buf[:0], m)
	if err != nil {
		return 0, err
	}
	w.buf = buf
	return w.flush()
}

// WriteFrame 以给定类型 ID 写出一帧原始负载。
func (w *Writer) WriteFrame(typeID uint8, payload []byte) (int, error) {
	if len(payload) > messgen.MaxPayloadSize {
		return 0, merr.WrapErrPayloadTooLarge(len(payload), messgen.MaxPayloadSize)
	}
	total := messgen.HeaderSize + len(payload)
	if cap(w.buf) < total {
		w.buf = make([]byte, 0, total)
	}
	w.buf = w.buf[:total]
	messgen.PutHeader(w.buf, typeID, uint16(len(payload)))
	copy(w.buf[messgen.HeaderSize:], payload)
	return w.flush()
}

func (w *Writer) flush() (int, error) {
	n, err := w.w.Write(w.buf)
	if err != nil {
		return n, merr.WrapErrIoFailed(err)
	}
	if n < len(w.buf) {
		return n, merr.WrapErrIoFailed(io.ErrShortWrite)
	}
	return n, nil
}
