// Package compress 为帧文件提供整块 zstd 压缩与解压。
package compress

import (
	"bytes"
	"runtime"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic 为 zstd 帧的起始魔数。
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// IsZstd 判断 data 是否以 zstd 魔数开头。
func IsZstd(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

// Zstd 持有独立的 encoder/decoder，不使用全局单例。
// EncodeAll/DecodeAll 可并发调用。
type Zstd struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewZstd 创建压缩器，concurrency <= 0 时使用 GOMAXPROCS。
func NewZstd(concurrency int) (*Zstd, error) {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	enc, err := zstd.NewWriter(nil,
		zstd.WithZeroFrames(true),
		zstd.WithEncoderConcurrency(concurrency),
	)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(concurrency))
	if err != nil {
		enc.Close()
		return nil, err
	}
	return &Zstd{enc: enc, dec: dec}, nil
}

// Compress 把 src 压缩后追加到 dst[:0]。
func (z *Zstd) Compress(dst, src []byte) ([]byte, error) {
	if z == nil || z.enc == nil {
		return nil, zstd.ErrEncoderClosed
	}
	return z.enc.EncodeAll(src, dst[:0]), nil
}

// Decompress 把 src 解压后追加到 dst[:0]。
func (z *Zstd) Decompress(dst, src []byte) ([]byte, error) {
	if z == nil || z.dec == nil {
		return nil, zstd.ErrDecoderClosed
	}
	return z.dec.DecodeAll(src, dst[:0])
}

// Close 释放 encoder/decoder，之后再调用返回 ErrEncoderClosed/ErrDecoderClosed。
func (z *Zstd) Close() {
	if z == nil {
		return
	}
	if z.enc != nil {
		_ = z.enc.Close()
		z.enc = nil
	}
	if z.dec != nil {
		z.dec.Close()
		z.dec = nil
	}
}
