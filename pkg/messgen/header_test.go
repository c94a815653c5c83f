package messgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/messgen-go/pkg/util/merr"
)

func TestDecodeHeaderExample(t *testing.T) {
	buf := []byte{0x07, 0x02, 0x00, 0xAA, 0xBB}
	d, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint8(7), d.TypeID)
	assert.Equal(t, uint16(2), d.Size)
	assert.Equal(t, []byte{0xAA, 0xBB}, d.Payload)
	assert.Equal(t, 5, d.TotalSize())
}

func TestDecodeHeaderTruncated(t *testing.T) {
	buf := []byte{0x01, 0x00, 0x00}
	for n := 0; n < HeaderSize; n++ {
		_, err := DecodeHeader(buf[:n])
		assert.ErrorIs(t, err, merr.ErrHeaderTruncated, "length %d", n)
	}
	_, err := DecodeHeader(nil)
	assert.ErrorIs(t, err, merr.ErrHeaderTruncated)
}

func TestDecodeHeaderPayloadTruncated(t *testing.T) {
	buf := []byte{0x03, 0x04, 0x00, 1, 2, 3, 4}
	for n := HeaderSize; n < len(buf); n++ {
		_, err := DecodeHeader(buf[:n])
		assert.ErrorIs(t, err, merr.ErrPayloadTruncated, "length %d", n)
	}
	d, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, d.Payload)
}

func TestDecodeHeaderLittleEndian(t *testing.T) {
	buf := make([]byte, HeaderSize+0x0102)
	buf[0] = 9
	buf[1] = 0x02
	buf[2] = 0x01
	d, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), d.Size)
	assert.Len(t, d.Payload, 0x0102)
}

func TestDecodeHeaderPayloadIsView(t *testing.T) {
	buf := []byte{0x01, 0x01, 0x00, 0x10, 0x02, 0x00, 0x00}
	d, err := DecodeHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, cap(d.Payload))

	buf[3] = 0x20
	assert.Equal(t, byte(0x20), d.Payload[0])

	// append 不能写到后面的帧
	_ = append(d.Payload, 0xFF)
	assert.Equal(t, byte(0x02), buf[4])
}

func TestDecodeHeaderExtraBytesIgnored(t *testing.T) {
	d, err := DecodeHeader([]byte{0x05, 0x00, 0x00, 0xEE, 0xEE})
	require.NoError(t, err)
	assert.Empty(t, d.Payload)
	assert.Equal(t, HeaderSize, d.TotalSize())
}

func TestPutHeader(t *testing.T) {
	dst := make([]byte, HeaderSize)
	PutHeader(dst, 0xFE, 0xABCD)
	assert.Equal(t, []byte{0xFE, 0xCD, 0xAB}, dst)
	assert.Panics(t, func() { PutHeader(make([]byte, 2), 1, 1) })
}
