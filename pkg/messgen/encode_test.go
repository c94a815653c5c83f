package messgen

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/messgen-go/pkg/util/merr"
)

func fill(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*7 + 3)
	}
	return b
}

func TestEncodeExample(t *testing.T) {
	dst := make([]byte, 5)
	n, err := Encode(&blob{body: []byte{0xAA, 0xBB}}, dst)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte{0x07, 0x02, 0x00, 0xAA, 0xBB}, dst)
}

func TestEncodeEmptyBody(t *testing.T) {
	dst := make([]byte, 8)
	n, err := Encode(&empty{}, dst)
	require.NoError(t, err)
	assert.Equal(t, HeaderSize, n)
	assert.Equal(t, []byte{emptyType, 0, 0}, dst[:n])
	assert.Equal(t, HeaderSize, SerializedSize(&empty{}))
}

func TestEncodeBufferTooSmall(t *testing.T) {
	m := &blob{body: fill(37)}
	total := SerializedSize(m)
	for n := 0; n < total; n++ {
		dst := bytes.Repeat([]byte{0x5A}, n)
		written, err := Encode(m, dst)
		assert.ErrorIs(t, err, merr.ErrBufferTooSmall, "capacity %d", n)
		assert.Zero(t, written)
		assert.Equal(t, bytes.Repeat([]byte{0x5A}, n), dst, "capacity %d must be untouched", n)
	}

	dst := make([]byte, total+10)
	written, err := Encode(m, dst)
	require.NoError(t, err)
	assert.Equal(t, total, written)
	assert.Zero(t, dst[total])
}

func TestEncodePayloadTooLarge(t *testing.T) {
	dst := make([]byte, HeaderSize+MaxPayloadSize+1)
	n, err := Encode(&blob{body: make([]byte, MaxPayloadSize+1)}, dst)
	assert.ErrorIs(t, err, merr.ErrPayloadTooLarge)
	assert.Zero(t, n)
	assert.Equal(t, make([]byte, HeaderSize), dst[:HeaderSize])

	_, err = Encode(&sized{size: -1}, dst)
	assert.ErrorIs(t, err, merr.ErrParameterInvalid)
}

func TestEncodeNilMessage(t *testing.T) {
	_, err := Encode(nil, make([]byte, 8))
	assert.ErrorIs(t, err, merr.ErrParameterInvalid)
}

func TestAppend(t *testing.T) {
	out, err := Append(nil, &blob{body: []byte{0xAA, 0xBB}})
	require.NoError(t, err)
	out, err = Append(out, &empty{})
	require.NoError(t, err)
	out, err = Append(out, &pair{a: 1, b: 2})
	require.NoError(t, err)

	assert.Equal(t, []byte{
		0x07, 0x02, 0x00, 0xAA, 0xBB,
		0x01, 0x00, 0x00,
		0x02, 0x02, 0x00, 0x01, 0x02,
	}, out)
}

func TestAppendReusesCapacity(t *testing.T) {
	buf := make([]byte, 2, 64)
	out, err := Append(buf, &pair{a: 9, b: 8})
	require.NoError(t, err)
	assert.True(t, &buf[0] == &out[0])
	assert.Equal(t, []byte{0, 0, pairType, 2, 0, 9, 8}, out)
}

func TestAppendFailureKeepsDst(t *testing.T) {
	buf := []byte{1, 2, 3}
	out, err := Append(buf, &blob{body: make([]byte, MaxPayloadSize+1)})
	assert.ErrorIs(t, err, merr.ErrPayloadTooLarge)
	assert.Equal(t, buf, out)

	out, err = Append(buf, nil)
	assert.ErrorIs(t, err, merr.ErrParameterInvalid)
	assert.Equal(t, buf, out)
}
