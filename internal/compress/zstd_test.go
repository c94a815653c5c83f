package compress

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	z, err := NewZstd(0)
	require.NoError(t, err)
	defer z.Close()

	src := bytes.Repeat([]byte{0x07, 0x02, 0x00, 0xAA, 0xBB}, 1000)
	packed, err := z.Compress(nil, src)
	require.NoError(t, err)
	assert.True(t, IsZstd(packed))
	assert.Less(t, len(packed), len(src))

	plain, err := z.Decompress(nil, packed)
	require.NoError(t, err)
	assert.Equal(t, src, plain)
}

func TestEmptyInput(t *testing.T) {
	z, err := NewZstd(1)
	require.NoError(t, err)
	defer z.Close()

	packed, err := z.Compress(nil, nil)
	require.NoError(t, err)
	assert.True(t, IsZstd(packed))

	plain, err := z.Decompress(nil, packed)
	require.NoError(t, err)
	assert.Empty(t, plain)
}

func TestIsZstd(t *testing.T) {
	assert.False(t, IsZstd(nil))
	assert.False(t, IsZstd([]byte{0x07, 0x02, 0x00, 0xAA, 0xBB}))
	assert.True(t, IsZstd([]byte{0x28, 0xB5, 0x2F, 0xFD, 0x00}))
}

func TestCorruptInput(t *testing.T) {
	z, err := NewZstd(1)
	require.NoError(t, err)
	defer z.Close()

	_, err = z.Decompress(nil, []byte{0x28, 0xB5, 0x2F, 0xFD, 0xFF, 0xFF})
	assert.Error(t, err)
}

func TestClosed(t *testing.T) {
	z, err := NewZstd(1)
	require.NoError(t, err)
	z.Close()
	z.Close()

	_, err = z.Compress(nil, []byte{1})
	assert.ErrorIs(t, err, zstd.ErrEncoderClosed)
	_, err = z.Decompress(nil, []byte{1})
	assert.ErrorIs(t, err, zstd.ErrDecoderClosed)
}
