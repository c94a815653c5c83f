package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/messgen-go/pkg/messgen"
)

func TestTelemetryBody(t *testing.T) {
	in := &Telemetry{Seq: 0x01020304, Temperature: -40, Voltage: 3300, Flags: 0x81}
	buf := make([]byte, in.EncodedSize())
	in.EncodeBody(buf)
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01, 0xD8, 0xFF, 0xE4, 0x0C, 0x81}, buf)

	var out Telemetry
	assert.Equal(t, telemetrySize, out.DecodeBody(buf, messgen.HeapAllocator{}))
	assert.Equal(t, *in, out)
	assert.Zero(t, out.DecodeBody(buf[:telemetrySize-1], messgen.HeapAllocator{}))
}

func TestTrackBody(t *testing.T) {
	in := &Track{
		ID:     9,
		Label:  []byte("north"),
		Points: MakePointList(Point{X: 1, Y: -1}, Point{X: 300, Y: 400}),
	}
	buf := make([]byte, in.EncodedSize())
	in.EncodeBody(buf)
	require.Len(t, buf, 2+1+5+2+8)

	var out Track
	require.Equal(t, len(buf), out.DecodeBody(buf, messgen.HeapAllocator{}))
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Label, out.Label)
	assert.Equal(t, []Point{{1, -1}, {300, 400}}, out.Points.Points())

	for i := 0; i < len(buf); i++ {
		assert.Zero(t, new(Track).DecodeBody(buf[:i], messgen.HeapAllocator{}), "prefix %d", i)
	}
}

func TestTrackLabelTruncated(t *testing.T) {
	in := &Track{Label: make([]byte, 300)}
	assert.Equal(t, 2+1+255+2, in.EncodedSize())
	buf := make([]byte, in.EncodedSize())
	in.EncodeBody(buf)
	assert.Equal(t, uint8(255), buf[2])
}

type emptyAllocator struct{}

func (emptyAllocator) Alloc(int) []byte { return nil }

func TestAllocatorExhaustion(t *testing.T) {
	in := &Raw{Body: []byte{1, 2, 3}}
	assert.Zero(t, new(Raw).DecodeBody(in.Body, emptyAllocator{}))

	tr := &Track{Label: []byte("x")}
	buf := make([]byte, tr.EncodedSize())
	tr.EncodeBody(buf)
	assert.Zero(t, new(Track).DecodeBody(buf, emptyAllocator{}))
}

func TestRegistry(t *testing.T) {
	for _, id := range []uint8{HeartbeatType, TelemetryType, TrackType, RawType} {
		m := New(id)
		require.NotNil(t, m)
		assert.Equal(t, id, m.TypeID())
		assert.NotContains(t, Name(id), "unknown")
	}
	assert.Nil(t, New(200))
	assert.Equal(t, "unknown(200)", Name(200))
}
