package stream

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/messgen-go/internal/schema/demo"
	"github.com/lk2023060901/messgen-go/pkg/arena"
	"github.com/lk2023060901/messgen-go/pkg/messgen"
	"github.com/lk2023060901/messgen-go/pkg/util/merr"
)

func TestRoundTrip(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)

	tm := &demo.Telemetry{Seq: 7, Temperature: -12, Voltage: 3300, Flags: 1}
	tr := &demo.Track{
		ID:     9,
		Label:  []byte("east"),
		Points: demo.MakePointList(demo.Point{X: 1, Y: 2}, demo.Point{X: -3, Y: 4}),
	}
	big := &demo.Raw{Body: bytes.Repeat([]byte{0x42}, 4000)}

	for _, m := range []messgen.Message{&demo.Heartbeat{}, tm, tr, big} {
		n, err := w.WriteMessage(m)
		require.NoError(t, err)
		assert.Equal(t, messgen.SerializedSize(m), n)
	}
	n, err := w.WriteFrame(demo.RawType, []byte{0xAA, 0xBB})
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	r := NewReader(bytes.NewReader(out.Bytes()))
	a := arena.New(0)
	defer a.Release()

	require.NoError(t, r.ReadMessage(&demo.Heartbeat{}, a))

	gotTm := &demo.Telemetry{}
	require.NoError(t, r.ReadMessage(gotTm, a))
	assert.Equal(t, tm, gotTm)

	gotTr := &demo.Track{}
	require.NoError(t, r.ReadMessage(gotTr, a))
	assert.Equal(t, tr.ID, gotTr.ID)
	assert.Equal(t, tr.Label, gotTr.Label)
	assert.Equal(t, tr.Points.Points(), gotTr.Points.Points())

	d, err := r.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, demo.RawType, d.TypeID)
	assert.Equal(t, big.Body, d.Payload)

	d, err = r.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, d.Payload)

	_, err = r.ReadFrame()
	assert.Equal(t, io.EOF, err)
}

func TestReaderUnexpectedEOF(t *testing.T) {
	frame := []byte{0x07, 0x03, 0x00, 1, 2, 3}
	for n := 1; n < len(frame); n++ {
		r := NewReader(bytes.NewReader(frame[:n]))
		_, err := r.ReadFrame()
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF, "prefix %d", n)
		assert.ErrorIs(t, err, merr.ErrIoUnexpectEOF, "prefix %d", n)
		assert.True(t, merr.IsRetryableErr(err))
	}

	r := NewReader(bytes.NewReader(nil))
	_, err := r.ReadFrame()
	assert.Equal(t, io.EOF, err)
}

func TestReaderMaxPayload(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x07, 0x03, 0x00, 1, 2, 3}), WithMaxPayload(2))
	_, err := r.ReadFrame()
	assert.ErrorIs(t, err, merr.ErrPayloadTooLarge)
}

func TestReaderBufferReuse(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	_, err := w.WriteFrame(1, []byte{1})
	require.NoError(t, err)
	_, err = w.WriteFrame(2, []byte{2})
	require.NoError(t, err)

	r := NewReader(&out)
	first, err := r.ReadFrame()
	require.NoError(t, err)
	saved := bytes.Clone(first.Payload)
	second, err := r.ReadFrame()
	require.NoError(t, err)

	assert.Equal(t, []byte{1}, saved)
	assert.Equal(t, []byte{2}, second.Payload)
	// 第一帧的视图已被覆盖
	assert.Equal(t, []byte{2}, first.Payload)
}

type shortWriter struct {
	n int
}

func (f shortWriter) Write(p []byte) (int, error) {
	if f.n >= len(p) {
		return len(p), nil
	}
	return f.n, nil
}

type brokenWriter struct{}

var errBroken = errors.New("broken pipe")

func (brokenWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestWriterErrors(t *testing.T) {
	_, err := NewWriter(brokenWriter{}).WriteFrame(1, nil)
	assert.ErrorIs(t, err, merr.ErrIoFailed)
	assert.ErrorContains(t, err, "broken pipe")

	n, err := NewWriter(shortWriter{n: 2}).WriteFrame(1, []byte{1, 2})
	assert.ErrorIs(t, err, merr.ErrIoFailed)
	assert.Equal(t, 2, n)

	_, err = NewWriter(io.Discard).WriteFrame(1, make([]byte, messgen.MaxPayloadSize+1))
	assert.ErrorIs(t, err, merr.ErrPayloadTooLarge)

	_, err = NewWriter(io.Discard).WriteMessage(&demo.Raw{Body: make([]byte, messgen.MaxPayloadSize+1)})
	assert.ErrorIs(t, err, merr.ErrPayloadTooLarge)
}
