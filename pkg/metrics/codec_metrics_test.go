package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCodecMetrics(t *testing.T) {
	r := prometheus.NewRegistry()
	RegisterCodecMetrics(r)
	assert.Panics(t, func() { RegisterCodecMetrics(r) })

	ObserveFrame(OpEncode, 7, 2)
	ObserveFailure(OpDecode, 300)

	n, err := testutil.GatherAndCount(r,
		"messgen_codec_frames_total",
		"messgen_codec_failures_total",
	)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 2)
}

func TestObserveFrame(t *testing.T) {
	before := testutil.ToFloat64(CodecFramesTotal.WithLabelValues(OpWalk, "42"))
	bytesBefore := testutil.ToFloat64(CodecBytesTotal.WithLabelValues(OpWalk))

	ObserveFrame(OpWalk, 42, 10)

	assert.Equal(t, before+1, testutil.ToFloat64(CodecFramesTotal.WithLabelValues(OpWalk, "42")))
	assert.Equal(t, bytesBefore+13, testutil.ToFloat64(CodecBytesTotal.WithLabelValues(OpWalk)))
}

func TestRegisterOnce(t *testing.T) {
	r := prometheus.NewRegistry()
	Register(r)
	Register(r)
	assert.Equal(t, prometheus.Registerer(r), GetRegisterer())
}
