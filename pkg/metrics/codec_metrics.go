package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	codecMetricSubsystem = "codec"

	OpEncode = "encode"
	OpDecode = "decode"
	OpWalk   = "walk"
)

var (
	CodecFramesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: messgenNamespace,
		Subsystem: codecMetricSubsystem,
		Name:      "frames_total",
		Help:      "成功编码、解码或遍历的帧数",
	}, []string{opLabelName, typeIDLabelName})

	CodecBytesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: messgenNamespace,
		Subsystem: codecMetricSubsystem,
		Name:      "bytes_total",
		Help:      "成功处理的字节数（含帧头）",
	}, []string{opLabelName})

	CodecFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: messgenNamespace,
		Subsystem: codecMetricSubsystem,
		Name:      "failures_total",
		Help:      "编解码失败次数，按错误码区分",
	}, []string{opLabelName, codeLabelName})

	CodecPayloadSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: messgenNamespace,
		Subsystem: codecMetricSubsystem,
		Name:      "payload_size_bytes",
		Help:      "帧负载大小分布",
		Buckets:   payloadBuckets,
	}, []string{opLabelName})

	WalkTrailingBytesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: messgenNamespace,
		Subsystem: codecMetricSubsystem,
		Name:      "walk_trailing_bytes_total",
		Help:      "遍历时因残帧或垃圾数据而未消费的字节数",
	})
)

// RegisterCodecMetrics 将编解码相关的指标注册到 Registerer 中。
func RegisterCodecMetrics(r prometheus.Registerer) {
	r.MustRegister(CodecFramesTotal)
	r.MustRegister(CodecBytesTotal)
	r.MustRegister(CodecFailuresTotal)
	r.MustRegister(CodecPayloadSize)
	r.MustRegister(WalkTrailingBytesTotal)
}

// ObserveFrame 记录一帧成功处理。
func ObserveFrame(op string, typeID uint8, payloadSize int) {
	CodecFramesTotal.WithLabelValues(op, strconv.Itoa(int(typeID))).Inc()
	CodecBytesTotal.WithLabelValues(op).Add(float64(payloadSize + 3))
	CodecPayloadSize.WithLabelValues(op).Observe(float64(payloadSize))
}

// ObserveFailure 记录一次失败。
func ObserveFailure(op string, code int32) {
	CodecFailuresTotal.WithLabelValues(op, strconv.Itoa(int(code))).Inc()
}
