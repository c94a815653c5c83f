package messgen

import (
	"go.uber.org/zap"

	"github.com/lk2023060901/messgen-go/pkg/log"
	"github.com/lk2023060901/messgen-go/pkg/metrics"
	"github.com/lk2023060901/messgen-go/pkg/util/merr"
)

// Config 为 Codec 的配置，对应配置文件中的 codec 段。
type Config struct {
	// Strict 为 true 时要求消息体恰好消费整个负载。
	Strict bool `mapstructure:"strict" json:"strict"`
	// Metrics 为 true 时记录 Prometheus 指标。
	Metrics bool `mapstructure:"metrics" json:"metrics"`
}

func DefaultConfig() Config {
	return Config{Strict: true}
}

// Codec 在包级函数之上增加日志与指标，语义保持不变。
// Codec 本身不持有缓冲区，可以在多个 goroutine 间共享。
type Codec struct {
	log.Binder

	strict  bool
	metrics bool
}

type Option func(*Codec)

// WithStrict 设置是否要求消息体恰好消费整个负载，默认 true。
func WithStrict(strict bool) Option {
	return func(c *Codec) {
		c.strict = strict
	}
}

// WithMetrics 设置是否记录 Prometheus 指标，默认关闭。
func WithMetrics(enabled bool) Option {
	return func(c *Codec) {
		c.metrics = enabled
	}
}

// WithLogger 为 Codec 绑定 Logger，默认使用全局 Logger。
func WithLogger(l *log.MLogger) Option {
	return func(c *Codec) {
		c.SetLogger(l)
	}
}

func NewCodec(opts ...Option) *Codec {
	c := &Codec{strict: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCodecFromConfig 按配置创建 Codec，opts 会覆盖配置中的同名项。
func NewCodecFromConfig(cfg Config, opts ...Option) *Codec {
	return NewCodec(append([]Option{WithStrict(cfg.Strict), WithMetrics(cfg.Metrics)}, opts...)...)
}

func (c *Codec) Strict() bool {
	return c.strict
}

// Encode 见包级函数 Encode。
func (c *Codec) Encode(m Message, dst []byte) (int, error) {
	n, err := Encode(m, dst)
	if err != nil {
		c.fail(metrics.OpEncode, err)
		return 0, err
	}
	c.observe(metrics.OpEncode, m.TypeID(), n-HeaderSize)
	return n, nil
}

// Append 见包级函数 Append。
func (c *Codec) Append(dst []byte, m Message) ([]byte, error) {
	start := len(dst)
	out, err := Append(dst, m)
	if err != nil {
		c.fail(metrics.OpEncode, err)
		return out, err
	}
	c.observe(metrics.OpEncode, m.TypeID(), len(out)-start-HeaderSize)
	return out, nil
}

// Decode 按 Codec 的严格模式解码，见包级函数 Decode 与 DecodeLoose。
func (c *Codec) Decode(d Descriptor, m Message, alloc Allocator) error {
	if err := decode(d, m, alloc, c.strict); err != nil {
		c.fail(metrics.OpDecode, err, log.FieldTypeID(d.TypeID), log.FieldFrameSize(int(d.Size)))
		return err
	}
	c.observe(metrics.OpDecode, d.TypeID, int(d.Size))
	return nil
}

// Walk 见包级函数 Walk。未消费的尾部字节会以限流方式告警。
func (c *Codec) Walk(buf []byte, visit func(Descriptor)) int {
	n := Walk(buf, func(d Descriptor) {
		c.observe(metrics.OpWalk, d.TypeID, int(d.Size))
		visit(d)
	})
	if trailing := len(buf) - n; trailing > 0 {
		if c.metrics {
			metrics.WalkTrailingBytesTotal.Add(float64(trailing))
		}
		c.Logger().RatedWarn(1, "walk stopped before buffer end",
			zap.Int("consumed", n),
			zap.Int("trailing", trailing),
		)
	}
	return n
}

func (c *Codec) observe(op string, typeID uint8, size int) {
	if c.metrics {
		metrics.ObserveFrame(op, typeID, size)
	}
}

func (c *Codec) fail(op string, err error, fields ...zap.Field) {
	if c.metrics {
		metrics.ObserveFailure(op, merr.Code(err))
	}
	c.Logger().Debug(op+" frame failed", append(fields, zap.Error(err))...)
}
