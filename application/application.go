package application

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lk2023060901/messgen-go/pkg/log"
	"github.com/lk2023060901/messgen-go/pkg/messgen"
	"github.com/lk2023060901/messgen-go/pkg/metrics"
	"github.com/lk2023060901/messgen-go/pkg/util/viper"
)

const (
	// ConfigPathEnv 指定配置文件路径的环境变量。
	ConfigPathEnv = "MESSGEN_CONFIG_FILE_PATH"
	// DefaultConfigPath 为默认配置文件路径，文件不存在时使用内置默认值。
	DefaultConfigPath = "./config.yaml"
)

// Config 为 messgen 工具的完整配置。
//
//	log:
//	  level: debug
//	  file:
//	    rootpath: ./logs
//	    filename: messgen.log
//	codec:
//	  strict: true
//	  metrics: false
type Config struct {
	Log   log.Config     `mapstructure:"log"`
	Codec messgen.Config `mapstructure:"codec"`
}

// Application 持有已加载的配置，以及据此构建的 Logger 和 Codec。
type Application struct {
	conf   Config
	path   string
	logger *log.MLogger
	codec  *messgen.Codec
}

func New() *Application {
	return &Application{}
}

// Init 加载配置并初始化日志、指标与 Codec。
//
// 配置文件路径优先级：path 参数（通常来自 --config）> MESSGEN_CONFIG_FILE_PATH > ./config.yaml。
// 显式指定的文件不存在时报错；默认路径不存在时只使用默认值与环境变量。
func (a *Application) Init(path string) error {
	conf, err := a.loadConfig(path)
	if err != nil {
		return err
	}
	a.conf = conf

	if err := a.initLogging(); err != nil {
		return err
	}
	if conf.Codec.Metrics {
		metrics.Register(metrics.GetRegisterer())
	}
	a.codec = messgen.NewCodecFromConfig(conf.Codec, messgen.WithLogger(a.logger))

	a.logger.Debug("application initialized",
		zap.String("config", a.path),
		zap.Bool("strict", conf.Codec.Strict),
		zap.Bool("metrics", conf.Codec.Metrics),
	)
	return nil
}

// Config 返回已加载的配置。
func (a *Application) Config() Config {
	return a.conf
}

// ConfigPath 返回实际加载的配置文件路径，未加载文件时为空。
func (a *Application) ConfigPath() string {
	return a.path
}

// Logger 返回应用 Logger，Init 之前退回到全局 Logger。
func (a *Application) Logger() *log.MLogger {
	if a.logger == nil {
		return log.With()
	}
	return a.logger
}

// Codec 返回按配置构建的 Codec，Init 之前返回默认 Codec。
func (a *Application) Codec() *messgen.Codec {
	if a.codec == nil {
		return messgen.NewCodec(messgen.WithLogger(a.Logger()))
	}
	return a.codec
}

func (a *Application) loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		if env := os.Getenv(ConfigPathEnv); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultConfigPath
		}
	}

	cfg := viper.New()
	cfg.SetDefault("log.level", "info")
	cfg.SetDefault("log.format", log.FormatConsole)
	cfg.SetDefault("log.stdout", false)
	cfg.SetDefault("codec.strict", messgen.DefaultConfig().Strict)
	cfg.SetDefault("codec.metrics", messgen.DefaultConfig().Metrics)

	if _, err := os.Stat(path); err == nil || explicit {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, errors.Wrapf(err, "failed to load config file %q", path)
		}
		a.path = path
	}

	var conf Config
	if err := cfg.Unmarshal(&conf); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// initLogging 初始化全局 Logger。没有配置日志文件且未开启 stdout 时写到 stderr，
// 避免与命令输出混在一起。
func (a *Application) initLogging() error {
	lc := a.conf.Log
	var (
		lg    *zap.Logger
		props *log.ZapProperties
		err   error
	)
	if lc.File.Filename == "" && !lc.Stdout {
		lg, props, err = log.InitLoggerWithWriteSyncer(&lc, zapcore.Lock(os.Stderr))
	} else {
		lg, props, err = log.InitLogger(&lc)
	}
	if err != nil {
		return errors.Wrap(err, "init logger")
	}
	log.ReplaceGlobals(lg, props)
	a.logger = log.With(log.FieldModule("messgen"))
	return nil
}
