// Package viper 封装 spf13/viper，为 messgen 工具提供 YAML/JSON 配置加载，
// 并允许用 MESSGEN_ 前缀的环境变量覆盖配置项（codec.strict 对应 MESSGEN_CODEC_STRICT）。
package viper

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	spfviper "github.com/spf13/viper"
)

// EnvPrefix 为覆盖配置项的环境变量前缀。
const EnvPrefix = "MESSGEN"

type Config struct {
	v *spfviper.Viper
}

// New 创建一个只包含默认值与环境变量的 Config，可以不加载文件直接使用。
func New() *Config {
	v := spfviper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return &Config{v: v}
}

// LoadFile 加载 YAML 或 JSON 配置文件，类型由扩展名（.yaml/.yml/.json）决定。
func (c *Config) LoadFile(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		c.v.SetConfigType("yaml")
	case ".json":
		c.v.SetConfigType("json")
	default:
		return errors.Newf("unsupported config file extension %q", ext)
	}
	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config %s", path)
	}
	return nil
}

// SetDefault 设置 key 的默认值，优先级低于文件与环境变量。
func (c *Config) SetDefault(key string, value any) {
	c.v.SetDefault(key, value)
}

func (c *Config) IsSet(key string) bool {
	return c.v.IsSet(key)
}

func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// Unmarshal 将完整配置反序列化到 dst，dst 必须为指针，字段按 mapstructure 标签匹配。
// 环境变量只对设置了默认值或出现在文件中的 key 生效。
func (c *Config) Unmarshal(dst any) error {
	if err := c.v.Unmarshal(dst); err != nil {
		return errors.Wrap(err, "decode config")
	}
	return nil
}

// UnmarshalKey 将 key 对应的子配置反序列化到 dst，不应用环境变量覆盖。
func (c *Config) UnmarshalKey(key string, dst any) error {
	if err := c.v.UnmarshalKey(key, dst); err != nil {
		return errors.Wrapf(err, "decode config key %s", key)
	}
	return nil
}
