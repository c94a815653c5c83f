// Package json 基于 bytedance/sonic 提供 JSON 编解码，行为与 encoding/json 兼容。
package json

import (
	"io"

	"github.com/bytedance/sonic"
)

var api = sonic.ConfigStd

// Marshal 等价于 encoding/json.Marshal。
func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

// MarshalIndent 等价于 encoding/json.MarshalIndent。
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return api.MarshalIndent(v, prefix, indent)
}

// Unmarshal 等价于 encoding/json.Unmarshal。
func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}

// NewEncoder 返回写入 w 的流式编码器，每次 Encode 输出一行。
func NewEncoder(w io.Writer) sonic.Encoder {
	return api.NewEncoder(w)
}
