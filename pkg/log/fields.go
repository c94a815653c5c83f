package log

import (
	"go.uber.org/zap"
)

const (
	FieldNameModule    = "module"
	FieldNameComponent = "component"
)

// FieldModule 返回一个包含模块名的 zap 字段。
func FieldModule(module string) zap.Field {
	return zap.String(FieldNameModule, module)
}

// FieldComponent 返回一个包含组件名的 zap 字段。
func FieldComponent(component string) zap.Field {
	return zap.String(FieldNameComponent, component)
}

// FieldTypeID 返回一个包含消息类型 ID 的 zap 字段。
func FieldTypeID(typeID uint8) zap.Field {
	return zap.Uint8("typeID", typeID)
}

// FieldFrameSize 返回一个包含帧负载长度的 zap 字段。
func FieldFrameSize(size int) zap.Field {
	return zap.Int("frameSize", size)
}
