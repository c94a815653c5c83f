// Package messgen 是生成消息协议的运行时编解码层。
//
// 一帧数据由 3 字节固定头部和负载组成：
//
//	byte 0       : type id（uint8）
//	byte 1       : 负载长度低字节
//	byte 2       : 负载长度高字节
//	byte 3..N    : 负载，对本层不透明
//
// 多帧之间直接拼接，没有分隔符，由 Walk / Scanner 顺序遍历。
//
// 本包只处理调用方提供的内存：不做 I/O，不分配或扩容调用方的缓冲区
// （Append 除外），也不持有任何消息值。消息体的编解码委托给生成代码实现的
// Message 接口，变长字段所需的内存由调用方传入的 Allocator 提供。
package messgen
