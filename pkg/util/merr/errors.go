// Licensed to the LF AI & Data foundation under one
// or more contributor license agreements. See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership. The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License. You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package merr

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

type ErrorType int32

const (
	SystemError ErrorType = 0
	InputError  ErrorType = 1
)

var ErrorTypeName = map[ErrorType]string{
	SystemError: "system_error",
	InputError:  "input_error",
}

func (err ErrorType) String() string {
	return ErrorTypeName[err]
}

// 叶子错误统一定义在这里。
// WARN: 新增错误前请先确认下面已有的错误是否可以复用。
// 命名规则：Err + 相关前缀 + 错误名
var (
	// Header 相关
	ErrHeaderTruncated  = newCodecError("frame header truncated", 100, false)
	ErrPayloadTruncated = newCodecError("frame payload truncated", 101, false)
	ErrPayloadTooLarge  = newCodecError("frame payload too large", 102, false)

	// Encode 相关
	ErrBufferTooSmall = newCodecError("destination buffer too small", 200, false)

	// Decode 相关
	ErrTypeMismatch    = newCodecError("message type mismatch", 300, false, WithErrorType(InputError))
	ErrBodyDecode      = newCodecError("message body decode failed", 301, false, WithErrorType(InputError))
	ErrTrailingPayload = newCodecError("message body left payload bytes unconsumed", 302, false, WithErrorType(InputError))

	// Allocator 相关
	ErrAllocExhausted = newCodecError("allocator exhausted", 400, true)

	// IO 相关
	ErrIoFailed      = newCodecError("IO failed", 1000, false)
	ErrIoUnexpectEOF = newCodecError("unexpected EOF", 1002, true)

	// 参数相关
	ErrParameterInvalid = newCodecError("invalid parameter", 1100, false)

	// 不导出，仅用于把未知错误转换为 codecError
	errUnexpected = newCodecError("unexpected error", (1<<16)-1, false)
)

type errorOption func(*codecError)

func WithDetail(detail string) errorOption {
	return func(err *codecError) {
		err.detail = detail
	}
}

func WithErrorType(etype ErrorType) errorOption {
	return func(err *codecError) {
		err.errType = etype
	}
}

type codecError struct {
	msg       string
	detail    string
	retriable bool
	errCode   int32
	errType   ErrorType
}

func newCodecError(msg string, code int32, retriable bool, options ...errorOption) codecError {
	err := codecError{
		msg:       msg,
		detail:    msg,
		retriable: retriable,
		errCode:   code,
	}

	for _, option := range options {
		option(&err)
	}
	return err
}

func (e codecError) code() int32 {
	return e.errCode
}

func (e codecError) Error() string {
	return e.msg
}

func (e codecError) Detail() string {
	return e.detail
}

func (e codecError) Is(err error) bool {
	cause := errors.Cause(err)
	if cause, ok := cause.(codecError); ok {
		return e.errCode == cause.errCode
	}
	return false
}

type multiErrors struct {
	errs []error
}

func (e multiErrors) Unwrap() error {
	if len(e.errs) <= 1 {
		return nil
	}
	// 多个错误的 cause 定义为最后一个错误
	if len(e.errs) == 2 {
		return e.errs[1]
	}

	return multiErrors{
		errs: e.errs[1:],
	}
}

func (e multiErrors) Error() string {
	final := e.errs[0]
	for i := 1; i < len(e.errs); i++ {
		final = errors.Wrap(e.errs[i], final.Error())
	}
	return final.Error()
}

func (e multiErrors) Is(err error) bool {
	for _, item := range e.errs {
		if errors.Is(item, err) {
			return true
		}
	}
	return false
}

func Combine(errs ...error) error {
	errs = lo.Filter(errs, func(err error, _ int) bool { return err != nil })
	if len(errs) == 0 {
		return nil
	}
	return multiErrors{
		errs,
	}
}
