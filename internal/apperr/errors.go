package apperr

import (
	"errors"
	"fmt"
)

// 错误分类哨兵，配合 errors.Is 使用
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrUpstream   = errors.New("upstream store failure")
	ErrRender     = errors.New("document render failed")
	ErrConfig     = errors.New("invalid configuration")
)

// Error 业务错误
// Kind 决定 HTTP 状态码，Message 直接展示给用户
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is 让 errors.Is(err, ErrNotFound) 之类的判断生效
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound 资源不存在
func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation 参数校验失败
func Validation(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

// Upstream 外部存储失败
func Upstream(err error, format string, args ...any) error {
	return &Error{Kind: ErrUpstream, Message: fmt.Sprintf(format, args...), Err: err}
}

// Render 文档生成失败，可重试
func Render(err error, format string, args ...any) error {
	return &Error{Kind: ErrRender, Message: fmt.Sprintf(format, args...), Err: err}
}

// Config 配置错误 (如分类成环)
func Config(format string, args ...any) error {
	return &Error{Kind: ErrConfig, Message: fmt.Sprintf(format, args...)}
}

// MessageOf 取出面向用户的提示
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
