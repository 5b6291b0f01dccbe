package service

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// 行程核心的错误分类，调用方用 errors.Is 区分。所有错误对当前操作都是终止性的，核心内部不做重试。
var (
	ErrInvalidRequest     = errors.New("规划请求无效")
	ErrUpstreamCallFailed = errors.New("AI服务调用失败")
	ErrMalformedResponse  = errors.New("AI返回内容无法解析为JSON")
	ErrSchemaInvalid      = errors.New("AI返回的行程结构不合法")
	ErrInvalidMutation    = errors.New("行程修改无效")
	ErrPersistenceFailed  = errors.New("行程保存失败")
	ErrTripNotFound       = errors.New("行程不存在")
	ErrReconcileFailed    = errors.New("预算对账失败")
)

// UpstreamError 文本生成服务返回非成功状态或不可达（StatusCode 为 0）
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("AI服务不可达: %v", e.Err)
	}
	return fmt.Sprintf("AI服务返回错误: %d, %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstreamCallFailed }

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedResponseError 携带原始文本便于排查
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return ErrMalformedResponse.Error()
	}
	return ErrMalformedResponse.Error() + ": " + e.Err.Error()
}

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaError JSON 合法但不符合 Trip 结构
type SchemaError struct {
	Problems []string
}

func (e *SchemaError) Error() string {
	return ErrSchemaInvalid.Error() + ": " + strings.Join(e.Problems, "; ")
}

func (e *SchemaError) Is(target error) bool { return target == ErrSchemaInvalid }

// MutationError 增删改请求缺字段或越界
type MutationError struct {
	Field  string
	Reason string
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidMutation.Error(), e.Field, e.Reason)
}

func (e *MutationError) Is(target error) bool { return target == ErrInvalidMutation }

func invalidMutation(field, reason string) error {
	return &MutationError{Field: field, Reason: reason}
}

func invalidRequest(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidRequest, format, args...)
}
