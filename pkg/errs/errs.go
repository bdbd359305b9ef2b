package errs

import (
	"fmt"
	"net/http"
)

// ==================== 错误类别 ====================

// Kind 业务错误类别
// 控制流只依赖 Kind，不解析错误文案
type Kind int

const (
	KindInternal        Kind = iota // 内部错误（兜底）
	KindUnauthenticated             // 未登录
	KindUnauthorized                // 权限不足
	KindNotFound                    // 实体不存在
	KindConflict                    // 唯一约束冲突
	KindValidation                  // 参数校验失败
)

// Error 带类别的业务错误
type Error struct {
	Kind    Kind
	Message string
	Err     error // 底层错误（可选）
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ==================== 构造函数 ====================

// New 创建指定类别的业务错误
func New(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf 创建带格式化文案的业务错误
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误并附加操作说明
func Wrap(kind Kind, message string, err error) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// ==================== 判定与映射 ====================

// KindOf 提取错误类别，非业务错误一律视为内部错误
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}

// Is 判断错误是否属于指定类别
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus 错误类别到 HTTP 状态码的映射
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindUnauthorized:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
