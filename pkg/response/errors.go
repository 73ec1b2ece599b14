package response

import (
	"errors"
	"net/http"
)

// 业务错误码
const (
	// 失败
	Fail ResponseCode = 0
	// 参数解析错误
	ParseError ResponseCode = 1
	// 参数错误
	InvalidParameter ResponseCode = 2
	// 未登录
	Unauthorized ResponseCode = 3
	// 无权限
	Forbidden ResponseCode = 4
	// 资源不存在
	NotFound ResponseCode = 5
	// 资源冲突
	Conflict ResponseCode = 6
	// 缺少 antispam 权限
	NotAuthorized ResponseCode = 10
	// 请求校验失败，未做任何修改
	ValidationFailed ResponseCode = 11
	// 收藏存储（Redis）不可用
	StoreUnavailable ResponseCode = 12
	// 关系库事务失败，已整体回滚
	TransactionFailed ResponseCode = 13
	// Provider 索引移除失败（关系库已提交）
	IndexRemovalFailed ResponseCode = 14
	// 未绑定 GitHub 账号
	GitHubNotConnected ResponseCode = 20
	// 缺少 GitHub OAuth scope
	GitHubScopeMissing ResponseCode = 21
)

type BusinessError struct {
	Code ResponseCode
	Msg  string
	Err  error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

// AsBusinessError 从错误链中取出 BusinessError，取不到时包装成 Fail
func AsBusinessError(err error) *BusinessError {
	if err == nil {
		return nil
	}
	var be *BusinessError
	if errors.As(err, &be) {
		return be
	}
	return NewBusinessError(WithErrorMessage(err.Error()), WithError(err))
}

// HasCode 判断错误链中是否包含指定错误码
func HasCode(err error, code ResponseCode) bool {
	var be *BusinessError
	return errors.As(err, &be) && be.Code == code
}

// HTTPStatus 错误码对应的 HTTP 状态
func (c ResponseCode) HTTPStatus() int {
	switch c {
	case ParseError, InvalidParameter, ValidationFailed, GitHubNotConnected, GitHubScopeMissing:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden, NotAuthorized:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case StoreUnavailable:
		return http.StatusServiceUnavailable
	case IndexRemovalFailed:
		return http.StatusMultiStatus
	default:
		return http.StatusInternalServerError
	}
}
