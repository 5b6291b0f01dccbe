package api

import (
	"context"
	"net/http"

	"tripplanner/config"
	"tripplanner/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// StatusOf 行程核心错误 -> HTTP 状态码
func StatusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrInvalidMutation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTripNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSchemaInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrMalformedResponse), errors.Is(err, service.ErrUpstreamCallFailed):
		return http.StatusBadGateway
	case errors.Is(err, service.ErrReconcileFailed):
		return http.StatusConflict
	case errors.Is(err, context.Canceled):
		return 499
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// ServiceError 按错误类别返回响应。参数类错误原样返回，其余在 release 模式下只给 fallback。
func ServiceError(c *gin.Context, err error, fallback string) {
	code := StatusOf(err)
	message := SafeErrorMessage(err, fallback)
	if code == http.StatusBadRequest || code == http.StatusNotFound {
		message = err.Error()
	}
	Error(c, code, message)
}
