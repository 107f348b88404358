package controller

import (
	"errors"
	"net/http"

	"equipmall/internal/apperr"

	"github.com/gin-gonic/gin"
)

// upstreamMessage 存储失败时统一提示，不暴露后端细节
const upstreamMessage = "저장에 실패했습니다. 다시 시도해 주세요"

// ok 成功响应
func ok(ctx *gin.Context, message string, data any) {
	ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": message, "data": data})
}

// created 新建成功
func created(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusCreated, gin.H{"code": http.StatusCreated, "message": "created", "data": data})
}

// badRequest 请求体绑定失败
func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"code":    http.StatusBadRequest,
		"message": "요청 형식이 올바르지 않습니다: " + err.Error(),
	})
}

// fail 业务错误 → HTTP 状态码
func fail(ctx *gin.Context, err error) {
	status, message := statusOf(err)
	body := gin.H{"code": status, "message": message}
	if errors.Is(err, apperr.ErrRender) {
		body["retryable"] = true
	}
	if status >= http.StatusInternalServerError {
		_ = ctx.Error(err)
	}
	ctx.JSON(status, body)
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, apperr.MessageOf(err)
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, apperr.MessageOf(err)
	case errors.Is(err, apperr.ErrRender):
		return http.StatusBadGateway, apperr.MessageOf(err)
	case errors.Is(err, apperr.ErrUpstream):
		return http.StatusInternalServerError, upstreamMessage
	case errors.Is(err, apperr.ErrConfig):
		return http.StatusInternalServerError, apperr.MessageOf(err)
	default:
		return http.StatusInternalServerError, "서버 오류가 발생했습니다"
	}
}
