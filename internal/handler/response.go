// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"course-qa-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ok 以统一的响应信封返回成功结果。
func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "success", "data": data})
}

// fail 以统一的响应信封返回失败结果。
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"code": status, "message": message, "data": nil})
}

// respondServiceError 把 service 层的错误映射为 HTTP 状态码。
// 校验类哨兵错误是 400，上游 AI 故障是 502，
// 其余一律视为存储不可用，报 500 而不是装作查无数据。
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAnswerEmpty),
		errors.Is(err, service.ErrPromptEmpty),
		errors.Is(err, service.ErrQuestionOutOfRange),
		errors.Is(err, service.ErrOutOfOrder),
		errors.Is(err, service.ErrCannotAdvance),
		errors.Is(err, service.ErrAtFirstQuestion),
		errors.Is(err, service.ErrAssistanceDisabled):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUpstream):
		fail(c, http.StatusBadGateway, err.Error())
	default:
		fail(c, http.StatusInternalServerError, "存储服务不可用")
	}
}
