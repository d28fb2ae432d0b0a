package handler

import (
	"net/http"

	"course-qa-go/internal/service"
	"course-qa-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责处理 token 刷新相关的 API 请求。
type AuthHandler struct {
	userService service.UserService
}

// NewAuthHandler 创建一个新的 AuthHandler 实例。
func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// RefreshTokenRequest 定义了刷新 token API 的请求体结构。
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshToken 用有效的 refresh token 换取新的 token 对。
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("RefreshToken: Invalid request payload, error: %v", err)
		fail(c, http.StatusBadRequest, "无效的请求负载：refreshToken 不能为空")
		return
	}

	accessToken, refreshToken, err := h.userService.RefreshToken(req.RefreshToken)
	if err != nil {
		fail(c, http.StatusUnauthorized, "refresh token 无效或已过期")
		return
	}

	ok(c, gin.H{"accessToken": accessToken, "refreshToken": refreshToken})
}
