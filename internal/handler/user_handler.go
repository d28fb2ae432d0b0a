package handler

import (
	"errors"
	"net/http"
	"strings"

	"course-qa-go/internal/model"
	"course-qa-go/internal/service"
	"course-qa-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// UserHandler 负责处理所有与用户相关的 API 请求。
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler 创建一个新的 UserHandler 实例。
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRequest 定义了用户注册 API 的请求体结构。
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register 处理学员注册请求。
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Register: Invalid request payload, error: %v", err)
		fail(c, http.StatusBadRequest, "无效的请求负载：需要合法邮箱和至少 6 位密码")
		return
	}

	user, err := h.userService.Register(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			fail(c, http.StatusConflict, err.Error())
			return
		}
		log.Error("Register: Failed to register user", err)
		fail(c, http.StatusInternalServerError, "注册失败")
		return
	}

	log.Infof("用户注册成功: %s", user.Email)
	ok(c, gin.H{"id": user.ID, "email": user.Email, "role": user.Role})
}

// LoginRequest 定义了登录 API 的请求体结构。
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 处理登录请求，返回 access token 和 refresh token。
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Login: Invalid request payload, error: %v", err)
		fail(c, http.StatusBadRequest, "无效的请求负载：邮箱和密码不能为空")
		return
	}

	accessToken, refreshToken, err := h.userService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, err.Error())
			return
		}
		log.Error("Login: Failed to login", err)
		fail(c, http.StatusInternalServerError, "登录失败")
		return
	}

	ok(c, gin.H{"accessToken": accessToken, "refreshToken": refreshToken})
}

// GetProfile 返回当前登录用户的信息。
func (h *UserHandler) GetProfile(c *gin.Context) {
	user := c.MustGet("user").(*model.User)
	ok(c, user)
}

// Logout 处理登出请求，将当前 access token 加入黑名单。
func (h *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	if err := h.userService.Logout(tokenString); err != nil {
		log.Error("Logout: Failed to blacklist token", err)
		fail(c, http.StatusInternalServerError, "登出失败")
		return
	}
	ok(c, nil)
}
