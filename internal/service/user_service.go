package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"course-qa-go/internal/model"
	"course-qa-go/internal/repository"
	"course-qa-go/pkg/database"
	"course-qa-go/pkg/hash"
	"course-qa-go/pkg/token"

	"gorm.io/gorm"
)

// UserService 接口定义了所有与用户相关的业务操作。
type UserService interface {
	Register(email, password string) (*model.User, error)
	Login(email, password string) (accessToken, refreshToken string, err error)
	GetProfile(email string) (*model.User, error)
	Logout(tokenString string) error
	RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
	ListUsers(offset, limit int) ([]model.User, int64, error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo   repository.UserRepository
	jwtManager *token.JWTManager
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, jwtManager *token.JWTManager) UserService {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Register 处理学员注册的业务逻辑。
func (s *userService) Register(email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// 1. 检查邮箱是否已被注册
	_, err := s.userRepo.FindByEmail(email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. 对密码进行哈希处理
	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 3. 创建新用户，默认角色为学员
	newUser := &model.User{
		Email:    email,
		Password: hashedPassword,
		Role:     model.RoleStudent,
	}
	if err := s.userRepo.Create(newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

// Login 处理登录的业务逻辑。
func (s *userService) Login(email, password string) (accessToken, refreshToken string, err error) {
	email = strings.ToLower(strings.TrimSpace(email))

	// 1. 查找用户
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	// 2. 验证密码
	if !hash.CheckPasswordHash(password, user.Password) {
		return "", "", ErrInvalidCredentials
	}

	// 3. 生成 access token 和 refresh token
	accessToken, err = s.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// GetProfile 根据邮箱获取用户详细信息。
func (s *userService) GetProfile(email string) (*model.User, error) {
	return s.userRepo.FindByEmail(email)
}

// Logout 处理登出逻辑，将 token 加入 Redis 黑名单。
// token 的剩余有效期作为黑名单 key 的过期时间。
func (s *userService) Logout(tokenString string) error {
	claims, err := s.jwtManager.VerifyToken(tokenString)
	if err != nil {
		return err
	}
	expiration := time.Until(claims.ExpiresAt.Time)
	return database.RDB.Set(context.Background(), "blacklist:"+tokenString, "true", expiration).Err()
}

// RefreshToken 验证 refresh token 并签发新的 access token 和 refresh token。
func (s *userService) RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error) {
	// 1. 验证 refresh token 是否有效
	claims, err := s.jwtManager.VerifyToken(refreshTokenString)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	// 2. 检查用户是否仍然存在
	user, err := s.userRepo.FindByEmail(claims.Email)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	// 3. 签发新的 token
	newAccessToken, err = s.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}
	newRefreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", "", err
	}

	return newAccessToken, newRefreshToken, nil
}

// ListUsers 分页返回所有用户，供管理端使用。
func (s *userService) ListUsers(offset, limit int) ([]model.User, int64, error) {
	return s.userRepo.FindWithPagination(offset, limit)
}
