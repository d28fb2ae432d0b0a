package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// 会话指针的保留时间，过期后用户回到第 0 题重新开始浏览。
// 答案本身在 MySQL 里，不受此影响。
const sessionTTL = 7 * 24 * time.Hour

// SessionRepository 定义了每个用户当前题目指针的存取接口。
// 指针是一次交互会话的瞬时状态，与答案存储分离。
type SessionRepository interface {
	GetCurrentQuestion(ctx context.Context, email string) (int, error)
	SetCurrentQuestion(ctx context.Context, email string, index int) error
}

type redisSessionRepository struct {
	redisClient *redis.Client
}

// NewSessionRepository 创建一个新的 SessionRepository 实例。
func NewSessionRepository(redisClient *redis.Client) SessionRepository {
	return &redisSessionRepository{redisClient: redisClient}
}

func sessionKey(email string) string {
	return fmt.Sprintf("session:%s:current_question", email)
}

// GetCurrentQuestion 返回该用户当前停留的题目下标。
// 没有会话记录时从第 0 题开始。
func (r *redisSessionRepository) GetCurrentQuestion(ctx context.Context, email string) (int, error) {
	val, err := r.redisClient.Get(ctx, sessionKey(email)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get session pointer: %w", err)
	}
	index, convErr := strconv.Atoi(val)
	if convErr != nil {
		// 脏值按无会话处理
		return 0, nil
	}
	return index, nil
}

// SetCurrentQuestion 更新该用户当前停留的题目下标并刷新过期时间。
func (r *redisSessionRepository) SetCurrentQuestion(ctx context.Context, email string, index int) error {
	if err := r.redisClient.Set(ctx, sessionKey(email), strconv.Itoa(index), sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to set session pointer: %w", err)
	}
	return nil
}
