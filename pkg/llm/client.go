// Package llm provides a client for interacting with Large Language Models.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"course-qa-go/internal/config"
)

// Client 定义了文本生成服务的客户端接口。
// 练习场是同步问答：一次请求换一段完整回复，不做流式输出。
type Client interface {
	// Complete 以单条 user 消息调用聊天接口，返回完整的回复文本。
	Complete(ctx context.Context, model, prompt string, gen GenerationParams) (string, error)
}

// GenerationParams 控制生成行为，随每次调用一并记录到交互日志中。
type GenerationParams struct {
	Temperature     float64
	TopP            float64
	PresencePenalty float64
	MaxTokens       int
}

type openAIClient struct {
	cfg    config.AIConfig
	client *http.Client
}

// NewClient 基于配置创建一个 OpenAI 兼容接口的 LLM 客户端。
func NewClient(cfg config.AIConfig) Client {
	return &openAIClient{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// Message 表示一条角色消息
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model           string    `json:"model"`
	Messages        []Message `json:"messages"`
	Temperature     *float64  `json:"temperature,omitempty"`
	TopP            *float64  `json:"top_p,omitempty"`
	PresencePenalty *float64  `json:"presence_penalty,omitempty"`
	MaxTokens       *int      `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAIClient) Complete(ctx context.Context, model, prompt string, gen GenerationParams) (string, error) {
	reqBody := chatRequest{
		Model:    model,
		Messages: []Message{{Role: "user", Content: prompt}},
	}
	// 仅注入非零生成参数
	if gen.Temperature != 0 {
		t := gen.Temperature
		reqBody.Temperature = &t
	}
	if gen.TopP != 0 {
		p := gen.TopP
		reqBody.TopP = &p
	}
	if gen.PresencePenalty != 0 {
		pp := gen.PresencePenalty
		reqBody.PresencePenalty = &pp
	}
	if gen.MaxTokens != 0 {
		m := gen.MaxTokens
		reqBody.MaxTokens = &m
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+"/chat/completions", bytes.NewReader(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call chat api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("chat api returned non-200 status: %s, body: %s", resp.Status, string(bodyBytes))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat api returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
