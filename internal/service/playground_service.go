package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"course-qa-go/internal/config"
	"course-qa-go/internal/model"
	"course-qa-go/internal/question"
	"course-qa-go/internal/repository"
	"course-qa-go/pkg/llm"
	"course-qa-go/pkg/log"
	"course-qa-go/pkg/tasks"
)

// AI 辅助档位。legacy 使用旧模型，advanced 使用新模型，
// none 档位下练习场不可用。
const (
	AssistanceNone     = "none"
	AssistanceLegacy   = "legacy"
	AssistanceAdvanced = "advanced"
)

// PlaygroundService 接口定义了 AI 练习场的业务操作。
type PlaygroundService interface {
	Run(ctx context.Context, email string, questionNumber int, assistanceLevel, prompt string) (*model.Interaction, error)
	GetInteractions(email string) ([]model.Interaction, error)
	GetAllInteractions(filterEmail string) ([]model.Interaction, error)
}

// playgroundService 是 PlaygroundService 接口的实现。
type playgroundService struct {
	interactionRepo repository.InteractionRepository
	llmClient       llm.Client
	catalog         *question.Catalog
	publisher       ArchivePublisher
	aiCfg           config.AIConfig
}

// NewPlaygroundService 创建一个新的 PlaygroundService 实例。
func NewPlaygroundService(
	interactionRepo repository.InteractionRepository,
	llmClient llm.Client,
	catalog *question.Catalog,
	publisher ArchivePublisher,
	aiCfg config.AIConfig,
) PlaygroundService {
	return &playgroundService{
		interactionRepo: interactionRepo,
		llmClient:       llmClient,
		catalog:         catalog,
		publisher:       publisher,
		aiCfg:           aiCfg,
	}
}

// modelName 根据辅助档位选择模型。
func (s *playgroundService) modelName(assistanceLevel string) string {
	if assistanceLevel == AssistanceLegacy {
		return s.aiCfg.LegacyModel
	}
	return s.aiCfg.AdvancedModel
}

// Run 执行一次练习场调用：先调用文本生成服务，成功后才追加交互记录。
// 上游调用失败时直接返回错误，交互日志保持原样，不写入任何半成品记录。
func (s *playgroundService) Run(ctx context.Context, email string, questionNumber int, assistanceLevel, prompt string) (*model.Interaction, error) {
	if questionNumber < 0 || questionNumber >= s.catalog.Count() {
		return nil, ErrQuestionOutOfRange
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrPromptEmpty
	}
	if assistanceLevel == AssistanceNone {
		return nil, ErrAssistanceDisabled
	}

	modelName := s.modelName(assistanceLevel)
	gen := llm.GenerationParams{
		Temperature:     s.aiCfg.Generation.Temperature,
		TopP:            s.aiCfg.Generation.TopP,
		PresencePenalty: s.aiCfg.Generation.PresencePenalty,
		MaxTokens:       s.aiCfg.Generation.MaxTokens,
	}

	// 与调用实际发送的参数一并落盘，存储层对这组映射不做解释
	parameters := map[string]interface{}{
		"model":            modelName,
		"temperature":      gen.Temperature,
		"top_p":            gen.TopP,
		"presence_penalty": gen.PresencePenalty,
	}
	if gen.MaxTokens != 0 {
		parameters["max_tokens"] = gen.MaxTokens
	}

	response, err := s.llmClient.Complete(ctx, modelName, prompt, gen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	paramBytes, err := json.Marshal(parameters)
	if err != nil {
		return nil, fmt.Errorf("序列化调用参数失败: %w", err)
	}

	interaction := &model.Interaction{
		Email:          email,
		QuestionNumber: questionNumber,
		Prompt:         prompt,
		Parameters:     string(paramBytes),
		Response:       response,
		Timestamp:      time.Now(),
	}
	if err := s.interactionRepo.Append(interaction); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(tasks.ArchiveTask{Email: email, Kind: tasks.KindInteractions}); err != nil {
			log.Warnf("[PlaygroundService] 投递交互归档任务失败, email: %s, error: %v", email, err)
		}
	}

	return interaction, nil
}

// GetInteractions 返回该用户的全部交互记录，按追加顺序。
func (s *playgroundService) GetInteractions(email string) ([]model.Interaction, error) {
	return s.interactionRepo.FindAllByEmail(email)
}

// GetAllInteractions 返回交互记录的管理端视图。
// filterEmail 非空时只返回该用户的记录，为空时返回所有用户的记录；
// 谁有权不带过滤条件调用，由 handler 层的管理员中间件决定。
func (s *playgroundService) GetAllInteractions(filterEmail string) ([]model.Interaction, error) {
	if filterEmail != "" {
		return s.interactionRepo.FindAllByEmail(filterEmail)
	}
	return s.interactionRepo.FindAll()
}
