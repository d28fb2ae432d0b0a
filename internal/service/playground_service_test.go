package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"course-qa-go/internal/config"
	"course-qa-go/pkg/llm"
)

func testAIConfig() config.AIConfig {
	return config.AIConfig{
		APIKey:        "test",
		BaseURL:       "http://localhost",
		LegacyModel:   "legacy-model",
		AdvancedModel: "advanced-model",
		Generation: config.AIGenerationConfig{
			Temperature:     0.7,
			TopP:            0.9,
			PresencePenalty: 0.1,
		},
	}
}

func TestPlaygroundRunRecordsInteraction(t *testing.T) {
	repo := &fakeInteractionRepo{}
	mock := &mockLLM{}
	svc := NewPlaygroundService(repo, mock, testCatalog(5), nil, testAIConfig())

	interaction, err := svc.Run(context.Background(), "a@x.com", 1, AssistanceAdvanced, "explain bayes")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if interaction.Response != "echo: explain bayes" {
		t.Fatalf("unexpected response: %q", interaction.Response)
	}

	// 调用参数原样落盘，存储层不解释这组映射
	var params map[string]interface{}
	if err := json.Unmarshal([]byte(interaction.Parameters), &params); err != nil {
		t.Fatalf("parameters are not valid JSON: %v", err)
	}
	if params["model"] != "advanced-model" {
		t.Fatalf("expected advanced model in parameters, got %v", params["model"])
	}
	if params["temperature"] != 0.7 || params["top_p"] != 0.9 || params["presence_penalty"] != 0.1 {
		t.Fatalf("unexpected generation parameters: %v", params)
	}

	records, _ := repo.FindAllByEmail("a@x.com")
	if len(records) != 1 {
		t.Fatalf("expected one stored interaction, got %d", len(records))
	}
}

func TestPlaygroundLegacyModelSelection(t *testing.T) {
	repo := &fakeInteractionRepo{}
	var usedModel string
	mock := &mockLLM{completeFn: func(_ context.Context, model, _ string, _ llm.GenerationParams) (string, error) {
		usedModel = model
		return "ok", nil
	}}
	svc := NewPlaygroundService(repo, mock, testCatalog(5), nil, testAIConfig())

	if _, err := svc.Run(context.Background(), "a@x.com", 0, AssistanceLegacy, "hi"); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if usedModel != "legacy-model" {
		t.Fatalf("expected legacy model, got %q", usedModel)
	}
}

func TestPlaygroundFailedCallLeavesLogUntouched(t *testing.T) {
	repo := &fakeInteractionRepo{}
	mock := &mockLLM{completeFn: func(_ context.Context, _, _ string, _ llm.GenerationParams) (string, error) {
		return "", errors.New("rate limited")
	}}
	svc := NewPlaygroundService(repo, mock, testCatalog(5), nil, testAIConfig())

	_, err := svc.Run(context.Background(), "a@x.com", 0, AssistanceAdvanced, "hello")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	// 失败的调用不留下任何记录，连半条也没有
	if len(repo.records) != 0 {
		t.Fatalf("failed call must not append, got %d records", len(repo.records))
	}
}

func TestPlaygroundValidation(t *testing.T) {
	repo := &fakeInteractionRepo{}
	mock := &mockLLM{}
	svc := NewPlaygroundService(repo, mock, testCatalog(5), nil, testAIConfig())

	if _, err := svc.Run(context.Background(), "a@x.com", 0, AssistanceAdvanced, "  "); !errors.Is(err, ErrPromptEmpty) {
		t.Fatalf("expected ErrPromptEmpty, got %v", err)
	}
	if _, err := svc.Run(context.Background(), "a@x.com", 9, AssistanceAdvanced, "hi"); !errors.Is(err, ErrQuestionOutOfRange) {
		t.Fatalf("expected ErrQuestionOutOfRange, got %v", err)
	}
	if _, err := svc.Run(context.Background(), "a@x.com", 0, AssistanceNone, "hi"); !errors.Is(err, ErrAssistanceDisabled) {
		t.Fatalf("expected ErrAssistanceDisabled, got %v", err)
	}
	if mock.calls != 0 {
		t.Fatalf("validation failures must not reach the LLM, got %d calls", mock.calls)
	}
}

func TestInteractionAppendOrderAndFilter(t *testing.T) {
	repo := &fakeInteractionRepo{}
	mock := &mockLLM{}
	svc := NewPlaygroundService(repo, mock, testCatalog(5), nil, testAIConfig())

	prompts := []string{"p1", "p2", "p3"}
	for _, p := range prompts {
		if _, err := svc.Run(context.Background(), "a@x.com", 2, AssistanceAdvanced, p); err != nil {
			t.Fatalf("Run(%q) failed: %v", p, err)
		}
	}
	if _, err := svc.Run(context.Background(), "b@x.com", 0, AssistanceAdvanced, "other user"); err != nil {
		t.Fatalf("Run for second user failed: %v", err)
	}

	// 同一 (用户, 题号) 的三条记录全部保留且按追加顺序返回
	mine, err := svc.GetInteractions("a@x.com")
	if err != nil {
		t.Fatalf("GetInteractions failed: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("expected 3 interactions, got %d", len(mine))
	}
	for i, p := range prompts {
		if mine[i].Prompt != p {
			t.Fatalf("append order broken at %d: %q", i, mine[i].Prompt)
		}
	}

	// 不带过滤的管理端视图至少包含所有用户的记录
	all, err := svc.GetAllInteractions("")
	if err != nil {
		t.Fatalf("GetAllInteractions failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 interactions in admin view, got %d", len(all))
	}

	// 带过滤等价于单用户视图
	filtered, err := svc.GetAllInteractions("b@x.com")
	if err != nil {
		t.Fatalf("GetAllInteractions(filter) failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Prompt != "other user" {
		t.Fatalf("unexpected filtered view: %+v", filtered)
	}
}
