package handler

import (
	"course-qa-go/internal/model"
	"course-qa-go/internal/question"
	"course-qa-go/internal/service"
	"course-qa-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// QuestionHandler 负责题目目录与会话导航相关的 API 请求。
type QuestionHandler struct {
	catalog        *question.Catalog
	sessionService service.SessionService
}

// NewQuestionHandler 创建一个新的 QuestionHandler 实例。
func NewQuestionHandler(catalog *question.Catalog, sessionService service.SessionService) *QuestionHandler {
	return &QuestionHandler{
		catalog:        catalog,
		sessionService: sessionService,
	}
}

// List 返回完整的题目目录。目录是只读的固定序列。
func (h *QuestionHandler) List(c *gin.Context) {
	ok(c, gin.H{
		"total":     h.catalog.Count(),
		"questions": h.catalog.All(),
	})
}

// Current 返回当前用户会话指针所指的题目及其上下文。
func (h *QuestionHandler) Current(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	view, err := h.sessionService.Current(c.Request.Context(), user.Email)
	if err != nil {
		log.Error("Current: Failed to load session view", err)
		respondServiceError(c, err)
		return
	}
	ok(c, view)
}

// Advance 把会话指针向前移动一题，受顺序门控约束。
func (h *QuestionHandler) Advance(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	view, err := h.sessionService.Advance(c.Request.Context(), user.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ok(c, view)
}

// Retreat 把会话指针向后移动一题。
func (h *QuestionHandler) Retreat(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	view, err := h.sessionService.Retreat(c.Request.Context(), user.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	ok(c, view)
}
