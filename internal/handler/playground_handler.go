package handler

import (
	"net/http"
	"strconv"

	"course-qa-go/internal/model"
	"course-qa-go/internal/service"
	"course-qa-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// PlaygroundHandler 负责处理 AI 练习场相关的 API 请求。
type PlaygroundHandler struct {
	playgroundService service.PlaygroundService
	exportService     service.ExportService
}

// NewPlaygroundHandler 创建一个新的 PlaygroundHandler 实例。
func NewPlaygroundHandler(playgroundService service.PlaygroundService, exportService service.ExportService) *PlaygroundHandler {
	return &PlaygroundHandler{
		playgroundService: playgroundService,
		exportService:     exportService,
	}
}

// RunRequest 定义了练习场调用 API 的请求体结构。
// assistanceLevel 取值 none / legacy / advanced。
type RunRequest struct {
	QuestionNumber  *int   `json:"questionNumber" binding:"required"`
	AssistanceLevel string `json:"assistanceLevel" binding:"required"`
	Prompt          string `json:"prompt" binding:"required"`
}

// Run 执行一次练习场调用并返回完整回复。
// 上游失败时不会留下任何交互记录。
func (h *PlaygroundHandler) Run(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Run: Invalid request payload, error: %v", err)
		fail(c, http.StatusBadRequest, "无效的请求负载：questionNumber、assistanceLevel 和 prompt 不能为空")
		return
	}

	interaction, err := h.playgroundService.Run(c.Request.Context(), user.Email, *req.QuestionNumber, req.AssistanceLevel, req.Prompt)
	if err != nil {
		log.Warnf("Run: Playground call failed, email: %s, error: %v", user.Email, err)
		respondServiceError(c, err)
		return
	}

	ok(c, interaction)
}

// ListInteractions 返回当前用户的全部练习场交互记录，按追加顺序。
func (h *PlaygroundHandler) ListInteractions(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	interactions, err := h.playgroundService.GetInteractions(user.Email)
	if err != nil {
		log.Error("ListInteractions: Failed to load interactions", err)
		respondServiceError(c, err)
		return
	}
	ok(c, interactions)
}

// ExportCSV 以 CSV 文件形式下载当前用户的交互记录。
func (h *PlaygroundHandler) ExportCSV(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	data, err := h.exportService.InteractionsCSV(user.Email)
	if err != nil {
		log.Error("ExportCSV: Failed to export interactions", err)
		respondServiceError(c, err)
		return
	}

	filename := user.Email + "_interactions.csv"
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	c.Data(http.StatusOK, "text/csv", data)
}
