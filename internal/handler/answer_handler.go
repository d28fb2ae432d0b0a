package handler

import (
	"fmt"
	"net/http"
	"time"

	"course-qa-go/internal/model"
	"course-qa-go/internal/service"
	"course-qa-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AnswerHandler 负责处理所有与答案相关的 API 请求。
type AnswerHandler struct {
	answerService  service.AnswerService
	sessionService service.SessionService
	exportService  service.ExportService
}

// NewAnswerHandler 创建一个新的 AnswerHandler 实例。
func NewAnswerHandler(answerService service.AnswerService, sessionService service.SessionService, exportService service.ExportService) *AnswerHandler {
	return &AnswerHandler{
		answerService:  answerService,
		sessionService: sessionService,
		exportService:  exportService,
	}
}

// SubmitAnswerRequest 定义了提交答案 API 的请求体结构。
// questionNumber 从 0 开始计数。
type SubmitAnswerRequest struct {
	QuestionNumber *int   `json:"questionNumber" binding:"required"`
	Text           string `json:"text" binding:"required"`
}

// Submit 处理一次答案提交。
// 提交成功后把会话指针推到下一题，重现逐题作答的节奏。
func (h *AnswerHandler) Submit(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warnf("Submit: Invalid request payload, error: %v", err)
		fail(c, http.StatusBadRequest, "无效的请求负载：questionNumber 和 text 不能为空")
		return
	}

	answer, err := h.answerService.SubmitAnswer(user.Email, *req.QuestionNumber, req.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.sessionService.SyncAfterSubmit(c.Request.Context(), user.Email, answer.QuestionNumber)

	log.Infof("答案提交成功: email=%s, question=%d", user.Email, answer.QuestionNumber)
	ok(c, answer)
}

// List 返回当前用户的全部答案，按题号升序。
func (h *AnswerHandler) List(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	answers, err := h.answerService.GetAnswers(user.Email)
	if err != nil {
		log.Error("List: Failed to load answers", err)
		respondServiceError(c, err)
		return
	}
	ok(c, answers)
}

// GetProgress 返回当前用户的答题进度。
func (h *AnswerHandler) GetProgress(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	prog, err := h.answerService.GetProgress(user.Email)
	if err != nil {
		log.Error("GetProgress: Failed to load progress", err)
		respondServiceError(c, err)
		return
	}
	ok(c, prog)
}

// ExportCSV 把当前用户的答案导出为 CSV 下载。
func (h *AnswerHandler) ExportCSV(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	data, err := h.exportService.AnswersCSV(user.Email)
	if err != nil {
		log.Error("ExportCSV: Failed to export answers", err)
		respondServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("%s_answers.csv", user.Email)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// ArchiveURL 返回最近一次归档快照的临时下载链接。
// 快照由后台管道异步生成，新注册用户可能还没有。
func (h *AnswerHandler) ArchiveURL(c *gin.Context) {
	user := c.MustGet("user").(*model.User)

	url, err := h.exportService.AnswerArchiveURL(user.Email, 15*time.Minute)
	if err != nil {
		log.Error("ArchiveURL: Failed to generate presigned URL", err)
		fail(c, http.StatusInternalServerError, "生成下载链接失败")
		return
	}
	ok(c, gin.H{"url": url, "expiresIn": "15m"})
}
