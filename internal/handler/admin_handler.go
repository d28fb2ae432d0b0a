package handler

import (
	"net/http"
	"strconv"

	"course-qa-go/internal/service"
	"course-qa-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// AdminHandler 负责处理所有与管理员相关的 API 请求。
// 这些路由都挂在管理员中间件之后：交互存储本身不做鉴权，
// 能否看到全量数据由这里的调用方身份决定。
type AdminHandler struct {
	playgroundService service.PlaygroundService
	exportService     service.ExportService
	userService       service.UserService
}

// NewAdminHandler 创建一个新的 AdminHandler 实例。
func NewAdminHandler(playgroundService service.PlaygroundService, exportService service.ExportService, userService service.UserService) *AdminHandler {
	return &AdminHandler{
		playgroundService: playgroundService,
		exportService:     exportService,
		userService:       userService,
	}
}

// ListInteractions 返回交互记录的管理端视图。
// 可选的 email 查询参数把结果限制到单个用户。
func (h *AdminHandler) ListInteractions(c *gin.Context) {
	filterEmail := c.Query("email")

	interactions, err := h.playgroundService.GetAllInteractions(filterEmail)
	if err != nil {
		log.Error("ListInteractions: Failed to load interactions", err)
		respondServiceError(c, err)
		return
	}
	ok(c, interactions)
}

// ExportInteractions 把交互记录导出为 CSV 下载。
// 可选的 email 查询参数把导出范围限制到单个用户。
func (h *AdminHandler) ExportInteractions(c *gin.Context) {
	filterEmail := c.Query("email")

	data, err := h.exportService.InteractionsCSV(filterEmail)
	if err != nil {
		log.Error("ExportInteractions: Failed to export interactions", err)
		respondServiceError(c, err)
		return
	}

	filename := "interactions.csv"
	if filterEmail != "" {
		filename = filterEmail + "_interactions.csv"
	}
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(filename))
	c.Data(http.StatusOK, "text/csv", data)
}

// ListUsers 分页返回注册用户列表。
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || size < 1 || size > 100 {
		size = 20
	}

	users, total, err := h.userService.ListUsers((page-1)*size, size)
	if err != nil {
		log.Error("ListUsers: Failed to list users", err)
		respondServiceError(c, err)
		return
	}
	ok(c, gin.H{"total": total, "page": page, "size": size, "users": users})
}
