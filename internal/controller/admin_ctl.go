package controller

import (
	"errors"
	"net/http"

	"equipmall/internal/api/dto"
	"equipmall/internal/service"
	"equipmall/internal/task"

	"github.com/gin-gonic/gin"
)

// AdminController 存储迁移与快照
type AdminController struct {
	sync  *service.SyncService
	tasks *task.TaskManager
}

func NewAdminController(sync *service.SyncService, tasks *task.TaskManager) *AdminController {
	return &AdminController{sync: sync, tasks: tasks}
}

// Migrate 本地 JSON → 主存储
// 部分实体失败时返回 207，报告中逐项列出
// POST /api/admin/migrate
func (c *AdminController) Migrate(ctx *gin.Context) {
	report, err := c.sync.Migrate(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	respondReport(ctx, report, "마이그레이션이 완료되었습니다")
}

// Snapshot 立即执行一次快照任务
// POST /api/admin/snapshot
func (c *AdminController) Snapshot(ctx *gin.Context) {
	report, err := c.tasks.TriggerSnapshot(ctx.Request.Context())
	if errors.Is(err, task.ErrTaskDisabled) {
		ctx.JSON(http.StatusConflict, gin.H{"code": http.StatusConflict, "message": "스냅샷 작업이 비활성화되어 있습니다"})
		return
	}
	if err != nil {
		fail(ctx, err)
		return
	}
	respondReport(ctx, report, "스냅샷이 저장되었습니다")
}

func respondReport(ctx *gin.Context, report *dto.SyncReport, message string) {
	if report.Succeeded() {
		ok(ctx, message, report)
		return
	}
	ctx.JSON(http.StatusMultiStatus, gin.H{
		"code":    http.StatusMultiStatus,
		"message": "일부 항목이 실패했습니다",
		"data":    report,
	})
}
