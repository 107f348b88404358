package controller

import (
	"equipmall/internal/api/dto"
	"equipmall/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== 事业部 ====================

// BusinessUnitController 事业部管理
type BusinessUnitController struct {
	svc *service.BusinessUnitService
}

func NewBusinessUnitController(svc *service.BusinessUnitService) *BusinessUnitController {
	return &BusinessUnitController{svc: svc}
}

func (c *BusinessUnitController) List(ctx *gin.Context) {
	list, err := c.svc.List(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", list)
}

func (c *BusinessUnitController) Get(ctx *gin.Context) {
	u, err := c.svc.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", u)
}

func (c *BusinessUnitController) Create(ctx *gin.Context) {
	var req dto.BusinessUnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	u, err := c.svc.Create(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	created(ctx, u)
}

func (c *BusinessUnitController) Update(ctx *gin.Context) {
	var req dto.BusinessUnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	u, err := c.svc.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", u)
}

// Delete 仍被分类或商品引用时返回 400
func (c *BusinessUnitController) Delete(ctx *gin.Context) {
	if err := c.svc.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "삭제되었습니다", nil)
}

// ==================== 资讯 ====================

// InsightController 资讯管理
type InsightController struct {
	svc *service.InsightService
}

func NewInsightController(svc *service.InsightService) *InsightController {
	return &InsightController{svc: svc}
}

func (c *InsightController) List(ctx *gin.Context) {
	list, err := c.svc.List(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", list)
}

func (c *InsightController) Create(ctx *gin.Context) {
	var req dto.InsightRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	i, err := c.svc.Create(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	created(ctx, i)
}

func (c *InsightController) Update(ctx *gin.Context) {
	var req dto.InsightRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	i, err := c.svc.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", i)
}

func (c *InsightController) Delete(ctx *gin.Context) {
	if err := c.svc.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "삭제되었습니다", nil)
}

func (c *InsightController) Reorder(ctx *gin.Context) {
	var req dto.ReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	if err := c.svc.Reorder(ctx.Request.Context(), req.OrderedIDs); err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "순서가 저장되었습니다", nil)
}

// ==================== 咨询 ====================

// InquiryController 联系表单
type InquiryController struct {
	svc *service.InquiryService
}

func NewInquiryController(svc *service.InquiryService) *InquiryController {
	return &InquiryController{svc: svc}
}

func (c *InquiryController) List(ctx *gin.Context) {
	list, err := c.svc.List(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", list)
}

func (c *InquiryController) Create(ctx *gin.Context) {
	var req dto.InquiryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	inq, err := c.svc.Create(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	created(ctx, inq)
}

// ==================== 邮件设置 ====================

// SettingsController 通知邮件设置
type SettingsController struct {
	svc *service.SettingsService
}

func NewSettingsController(svc *service.SettingsService) *SettingsController {
	return &SettingsController{svc: svc}
}

// Get GET /api/email-settings
func (c *SettingsController) Get(ctx *gin.Context) {
	s, err := c.svc.Get(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", s)
}

// Save PUT /api/email-settings
func (c *SettingsController) Save(ctx *gin.Context) {
	var req dto.EmailSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	s, err := c.svc.Save(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "저장되었습니다", s)
}
