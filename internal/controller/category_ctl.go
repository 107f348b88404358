package controller

import (
	"equipmall/internal/api/dto"
	"equipmall/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryController 分类管理
type CategoryController struct {
	svc *service.CategoryService
}

func NewCategoryController(svc *service.CategoryService) *CategoryController {
	return &CategoryController{svc: svc}
}

// List 全部分类 (扁平，按 order)
// GET /api/categories
func (c *CategoryController) List(ctx *gin.Context) {
	list, err := c.svc.List(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", list)
}

// Tree 事业部分类树
// GET /api/categories/tree?businessUnitId=
func (c *CategoryController) Tree(ctx *gin.Context) {
	tree, err := c.svc.Tree(ctx.Request.Context(), ctx.Query("businessUnitId"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", tree)
}

// Options 上级分类下拉框
// GET /api/categories/options?businessUnitId=
func (c *CategoryController) Options(ctx *gin.Context) {
	opts, err := c.svc.Options(ctx.Request.Context(), ctx.Query("businessUnitId"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", opts)
}

// Create POST /api/categories
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	category, err := c.svc.Create(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	created(ctx, category)
}

// BulkCreate POST /api/categories/bulk
func (c *CategoryController) BulkCreate(ctx *gin.Context) {
	var req dto.BulkCreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	list, err := c.svc.BulkCreate(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	created(ctx, list)
}

// Reorder POST /api/categories/reorder
func (c *CategoryController) Reorder(ctx *gin.Context) {
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

// Update PUT /api/categories/:id
func (c *CategoryController) Update(ctx *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	category, err := c.svc.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", category)
}

// Delete DELETE /api/categories/:id
func (c *CategoryController) Delete(ctx *gin.Context) {
	if err := c.svc.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "삭제되었습니다", nil)
}
