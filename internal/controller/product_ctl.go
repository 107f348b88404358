package controller

import (
	"equipmall/internal/api/dto"
	"equipmall/internal/service"
	"equipmall/internal/taxonomy"

	"github.com/gin-gonic/gin"
)

// ProductController 商品管理与前台
type ProductController struct {
	svc *service.ProductService
}

func NewProductController(svc *service.ProductService) *ProductController {
	return &ProductController{svc: svc}
}

// List GET /api/products?businessUnitId=
func (c *ProductController) List(ctx *gin.Context) {
	list, err := c.svc.List(ctx.Request.Context(), ctx.Query("businessUnitId"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", list)
}

// Get GET /api/products/:id
func (c *ProductController) Get(ctx *gin.Context) {
	p, err := c.svc.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", p)
}

// Create POST /api/products
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	p, err := c.svc.Create(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	created(ctx, p)
}

// Update PUT /api/products/:id
func (c *ProductController) Update(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	p, err := c.svc.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", p)
}

// Delete DELETE /api/products/:id
func (c *ProductController) Delete(ctx *gin.Context) {
	if err := c.svc.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "삭제되었습니다", nil)
}

// BulkCreate POST /api/products/bulk
func (c *ProductController) BulkCreate(ctx *gin.Context) {
	var req dto.BulkCreateProductRequest
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

// ImportModels POST /api/products/:id/models/import
func (c *ProductController) ImportModels(ctx *gin.Context) {
	var req dto.ImportModelsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	p, err := c.svc.ImportModels(ctx.Request.Context(), ctx.Param("id"), req.Text)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", p)
}

// ImportOptions POST /api/products/:id/options/import
func (c *ProductController) ImportOptions(ctx *gin.Context) {
	var req dto.ImportOptionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	p, err := c.svc.ImportOptions(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", p)
}

// Storefront 事业部前台页面数据
// GET /api/storefront/units/:unitId?major=&mid=&minor=
func (c *ProductController) Storefront(ctx *gin.Context) {
	var q dto.StorefrontQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		badRequest(ctx, err)
		return
	}
	sf, err := c.svc.Storefront(ctx.Request.Context(), ctx.Param("unitId"), taxonomy.Selection{
		Major: q.Major,
		Mid:   q.Mid,
		Minor: q.Minor,
	})
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", sf)
}
