package controller

import (
	"errors"
	"fmt"
	"net/http"

	"equipmall/internal/api/dto"
	"equipmall/internal/apperr"
	"equipmall/internal/service"

	"github.com/gin-gonic/gin"
)

// QuotationController 报价
type QuotationController struct {
	svc *service.QuotationService
}

func NewQuotationController(svc *service.QuotationService) *QuotationController {
	return &QuotationController{svc: svc}
}

// Preview 试算金额
// POST /api/quotations/preview
func (c *QuotationController) Preview(ctx *gin.Context) {
	var req dto.QuotePreviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	resp, err := c.svc.Preview(ctx.Request.Context(), req)
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", resp)
}

// Issue 开具报价单
// 渲染失败时返回 502 + retryable，data 中带已保存的报价单
// POST /api/quotations
func (c *QuotationController) Issue(ctx *gin.Context) {
	var req dto.IssueQuotationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	resp, err := c.svc.Issue(ctx.Request.Context(), req)
	if errors.Is(err, apperr.ErrRender) && resp != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusBadGateway, gin.H{
			"code":      http.StatusBadGateway,
			"message":   apperr.MessageOf(err),
			"retryable": true,
			"data":      resp,
		})
		return
	}
	if err != nil {
		fail(ctx, err)
		return
	}
	created(ctx, resp)
}

// List GET /api/quotations
func (c *QuotationController) List(ctx *gin.Context) {
	list, err := c.svc.List(ctx.Request.Context())
	if err != nil {
		fail(ctx, err)
		return
	}
	ok(ctx, "ok", list)
}

// PDF 重新生成 PDF 下载
// GET /api/quotations/:id/pdf
func (c *QuotationController) PDF(ctx *gin.Context) {
	id := ctx.Param("id")
	data, err := c.svc.PDF(ctx.Request.Context(), id)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, id))
	ctx.Data(http.StatusOK, "application/pdf", data)
}
