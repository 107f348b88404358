package router

import (
	"net/http"
	"time"

	"equipmall/internal/controller"
	"equipmall/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Controllers 所有控制器
type Controllers struct {
	Category     *controller.CategoryController
	Product      *controller.ProductController
	BusinessUnit *controller.BusinessUnitController
	Insight      *controller.InsightController
	Inquiry      *controller.InquiryController
	Quotation    *controller.QuotationController
	Settings     *controller.SettingsController
	Admin        *controller.AdminController
}

// Options 路由级配置
type Options struct {
	Logger        *zap.Logger
	Limiter       *middleware.CooldownLimiter
	FormCooldown  time.Duration // 报价/咨询表单
	AdminCooldown time.Duration // 迁移/快照
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(c *Controllers, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(log), middleware.Recovery(log))

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"code": http.StatusOK, "message": "ok"})
	})

	InitRoutes(r, c, opts)
	return r
}

// InitRoutes 注册 API 路由
func InitRoutes(r *gin.Engine, c *Controllers, opts Options) {
	form := func(scope middleware.Scope) gin.HandlerFunc {
		return middleware.Cooldown(opts.Limiter, scope, opts.FormCooldown)
	}
	admin := func(scope middleware.Scope) gin.HandlerFunc {
		return middleware.Cooldown(opts.Limiter, scope, opts.AdminCooldown)
	}

	api := r.Group("/api")
	{
		// 分类
		categories := api.Group("/categories")
		{
			categories.GET("", c.Category.List)
			categories.GET("/tree", c.Category.Tree)
			categories.GET("/options", c.Category.Options)
			categories.POST("", c.Category.Create)
			categories.POST("/bulk", c.Category.BulkCreate)
			categories.POST("/reorder", c.Category.Reorder)
			categories.PUT("/:id", c.Category.Update)
			categories.DELETE("/:id", c.Category.Delete)
		}

		// 商品
		products := api.Group("/products")
		{
			products.GET("", c.Product.List)
			products.GET("/:id", c.Product.Get)
			products.POST("", c.Product.Create)
			products.POST("/bulk", c.Product.BulkCreate)
			products.PUT("/:id", c.Product.Update)
			products.DELETE("/:id", c.Product.Delete)
			products.POST("/:id/models/import", c.Product.ImportModels)
			products.POST("/:id/options/import", c.Product.ImportOptions)
		}

		// 前台
		api.GET("/storefront/units/:unitId", c.Product.Storefront)

		// 事业部
		units := api.Group("/business-units")
		{
			units.GET("", c.BusinessUnit.List)
			units.GET("/:id", c.BusinessUnit.Get)
			units.POST("", c.BusinessUnit.Create)
			units.PUT("/:id", c.BusinessUnit.Update)
			units.DELETE("/:id", c.BusinessUnit.Delete)
		}

		// 资讯
		insights := api.Group("/insights")
		{
			insights.GET("", c.Insight.List)
			insights.POST("", c.Insight.Create)
			insights.POST("/reorder", c.Insight.Reorder)
			insights.PUT("/:id", c.Insight.Update)
			insights.DELETE("/:id", c.Insight.Delete)
		}

		// 报价
		quotations := api.Group("/quotations")
		{
			quotations.POST("/preview", c.Quotation.Preview)
			quotations.POST("", form(middleware.ScopeQuotation), c.Quotation.Issue)
			quotations.GET("", c.Quotation.List)
			quotations.GET("/:id/pdf", c.Quotation.PDF)
		}

		// 咨询
		inquiries := api.Group("/inquiries")
		{
			inquiries.POST("", form(middleware.ScopeInquiry), c.Inquiry.Create)
			inquiries.GET("", c.Inquiry.List)
		}

		// 邮件设置
		api.GET("/email-settings", c.Settings.Get)
		api.PUT("/email-settings", c.Settings.Save)

		// 后台维护
		adminGroup := api.Group("/admin")
		{
			adminGroup.POST("/migrate", admin(middleware.ScopeMigrate), c.Admin.Migrate)
			adminGroup.POST("/snapshot", admin(middleware.ScopeSnapshot), c.Admin.Snapshot)
		}
	}
}
