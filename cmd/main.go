package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equipmall/internal/config"
	"equipmall/internal/controller"
	"equipmall/internal/middleware"
	"equipmall/internal/repository"
	"equipmall/internal/router"
	"equipmall/internal/service"
	"equipmall/internal/store"
	"equipmall/internal/task"
	"equipmall/pkg/database"
	"equipmall/pkg/document"
	"equipmall/pkg/logger"
	"equipmall/pkg/mailer"
	"equipmall/pkg/sheets"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("config", "", "配置文件路径 (默认 ./config.yaml)")
	flag.Parse()

	// 1. 配置与日志
	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// 2. 初始化依赖
	deps, err := initDependencies(cfg, log)
	if err != nil {
		log.Fatal("初始化依赖失败", zap.Error(err))
	}

	// 3. 启动定时任务
	deps.Tasks.Start()

	// 4. 初始化路由
	gin.SetMode(cfg.Server.Mode)
	r := router.SetupRouter(deps.Controllers, router.Options{
		Logger:        log,
		Limiter:       deps.Limiter,
		FormCooldown:  cfg.RateLimit.FormCooldown,
		AdminCooldown: cfg.RateLimit.AdminCooldown,
	})

	// 5. 启动服务
	startServer(cfg.Server, r, deps, log)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Store       store.Store
	Repos       *Repositories
	Services    *Services
	Limiter     *middleware.CooldownLimiter
	Tasks       *task.TaskManager
	Controllers *router.Controllers
	closers     []func() error
}

// Repositories 仓库集合
type Repositories struct {
	BusinessUnit repository.BusinessUnitRepository
	Category     repository.CategoryRepository
	Product      repository.ProductRepository
	Insight      repository.InsightRepository
	Inquiry      repository.InquiryRepository
	Quotation    repository.QuotationRepository
	Settings     repository.EmailSettingsRepository
}

// Services 服务集合
type Services struct {
	BusinessUnit *service.BusinessUnitService
	Category     *service.CategoryService
	Product      *service.ProductService
	Insight      *service.InsightService
	Inquiry      *service.InquiryService
	Quotation    *service.QuotationService
	Settings     *service.SettingsService
	Notification *service.NotificationService
	Sync         *service.SyncService
}

// ==================== 初始化函数 ====================

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, log *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	// -------- 存储 --------
	local := store.NewJSONFileStore(cfg.JSON.Path)
	primary, primaryName, err := initPrimaryStore(cfg, local, deps)
	if err != nil {
		return nil, err
	}
	deps.Store = wrapStore(cfg, primary, local, deps, log)
	log.Info("存储已就绪",
		zap.String("driver", primaryName),
		zap.Bool("fallback", cfg.Store.Fallback && primary != store.Store(local)),
		zap.Duration("cache_ttl", cfg.Store.CacheTTL),
	)

	// -------- Repo 层 --------
	deps.Repos = initRepositories(deps.Store)

	// -------- 基础服务 --------
	renderer, err := document.NewRenderer(document.Config{
		FontPath:    cfg.Document.FontPath,
		CompanyName: cfg.Document.CompanyName,
		CompanyInfo: cfg.Document.CompanyInfo,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化报价单渲染失败: %w", err)
	}
	if cfg.Document.FontPath == "" {
		log.Warn("未配置 document.font_path，报价单中的韩文将无法显示")
	}

	var sender mailer.Sender = mailer.Nop{}
	if cfg.SMTP.Host != "" {
		sender = mailer.NewSMTP(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		log.Warn("未配置 smtp.host，通知邮件不会发送")
	}

	// -------- 业务服务 --------
	repos := deps.Repos
	notifier := service.NewNotificationService(sender, repos.Settings, cfg.SMTP.Recipients, log)
	deps.Services = &Services{
		BusinessUnit: service.NewBusinessUnitService(repos.BusinessUnit, repos.Category, repos.Product, log),
		Category:     service.NewCategoryService(repos.Category, repos.BusinessUnit, log),
		Product:      service.NewProductService(repos.Product, repos.Category, repos.BusinessUnit, log),
		Insight:      service.NewInsightService(repos.Insight, log),
		Inquiry:      service.NewInquiryService(repos.Inquiry, notifier, log),
		Quotation: service.NewQuotationService(repos.Quotation, repos.Product, renderer, notifier, service.QuotationOptions{
			UnitName:  cfg.Document.UnitName,
			ValidDays: cfg.Document.ValidDays,
		}, log),
		Settings:     service.NewSettingsService(repos.Settings),
		Notification: notifier,
		Sync: service.NewSyncService(local, primary, store.NewJSONFileStore(cfg.Snapshot.Path), service.SyncNames{
			Local:    config.StoreJSON,
			Primary:  primaryName,
			Snapshot: "snapshot",
		}, log),
	}

	// -------- 定时任务 --------
	deps.Limiter = middleware.NewCooldownLimiter()
	taskCfg := task.DefaultConfig()
	taskCfg.SnapshotEnabled = cfg.Snapshot.Enabled
	taskCfg.SnapshotSpec = cfg.Snapshot.Spec
	deps.Tasks, err = task.NewTaskManager(&task.TaskManagerDeps{
		Snapshotter: deps.Services.Sync,
		Limiter:     deps.Limiter,
		Logger:      log,
	}, taskCfg)
	if err != nil {
		return nil, err
	}

	// -------- Controller 层 --------
	deps.Controllers = initControllers(deps.Services, deps.Tasks)
	return deps, nil
}

// initPrimaryStore 按 store.driver 创建主存储
func initPrimaryStore(cfg *config.Config, local *store.JSONFileStore, deps *Dependencies) (store.Store, string, error) {
	switch cfg.Store.Driver {
	case config.StoreSheets:
		client := sheets.New(sheets.Config{
			URL:     cfg.Sheets.URL,
			Token:   cfg.Sheets.Token,
			Timeout: cfg.Sheets.Timeout,
			Debug:   cfg.Sheets.Debug,
		})
		return store.NewSheetStore(client), config.StoreSheets, nil
	case config.StoreDatabase:
		db, err := database.InitDB(database.Config{
			Driver: cfg.Database.Driver,
			DSN:    cfg.Database.DSN,
			Debug:  cfg.Database.Debug,
		}, &store.RecordRow{})
		if err != nil {
			return nil, "", err
		}
		if sqlDB, err := db.DB(); err == nil {
			deps.closers = append(deps.closers, sqlDB.Close)
		}
		return store.NewGormStore(db), cfg.Database.Driver, nil
	default:
		return local, config.StoreJSON, nil
	}
}

// wrapStore 主存储外层：本地 JSON 兜底 + 读缓存
func wrapStore(cfg *config.Config, primary store.Store, local *store.JSONFileStore, deps *Dependencies, log *zap.Logger) store.Store {
	s := primary
	if cfg.Store.Fallback && primary != store.Store(local) {
		s = store.NewFallbackStore(primary, local, log)
	}
	if cfg.Store.CacheTTL <= 0 {
		return s
	}

	var cache store.Cache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		deps.closers = append(deps.closers, client.Close)
		cache = store.NewRedisCache(client)
	} else {
		cache = store.NewMemoryCache()
	}
	return store.NewCachedStore(s, cache, cfg.Store.CacheTTL, log)
}

// initRepositories 初始化所有仓库
func initRepositories(s store.Store) *Repositories {
	return &Repositories{
		BusinessUnit: repository.NewBusinessUnitRepository(s),
		Category:     repository.NewCategoryRepository(s),
		Product:      repository.NewProductRepository(s),
		Insight:      repository.NewInsightRepository(s),
		Inquiry:      repository.NewInquiryRepository(s),
		Quotation:    repository.NewQuotationRepository(s),
		Settings:     repository.NewEmailSettingsRepository(s),
	}
}

// initControllers 初始化所有控制器
func initControllers(svc *Services, tasks *task.TaskManager) *router.Controllers {
	return &router.Controllers{
		Category:     controller.NewCategoryController(svc.Category),
		Product:      controller.NewProductController(svc.Product),
		BusinessUnit: controller.NewBusinessUnitController(svc.BusinessUnit),
		Insight:      controller.NewInsightController(svc.Insight),
		Inquiry:      controller.NewInquiryController(svc.Inquiry),
		Quotation:    controller.NewQuotationController(svc.Quotation),
		Settings:     controller.NewSettingsController(svc.Settings),
		Admin:        controller.NewAdminController(svc.Sync, tasks),
	}
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(cfg config.ServerConfig, r *gin.Engine, deps *Dependencies, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 异步启动服务
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务...")

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务强制关闭", zap.Error(err))
	}
	deps.Tasks.Stop(ctx)
	for _, closeFn := range deps.closers {
		if err := closeFn(); err != nil {
			log.Warn("释放资源失败", zap.Error(err))
		}
	}

	log.Info("服务已退出")
}
