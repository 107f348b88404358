package task

import (
	"context"
	"fmt"
	"time"

	"equipmall/internal/api/dto"
	"equipmall/internal/middleware"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ==================== TaskManager 后台任务管理器 ====================

// TaskManager 统一管理定时任务
// 管理范围：主存储快照、限流器条目清理
type TaskManager struct {
	cron     *cron.Cron
	snapshot *SnapshotTask
	sweep    bool
	log      *zap.Logger
}

// TaskManagerDeps 任务管理器依赖
type TaskManagerDeps struct {
	Snapshotter Snapshotter
	Limiter     *middleware.CooldownLimiter
	Logger      *zap.Logger
}

// TaskManagerConfig 任务管理器配置
type TaskManagerConfig struct {
	// 快照
	SnapshotEnabled bool
	SnapshotSpec    string // 标准 5 段 cron 表达式
	SnapshotTimeout time.Duration

	// 限流器清理
	SweepSpec   string
	SweepMaxAge time.Duration
}

// DefaultConfig 默认配置
func DefaultConfig() *TaskManagerConfig {
	return &TaskManagerConfig{
		SnapshotEnabled: true,
		SnapshotSpec:    "0 3 * * *",
		SnapshotTimeout: 5 * time.Minute,
		SweepSpec:       "@every 10m",
		SweepMaxAge:     time.Hour,
	}
}

// NewTaskManager 创建任务管理器；cron 表达式非法时返回错误
func NewTaskManager(deps *TaskManagerDeps, cfg *TaskManagerConfig) (*TaskManager, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("task")

	// 上一轮未结束时跳过本轮
	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(zap.NewStdLog(log))),
		cron.SkipIfStillRunning(cron.PrintfLogger(zap.NewStdLog(log))),
	))
	tm := &TaskManager{cron: c, log: log}

	if cfg.SnapshotEnabled && deps.Snapshotter != nil {
		tm.snapshot = NewSnapshotTask(deps.Snapshotter, cfg.SnapshotTimeout, log)
		if _, err := c.AddFunc(cfg.SnapshotSpec, tm.snapshot.Run); err != nil {
			return nil, fmt.Errorf("snapshot schedule %q: %w", cfg.SnapshotSpec, err)
		}
	}

	if deps.Limiter != nil && cfg.SweepSpec != "" {
		limiter, maxAge := deps.Limiter, cfg.SweepMaxAge
		if _, err := c.AddFunc(cfg.SweepSpec, func() {
			if n := limiter.Sweep(maxAge); n > 0 {
				log.Debug("limiter swept", zap.Int("removed", n))
			}
		}); err != nil {
			return nil, fmt.Errorf("sweep schedule %q: %w", cfg.SweepSpec, err)
		}
		tm.sweep = true
	}

	return tm, nil
}

// ==================== 生命周期管理 ====================

// Start 启动调度
func (tm *TaskManager) Start() {
	tm.cron.Start()
	tm.log.Info("task manager started", zap.Int("jobs", len(tm.cron.Entries())))
}

// Stop 停止调度并等待正在执行的任务结束
func (tm *TaskManager) Stop(ctx context.Context) {
	done := tm.cron.Stop()
	select {
	case <-done.Done():
		tm.log.Info("task manager stopped")
	case <-ctx.Done():
		tm.log.Warn("task manager stop timed out")
	}
}

// ==================== 手动触发接口 ====================

// TriggerSnapshot 立即执行一次快照
func (tm *TaskManager) TriggerSnapshot(ctx context.Context) (*dto.SyncReport, error) {
	if tm.snapshot == nil {
		return nil, ErrTaskDisabled
	}
	return tm.snapshot.RunNow(ctx)
}

// ==================== 状态查询 ====================

// Status 各任务是否启用
func (tm *TaskManager) Status() map[string]bool {
	return map[string]bool{
		"snapshot": tm.snapshot != nil,
		"sweep":    tm.sweep,
	}
}

// ==================== 错误定义 ====================

type TaskError string

func (e TaskError) Error() string { return string(e) }

const (
	ErrTaskDisabled TaskError = "task is disabled"
)
