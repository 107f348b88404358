package task

import (
	"context"
	"time"

	"equipmall/internal/api/dto"

	"go.uber.org/zap"
)

// Snapshotter 主存储 → 快照文件
type Snapshotter interface {
	Snapshot(ctx context.Context) (*dto.SyncReport, error)
}

// SnapshotTask 定时备份主存储
type SnapshotTask struct {
	snap    Snapshotter
	timeout time.Duration
	log     *zap.Logger
}

// NewSnapshotTask 创建快照任务
func NewSnapshotTask(snap Snapshotter, timeout time.Duration, log *zap.Logger) *SnapshotTask {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &SnapshotTask{snap: snap, timeout: timeout, log: log.Named("snapshot")}
}

// Run 定时触发入口，自带超时
func (t *SnapshotTask) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	_, _ = t.RunNow(ctx)
}

// RunNow 立即执行一次；部分实体失败只记日志
func (t *SnapshotTask) RunNow(ctx context.Context) (*dto.SyncReport, error) {
	start := time.Now()
	report, err := t.snap.Snapshot(ctx)
	if err != nil {
		t.log.Error("snapshot failed", zap.Error(err))
		return nil, err
	}

	failed := make([]string, 0)
	for _, r := range report.Results {
		if !r.OK {
			failed = append(failed, r.Entity)
		}
	}
	if len(failed) > 0 {
		t.log.Warn("snapshot partially failed", zap.Strings("entities", failed), zap.Duration("took", time.Since(start)))
	} else {
		t.log.Info("snapshot saved", zap.Int("entities", len(report.Results)), zap.Duration("took", time.Since(start)))
	}
	return report, nil
}
