package service

import (
	"context"
	"sync"
	"time"

	"equipmall/internal/api/dto"
	"equipmall/internal/apperr"
	"equipmall/internal/store"

	"go.uber.org/zap"
)

// SyncService 存储之间整集合复制
// Migrate：本地 JSON → 主存储；Snapshot：主存储 → 本地快照文件
// 每个实体独立复制，没有跨实体事务，报告允许部分成功
type SyncService struct {
	local    store.Store
	primary  store.Store
	snapshot store.Store
	names    SyncNames
	log      *zap.Logger

	mu       sync.Mutex // 同一时间只跑一个复制
	lastSnap time.Time
}

// SyncNames 报告中展示的存储名
type SyncNames struct {
	Local    string
	Primary  string
	Snapshot string
}

// NewSyncService 创建同步服务；snapshot 为 nil 时快照不可用
func NewSyncService(local, primary, snapshot store.Store, names SyncNames, log *zap.Logger) *SyncService {
	return &SyncService{local: local, primary: primary, snapshot: snapshot, names: names, log: log.Named("sync")}
}

// Migrate 把本地 JSON 中的所有实体写入主存储
func (s *SyncService) Migrate(ctx context.Context) (*dto.SyncReport, error) {
	if s.local == nil || s.primary == nil {
		return nil, apperr.Config("마이그레이션 저장소가 설정되지 않았습니다")
	}
	return s.copy(ctx, s.local, s.primary, s.names.Local, s.names.Primary), nil
}

// Snapshot 把主存储备份到快照文件
func (s *SyncService) Snapshot(ctx context.Context) (*dto.SyncReport, error) {
	if s.snapshot == nil || s.primary == nil {
		return nil, apperr.Config("스냅샷 저장소가 설정되지 않았습니다")
	}
	report := s.copy(ctx, s.primary, s.snapshot, s.names.Primary, s.names.Snapshot)
	if report.Succeeded() {
		s.mu.Lock()
		s.lastSnap = time.Now()
		s.mu.Unlock()
	}
	return report, nil
}

// LastSnapshot 最近一次完整成功的快照时间
func (s *SyncService) LastSnapshot() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSnap
}

func (s *SyncService) copy(ctx context.Context, from, to store.Store, fromName, toName string) *dto.SyncReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &dto.SyncReport{Source: fromName, Target: toName, Results: make([]dto.EntityResult, 0, len(store.AllEntities))}
	for _, entity := range store.AllEntities {
		res := dto.EntityResult{Entity: string(entity)}
		records, err := from.Fetch(ctx, entity)
		if err == nil {
			records = withIDs(records)
			res.Count = len(records)
			err = to.SyncBulk(ctx, entity, records)
		}
		if err != nil {
			res.Error = apperr.MessageOf(err)
			s.log.Warn("copy entity failed",
				zap.String("entity", string(entity)),
				zap.String("from", fromName),
				zap.String("to", toName),
				zap.Error(err),
			)
		} else {
			res.OK = true
		}
		report.Results = append(report.Results, res)
	}

	s.log.Info("copy finished",
		zap.String("from", fromName),
		zap.String("to", toName),
		zap.Bool("ok", report.Succeeded()),
	)
	return report
}

// withIDs 丢弃没有 id 的空行 (表格里的空白行)
func withIDs(records []store.Record) []store.Record {
	out := make([]store.Record, 0, len(records))
	for _, r := range records {
		if r.ID() != "" {
			out = append(out, r)
		}
	}
	return out
}
