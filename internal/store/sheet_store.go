package store

import (
	"context"

	"equipmall/internal/apperr"
	"equipmall/pkg/sheets"
)

// SheetBridge 表格桥客户端的最小能力，便于测试替换
type SheetBridge interface {
	Fetch(ctx context.Context, sheet string) ([]map[string]any, error)
	Sync(ctx context.Context, sheet, action string, data any) error
}

// SheetStore 以 Google Sheets 为记录系统
type SheetStore struct {
	client SheetBridge
}

// NewSheetStore 创建 Sheets 存储
func NewSheetStore(client SheetBridge) *SheetStore {
	return &SheetStore{client: client}
}

var _ SheetBridge = (*sheets.Client)(nil)

func (s *SheetStore) Fetch(ctx context.Context, entity Entity) ([]Record, error) {
	rows, err := s.client.Fetch(ctx, string(entity))
	if err != nil {
		return nil, apperr.Upstream(err, "fetch %s", entity)
	}
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, Record(r))
	}
	return out, nil
}

func (s *SheetStore) SyncCreate(ctx context.Context, entity Entity, rec Record) error {
	return s.sync(ctx, entity, ActionCreate, map[string]any(rec))
}

func (s *SheetStore) SyncUpdate(ctx context.Context, entity Entity, rec Record) error {
	return s.sync(ctx, entity, ActionUpdate, map[string]any(rec))
}

func (s *SheetStore) SyncDelete(ctx context.Context, entity Entity, id string) error {
	return s.sync(ctx, entity, ActionDelete, map[string]any{"id": id})
}

func (s *SheetStore) SyncBulk(ctx context.Context, entity Entity, records []Record) error {
	data := make([]map[string]any, 0, len(records))
	for _, r := range records {
		data = append(data, map[string]any(r))
	}
	return s.sync(ctx, entity, ActionBulk, data)
}

func (s *SheetStore) sync(ctx context.Context, entity Entity, action Action, data any) error {
	if err := s.client.Sync(ctx, string(entity), string(action), data); err != nil {
		return apperr.Upstream(err, "%s %s", action, entity)
	}
	return nil
}
