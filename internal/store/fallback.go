package store

import (
	"context"
	"errors"

	"equipmall/internal/apperr"

	"go.uber.org/zap"
)

// FallbackStore 主存储优先，失败时读后备存储
// 写操作以主存储为准，成功后尽力镜像到后备存储 (镜像失败只记日志)
type FallbackStore struct {
	primary   Store
	secondary Store
	log       *zap.Logger
}

// NewFallbackStore 组合主/后备存储
func NewFallbackStore(primary, secondary Store, log *zap.Logger) *FallbackStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FallbackStore{primary: primary, secondary: secondary, log: log.Named("store")}
}

func (s *FallbackStore) Fetch(ctx context.Context, entity Entity) ([]Record, error) {
	records, err := s.primary.Fetch(ctx, entity)
	if err == nil {
		return records, nil
	}
	s.log.Warn("primary store fetch failed, using fallback",
		zap.String("entity", string(entity)), zap.Error(err))

	records, ferr := s.secondary.Fetch(ctx, entity)
	if ferr != nil {
		s.log.Error("fallback store fetch failed", zap.String("entity", string(entity)), zap.Error(ferr))
		return nil, err
	}
	return records, nil
}

func (s *FallbackStore) SyncCreate(ctx context.Context, entity Entity, rec Record) error {
	if err := s.primary.SyncCreate(ctx, entity, rec); err != nil {
		return err
	}
	err := s.secondary.SyncCreate(ctx, entity, rec)
	if errors.Is(err, apperr.ErrValidation) {
		// 后备里已经有同 id 的旧数据
		err = s.secondary.SyncUpdate(ctx, entity, rec)
	}
	s.mirrored(entity, ActionCreate, err)
	return nil
}

func (s *FallbackStore) SyncUpdate(ctx context.Context, entity Entity, rec Record) error {
	if err := s.primary.SyncUpdate(ctx, entity, rec); err != nil {
		return err
	}
	err := s.secondary.SyncUpdate(ctx, entity, rec)
	if errors.Is(err, apperr.ErrNotFound) {
		err = s.secondary.SyncCreate(ctx, entity, rec)
	}
	s.mirrored(entity, ActionUpdate, err)
	return nil
}

func (s *FallbackStore) SyncDelete(ctx context.Context, entity Entity, id string) error {
	if err := s.primary.SyncDelete(ctx, entity, id); err != nil {
		return err
	}
	err := s.secondary.SyncDelete(ctx, entity, id)
	if errors.Is(err, apperr.ErrNotFound) {
		err = nil
	}
	s.mirrored(entity, ActionDelete, err)
	return nil
}

func (s *FallbackStore) SyncBulk(ctx context.Context, entity Entity, records []Record) error {
	if err := s.primary.SyncBulk(ctx, entity, records); err != nil {
		return err
	}
	s.mirrored(entity, ActionBulk, s.secondary.SyncBulk(ctx, entity, records))
	return nil
}

func (s *FallbackStore) mirrored(entity Entity, action Action, err error) {
	if err != nil {
		s.log.Warn("mirror to fallback store failed",
			zap.String("entity", string(entity)),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
