package store

import (
	"context"
	"encoding/json"
	"time"

	"equipmall/internal/apperr"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordRow records 表的一行：所有实体共用一张表，按 (entity, id) 定位
type RecordRow struct {
	Entity    string         `gorm:"primaryKey;size:64"`
	ID        string         `gorm:"primaryKey;size:191"`
	Position  int            `gorm:"index"`
	Data      datatypes.JSON `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RecordRow) TableName() string { return "records" }

// GormStore 关系数据库存储 (sqlite / postgres)
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 创建数据库存储，表需已迁移 (database.InitDB(cfg, &RecordRow{}))
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Fetch(ctx context.Context, entity Entity) ([]Record, error) {
	var rows []RecordRow
	err := s.db.WithContext(ctx).
		Where("entity = ?", string(entity)).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Upstream(err, "fetch %s", entity)
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		var rec Record
		if err := json.Unmarshal(row.Data, &rec); err != nil {
			return nil, apperr.Upstream(err, "decode %s/%s", entity, row.ID)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *GormStore) SyncCreate(ctx context.Context, entity Entity, rec Record) error {
	if rec.ID() == "" {
		return apperr.Validation("record id is empty")
	}
	data, err := encode(rec)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&RecordRow{}).
			Where("entity = ? AND id = ?", string(entity), rec.ID()).
			Count(&count).Error; err != nil {
			return apperr.Upstream(err, "create %s", entity)
		}
		if count > 0 {
			return apperr.Validation("duplicate id: %s", rec.ID())
		}

		var next int
		if err := tx.Model(&RecordRow{}).
			Where("entity = ?", string(entity)).
			Select("COALESCE(MAX(position), -1) + 1").
			Scan(&next).Error; err != nil {
			return apperr.Upstream(err, "create %s", entity)
		}

		row := RecordRow{Entity: string(entity), ID: rec.ID(), Position: next, Data: data}
		if err := tx.Create(&row).Error; err != nil {
			return apperr.Upstream(err, "create %s", entity)
		}
		return nil
	})
}

func (s *GormStore) SyncUpdate(ctx context.Context, entity Entity, rec Record) error {
	data, err := encode(rec)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&RecordRow{}).
		Where("entity = ? AND id = ?", string(entity), rec.ID()).
		Updates(map[string]interface{}{"data": data, "updated_at": time.Now()})
	if res.Error != nil {
		return apperr.Upstream(res.Error, "update %s", entity)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("%s not found: %s", entity, rec.ID())
	}
	return nil
}

func (s *GormStore) SyncDelete(ctx context.Context, entity Entity, id string) error {
	res := s.db.WithContext(ctx).
		Where("entity = ? AND id = ?", string(entity), id).
		Delete(&RecordRow{})
	if res.Error != nil {
		return apperr.Upstream(res.Error, "delete %s", entity)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("%s not found: %s", entity, id)
	}
	return nil
}

// SyncBulk 整体覆盖，在一个事务内完成
func (s *GormStore) SyncBulk(ctx context.Context, entity Entity, records []Record) error {
	rows := make([]RecordRow, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		id := rec.ID()
		if id == "" {
			return apperr.Validation("record id is empty")
		}
		if seen[id] {
			return apperr.Validation("duplicate id: %s", id)
		}
		seen[id] = true

		data, err := encode(rec)
		if err != nil {
			return err
		}
		rows = append(rows, RecordRow{Entity: string(entity), ID: id, Position: i, Data: data})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity = ?", string(entity)).Delete(&RecordRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
	if err != nil {
		return apperr.Upstream(err, "bulk %s", entity)
	}
	return nil
}

func encode(rec Record) (datatypes.JSON, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, apperr.Validation("invalid record: %v", err)
	}
	return datatypes.JSON(data), nil
}
