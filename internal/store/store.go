// Package store 实体集合存储的统一能力接口及其实现
// 上层只依赖 Store：Google Sheets 桥、本地 JSON 文件、关系数据库可以互相替换
package store

import (
	"context"
	"fmt"

	"equipmall/internal/apperr"
)

// Entity 实体集合名 (同时也是 Sheets 中的表名)
type Entity string

const (
	BusinessUnits Entity = "businessUnits"
	Products      Entity = "products"
	Categories    Entity = "categories"
	Quotations    Entity = "quotations"
	Inquiries     Entity = "inquiries"
	Insights      Entity = "insights"
	EmailSettings Entity = "emailSettings"
)

// AllEntities 迁移和快照时遍历的实体
var AllEntities = []Entity{BusinessUnits, Products, Categories, Quotations, Inquiries, Insights, EmailSettings}

// Action 同步动作
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionBulk   Action = "bulk"
)

// Record 一行数据，字段形状未经归一化
type Record map[string]any

// ID 记录主键
func (r Record) ID() string {
	if v, ok := r["id"]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

// Clone 浅拷贝
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Store 集合存储能力接口
// 行级整体覆盖语义；不同实体之间没有事务保证
type Store interface {
	Fetch(ctx context.Context, entity Entity) ([]Record, error)
	SyncCreate(ctx context.Context, entity Entity, rec Record) error
	SyncUpdate(ctx context.Context, entity Entity, rec Record) error
	SyncDelete(ctx context.Context, entity Entity, id string) error
	// SyncBulk 用 records 整体覆盖该实体集合
	SyncBulk(ctx context.Context, entity Entity, records []Record) error
}

// ==================== 集合操作辅助 ====================

func indexOf(list []Record, id string) int {
	for i, r := range list {
		if r.ID() == id {
			return i
		}
	}
	return -1
}

func appendRecord(list []Record, rec Record) ([]Record, error) {
	id := rec.ID()
	if id == "" {
		return nil, apperr.Validation("record id is empty")
	}
	if indexOf(list, id) >= 0 {
		return nil, apperr.Validation("duplicate id: %s", id)
	}
	return append(list, rec.Clone()), nil
}

func replaceRecord(list []Record, entity Entity, rec Record) ([]Record, error) {
	i := indexOf(list, rec.ID())
	if i < 0 {
		return nil, apperr.NotFound("%s not found: %s", entity, rec.ID())
	}
	list[i] = rec.Clone()
	return list, nil
}

func removeRecord(list []Record, entity Entity, id string) ([]Record, error) {
	i := indexOf(list, id)
	if i < 0 {
		return nil, apperr.NotFound("%s not found: %s", entity, id)
	}
	return append(list[:i], list[i+1:]...), nil
}
