package repository

import (
	"context"

	"equipmall/internal/apperr"
	"equipmall/internal/store"
)

// collection 基于 store.Store 的通用集合仓储
type collection[T any] struct {
	store  store.Store
	entity store.Entity
	decode func(store.Record) T
	id     func(*T) string
}

// list 读取全部，跳过没有 id 的空行
func (c *collection[T]) list(ctx context.Context) ([]T, error) {
	records, err := c.store.Fetch(ctx, c.entity)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		v := c.decode(r)
		if c.id(&v) == "" {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *collection[T]) get(ctx context.Context, id string) (*T, error) {
	items, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if c.id(&items[i]) == id {
			return &items[i], nil
		}
	}
	return nil, apperr.NotFound("%s not found: %s", c.entity, id)
}

func (c *collection[T]) create(ctx context.Context, v *T) error {
	rec, err := toRecord(v)
	if err != nil {
		return apperr.Validation("invalid %s: %v", c.entity, err)
	}
	return c.store.SyncCreate(ctx, c.entity, rec)
}

func (c *collection[T]) update(ctx context.Context, v *T) error {
	rec, err := toRecord(v)
	if err != nil {
		return apperr.Validation("invalid %s: %v", c.entity, err)
	}
	return c.store.SyncUpdate(ctx, c.entity, rec)
}

func (c *collection[T]) delete(ctx context.Context, id string) error {
	return c.store.SyncDelete(ctx, c.entity, id)
}

// replaceAll 整体覆盖
func (c *collection[T]) replaceAll(ctx context.Context, items []T) error {
	records := make([]store.Record, 0, len(items))
	for i := range items {
		rec, err := toRecord(&items[i])
		if err != nil {
			return apperr.Validation("invalid %s: %v", c.entity, err)
		}
		records = append(records, rec)
	}
	return c.store.SyncBulk(ctx, c.entity, records)
}
