package repository

import (
	"context"

	"equipmall/internal/model"
	"equipmall/internal/store"
)

// ==================== 接口定义 ====================

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	Delete(ctx context.Context, id string) error
	// ReplaceAll 整表覆盖 (批量创建、排序、删除时的子分类迁移)
	ReplaceAll(ctx context.Context, categories []model.Category) error
}

// ==================== 仓储实现 ====================

type categoryRepo struct {
	c collection[model.Category]
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(s store.Store) CategoryRepository {
	return &categoryRepo{c: collection[model.Category]{
		store:  s,
		entity: store.Categories,
		decode: decodeCategory,
		id:     func(c *model.Category) string { return c.ID },
	}}
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	return r.c.list(ctx)
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	return r.c.get(ctx, id)
}

func (r *categoryRepo) Create(ctx context.Context, category *model.Category) error {
	return r.c.create(ctx, category)
}

func (r *categoryRepo) Update(ctx context.Context, category *model.Category) error {
	return r.c.update(ctx, category)
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}

func (r *categoryRepo) ReplaceAll(ctx context.Context, categories []model.Category) error {
	return r.c.replaceAll(ctx, categories)
}
