package repository

import (
	"context"
	"sort"

	"equipmall/internal/model"
	"equipmall/internal/store"
)

// ==================== 接口定义 ====================

// BusinessUnitRepository 事业部仓储接口
type BusinessUnitRepository interface {
	// List 按 order 排序
	List(ctx context.Context) ([]model.BusinessUnit, error)
	GetByID(ctx context.Context, id string) (*model.BusinessUnit, error)
	Create(ctx context.Context, unit *model.BusinessUnit) error
	Update(ctx context.Context, unit *model.BusinessUnit) error
	Delete(ctx context.Context, id string) error
}

// ==================== 仓储实现 ====================

type businessUnitRepo struct {
	c collection[model.BusinessUnit]
}

// NewBusinessUnitRepository 创建事业部仓储
func NewBusinessUnitRepository(s store.Store) BusinessUnitRepository {
	return &businessUnitRepo{c: collection[model.BusinessUnit]{
		store:  s,
		entity: store.BusinessUnits,
		decode: decodeBusinessUnit,
		id:     func(u *model.BusinessUnit) string { return u.ID },
	}}
}

func (r *businessUnitRepo) List(ctx context.Context) ([]model.BusinessUnit, error) {
	units, err := r.c.list(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(units, func(i, j int) bool { return units[i].Order < units[j].Order })
	return units, nil
}

func (r *businessUnitRepo) GetByID(ctx context.Context, id string) (*model.BusinessUnit, error) {
	return r.c.get(ctx, id)
}

func (r *businessUnitRepo) Create(ctx context.Context, unit *model.BusinessUnit) error {
	return r.c.create(ctx, unit)
}

func (r *businessUnitRepo) Update(ctx context.Context, unit *model.BusinessUnit) error {
	return r.c.update(ctx, unit)
}

func (r *businessUnitRepo) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}
