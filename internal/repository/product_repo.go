package repository

import (
	"context"

	"equipmall/internal/model"
	"equipmall/internal/store"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	ListByBusinessUnit(ctx context.Context, unitID string) ([]model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, products []model.Product) error
}

// ==================== 仓储实现 ====================

type productRepo struct {
	c collection[model.Product]
}

// NewProductRepository 创建商品仓储
func NewProductRepository(s store.Store) ProductRepository {
	return &productRepo{c: collection[model.Product]{
		store:  s,
		entity: store.Products,
		decode: decodeProduct,
		id:     func(p *model.Product) string { return p.ID },
	}}
}

func (r *productRepo) List(ctx context.Context) ([]model.Product, error) {
	return r.c.list(ctx)
}

func (r *productRepo) ListByBusinessUnit(ctx context.Context, unitID string) ([]model.Product, error) {
	all, err := r.c.list(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Product, 0, len(all))
	for i := range all {
		if all[i].InBusinessUnit(unitID) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	return r.c.get(ctx, id)
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	product.EnsureCollections()
	return r.c.create(ctx, product)
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	product.EnsureCollections()
	return r.c.update(ctx, product)
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}

func (r *productRepo) ReplaceAll(ctx context.Context, products []model.Product) error {
	for i := range products {
		products[i].EnsureCollections()
	}
	return r.c.replaceAll(ctx, products)
}
