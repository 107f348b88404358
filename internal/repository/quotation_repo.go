package repository

import (
	"context"
	"sort"

	"equipmall/internal/model"
	"equipmall/internal/store"
)

// QuotationRepository 报价单仓储：只增不改
type QuotationRepository interface {
	// List 最新的在前
	List(ctx context.Context) ([]model.Quotation, error)
	GetByID(ctx context.Context, id string) (*model.Quotation, error)
	Create(ctx context.Context, q *model.Quotation) error
}

type quotationRepo struct {
	c collection[model.Quotation]
}

// NewQuotationRepository 创建报价单仓储
func NewQuotationRepository(s store.Store) QuotationRepository {
	return &quotationRepo{c: collection[model.Quotation]{
		store:  s,
		entity: store.Quotations,
		decode: decodeQuotation,
		id:     func(q *model.Quotation) string { return q.ID },
	}}
}

func (r *quotationRepo) List(ctx context.Context) ([]model.Quotation, error) {
	items, err := r.c.list(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (r *quotationRepo) GetByID(ctx context.Context, id string) (*model.Quotation, error) {
	return r.c.get(ctx, id)
}

func (r *quotationRepo) Create(ctx context.Context, q *model.Quotation) error {
	return r.c.create(ctx, q)
}
