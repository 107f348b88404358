package repository

import (
	"context"
	"sort"

	"equipmall/internal/model"
	"equipmall/internal/store"
)

// InquiryRepository 咨询仓储：只增不改
type InquiryRepository interface {
	List(ctx context.Context) ([]model.Inquiry, error)
	Create(ctx context.Context, inquiry *model.Inquiry) error
}

type inquiryRepo struct {
	c collection[model.Inquiry]
}

// NewInquiryRepository 创建咨询仓储
func NewInquiryRepository(s store.Store) InquiryRepository {
	return &inquiryRepo{c: collection[model.Inquiry]{
		store:  s,
		entity: store.Inquiries,
		decode: decodeInquiry,
		id:     func(i *model.Inquiry) string { return i.ID },
	}}
}

func (r *inquiryRepo) List(ctx context.Context) ([]model.Inquiry, error) {
	items, err := r.c.list(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (r *inquiryRepo) Create(ctx context.Context, inquiry *model.Inquiry) error {
	return r.c.create(ctx, inquiry)
}
