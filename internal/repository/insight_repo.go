package repository

import (
	"context"
	"sort"

	"equipmall/internal/model"
	"equipmall/internal/store"
)

// InsightRepository 资讯仓储接口
type InsightRepository interface {
	// List 按 order 排序
	List(ctx context.Context) ([]model.Insight, error)
	GetByID(ctx context.Context, id string) (*model.Insight, error)
	Create(ctx context.Context, insight *model.Insight) error
	Update(ctx context.Context, insight *model.Insight) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, insights []model.Insight) error
}

type insightRepo struct {
	c collection[model.Insight]
}

// NewInsightRepository 创建资讯仓储
func NewInsightRepository(s store.Store) InsightRepository {
	return &insightRepo{c: collection[model.Insight]{
		store:  s,
		entity: store.Insights,
		decode: decodeInsight,
		id:     func(i *model.Insight) string { return i.ID },
	}}
}

func (r *insightRepo) List(ctx context.Context) ([]model.Insight, error) {
	items, err := r.c.list(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })
	return items, nil
}

func (r *insightRepo) GetByID(ctx context.Context, id string) (*model.Insight, error) {
	return r.c.get(ctx, id)
}

func (r *insightRepo) Create(ctx context.Context, insight *model.Insight) error {
	return r.c.create(ctx, insight)
}

func (r *insightRepo) Update(ctx context.Context, insight *model.Insight) error {
	return r.c.update(ctx, insight)
}

func (r *insightRepo) Delete(ctx context.Context, id string) error {
	return r.c.delete(ctx, id)
}

func (r *insightRepo) ReplaceAll(ctx context.Context, insights []model.Insight) error {
	return r.c.replaceAll(ctx, insights)
}
