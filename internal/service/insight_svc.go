package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"equipmall/internal/api/dto"
	"equipmall/internal/apperr"
	"equipmall/internal/model"
	"equipmall/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InsightService 资讯管理
type InsightService struct {
	repo repository.InsightRepository
	log  *zap.Logger
	now  func() time.Time
}

// NewInsightService 创建资讯服务
func NewInsightService(repo repository.InsightRepository, log *zap.Logger) *InsightService {
	return &InsightService{repo: repo, log: log.Named("insight"), now: time.Now}
}

func (s *InsightService) List(ctx context.Context) ([]model.Insight, error) {
	return s.repo.List(ctx)
}

func (s *InsightService) Get(ctx context.Context, id string) (*model.Insight, error) {
	i, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("인사이트를 찾을 수 없습니다: %s", id)
	}
	return i, err
}

// Create 新资讯排在最后
func (s *InsightService) Create(ctx context.Context, req dto.InsightRequest) (*model.Insight, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("제목을 입력해 주세요")
	}
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	next := 0
	for _, it := range items {
		if it.Order >= next {
			next = it.Order + 1
		}
	}

	insight := &model.Insight{
		ID:        uuid.NewString(),
		Title:     title,
		Summary:   req.Summary,
		Content:   req.Content,
		Image:     req.Image,
		Link:      req.Link,
		Order:     next,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, insight); err != nil {
		return nil, err
	}
	return insight, nil
}

func (s *InsightService) Update(ctx context.Context, id string, req dto.InsightRequest) (*model.Insight, error) {
	insight, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperr.Validation("제목을 입력해 주세요")
	}
	insight.Title = title
	insight.Summary = req.Summary
	insight.Content = req.Content
	insight.Image = req.Image
	insight.Link = req.Link
	if err := s.repo.Update(ctx, insight); err != nil {
		return nil, err
	}
	return insight, nil
}

func (s *InsightService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Reorder 与分类相同的按位置重写协议
func (s *InsightService) Reorder(ctx context.Context, orderedIDs []string) error {
	items, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	position := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		if _, seen := position[id]; !seen {
			position[id] = i
		}
	}
	known := make(map[string]bool, len(items))
	for _, it := range items {
		known[it.ID] = true
	}
	for id := range position {
		if !known[id] {
			return apperr.NotFound("인사이트를 찾을 수 없습니다: %s", id)
		}
	}

	changed := false
	for i := range items {
		if pos, ok := position[items[i].ID]; ok && items[i].Order != pos {
			items[i].Order = pos
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.repo.ReplaceAll(ctx, items)
}
