package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"equipmall/internal/api/dto"
	"equipmall/internal/apperr"
	"equipmall/internal/bulk"
	"equipmall/internal/model"
	"equipmall/internal/repository"
	"equipmall/internal/taxonomy"

	"go.uber.org/zap"
)

// CategoryService 分类管理
type CategoryService struct {
	repo  repository.CategoryRepository
	units repository.BusinessUnitRepository
	log   *zap.Logger
	now   func() time.Time
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, units repository.BusinessUnitRepository, log *zap.Logger) *CategoryService {
	return &CategoryService{repo: repo, units: units, log: log.Named("category"), now: time.Now}
}

// List 全部分类，按 order 排序，附带事业部名称
func (s *CategoryService) List(ctx context.Context) ([]dto.CategoryView, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	units, err := s.units.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(units))
	for _, u := range units {
		names[u.ID] = u.Name
	}

	taxonomy.SortByOrder(categories)
	out := make([]dto.CategoryView, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryView{Category: c, BusinessUnitName: names[c.BusinessUnitID]})
	}
	return out, nil
}

// Tree 某事业部的分类树
func (s *CategoryService) Tree(ctx context.Context, unitID string) ([]*taxonomy.Node, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	tree, err := taxonomy.BuildUnitTree(categories, unitID)
	return tree, cycleError(err)
}

// Options 上级分类下拉框 (先序，带深度)
func (s *CategoryService) Options(ctx context.Context, unitID string) ([]taxonomy.Option, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := taxonomy.FlatOptions(categories, unitID)
	return opts, cycleError(err)
}

// Create 新建分类，排在兄弟组末尾
func (s *CategoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*model.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("카테고리 이름을 입력해 주세요")
	}
	categories, err := s.prepare(ctx, req.BusinessUnitID, req.ParentID)
	if err != nil {
		return nil, err
	}

	taken := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		taken[c.ID] = struct{}{}
	}
	category := &model.Category{
		ID:             taxonomy.UniqueID(name, taken),
		Name:           name,
		BusinessUnitID: req.BusinessUnitID,
		ParentID:       req.ParentID,
		Order:          taxonomy.NextOrder(categories, req.BusinessUnitID, req.ParentID),
		CreatedAt:      s.now(),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.log.Info("category created", zap.String("id", category.ID), zap.String("unit", category.BusinessUnitID))
	return category, nil
}

// BulkCreate 一次新建多个同级分类
func (s *CategoryService) BulkCreate(ctx context.Context, req dto.BulkCreateCategoryRequest) ([]model.Category, error) {
	categories, err := s.prepare(ctx, req.BusinessUnitID, req.ParentID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(req.Names))
	for _, n := range req.Names {
		names = append(names, bulk.Lines(n)...)
	}
	created := taxonomy.PlanBulkCreate(categories, names, req.BusinessUnitID, req.ParentID, s.now())
	if len(created) == 0 {
		return nil, apperr.Validation("추가할 카테고리 이름을 입력해 주세요")
	}

	if err := s.repo.ReplaceAll(ctx, append(categories, created...)); err != nil {
		return nil, err
	}
	s.log.Info("categories bulk created", zap.Int("count", len(created)), zap.String("unit", req.BusinessUnitID))
	return created, nil
}

// Reorder 按 orderedIds 的位置重写 order；未列出的分类不变
// 幂等：失败后重放同一请求即可
func (s *CategoryService) Reorder(ctx context.Context, orderedIDs []string) error {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}
	for _, id := range orderedIDs {
		if !known[id] {
			return apperr.NotFound("카테고리를 찾을 수 없습니다: %s", id)
		}
	}

	out, changed := taxonomy.ApplyOrderedIDs(categories, orderedIDs)
	if len(changed) == 0 {
		return nil
	}
	return s.repo.ReplaceAll(ctx, out)
}

// Update 改名或移动到新的上级
func (s *CategoryService) Update(ctx context.Context, id string, req dto.UpdateCategoryRequest) (*model.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var current *model.Category
	for i := range categories {
		if categories[i].ID == id {
			current = &categories[i]
			break
		}
	}
	if current == nil {
		return nil, apperr.NotFound("카테고리를 찾을 수 없습니다: %s", id)
	}

	updated := *current
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.Validation("카테고리 이름을 입력해 주세요")
		}
		updated.Name = name
	}
	if req.ParentID != nil && *req.ParentID != current.ParentID {
		if err := taxonomy.ValidateMove(categories, id, *req.ParentID); err != nil {
			return nil, cycleError(err)
		}
		updated.ParentID = *req.ParentID
		others := make([]model.Category, 0, len(categories))
		for _, c := range categories {
			if c.ID != id {
				others = append(others, c)
			}
		}
		updated.Order = taxonomy.NextOrder(others, updated.BusinessUnitID, updated.ParentID)
	}

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete 删除分类，直接子分类过继给它的上级
// 指向被删分类的商品保留原 id，前台会把它们列入未分类
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	found := false
	for _, c := range categories {
		if c.ID == id {
			found = true
			break
		}
	}
	if !found {
		return apperr.NotFound("카테고리를 찾을 수 없습니다: %s", id)
	}

	moved := taxonomy.Reparent(categories, id)
	if len(moved) == 0 {
		return s.repo.Delete(ctx, id)
	}

	byID := make(map[string]model.Category, len(moved))
	for _, c := range moved {
		byID[c.ID] = c
	}
	remaining := make([]model.Category, 0, len(categories)-1)
	for _, c := range categories {
		if c.ID == id {
			continue
		}
		if m, ok := byID[c.ID]; ok {
			c = m
		}
		remaining = append(remaining, c)
	}
	sort.SliceStable(remaining, func(i, j int) bool { return remaining[i].Order < remaining[j].Order })

	if err := s.repo.ReplaceAll(ctx, remaining); err != nil {
		return err
	}
	s.log.Info("category deleted", zap.String("id", id), zap.Int("reparented", len(moved)))
	return nil
}

// prepare 校验事业部和上级，返回当前全部分类
func (s *CategoryService) prepare(ctx context.Context, unitID, parentID string) ([]model.Category, error) {
	if _, err := s.units.GetByID(ctx, unitID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Validation("사업부를 찾을 수 없습니다: %s", unitID)
		}
		return nil, err
	}
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := taxonomy.ValidateParent(categories, unitID, parentID); err != nil {
		return nil, cycleError(err)
	}
	return categories, nil
}

// cycleError 分类成环是数据配置错误
func cycleError(err error) error {
	if errors.Is(err, taxonomy.ErrCycle) {
		return apperr.Config("카테고리 구조에 순환 참조가 있습니다")
	}
	return err
}
