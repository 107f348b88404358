package service

import (
	"context"
	"errors"
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

// ProductService 商品管理与前台筛选
type ProductService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	units      repository.BusinessUnitRepository
	log        *zap.Logger
	now        func() time.Time
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categories repository.CategoryRepository, units repository.BusinessUnitRepository, log *zap.Logger) *ProductService {
	return &ProductService{repo: repo, categories: categories, units: units, log: log.Named("product"), now: time.Now}
}

// List unitID 为空时返回全部
func (s *ProductService) List(ctx context.Context, unitID string) ([]model.Product, error) {
	if unitID == "" {
		return s.repo.List(ctx)
	}
	return s.repo.ListByBusinessUnit(ctx, unitID)
}

// Get 商品详情
func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("제품을 찾을 수 없습니다: %s", id)
	}
	return p, err
}

// Create 新建商品；id 为空时由名称生成
func (s *ProductService) Create(ctx context.Context, req dto.ProductRequest) (*model.Product, error) {
	p := fromRequest(req)
	if err := s.validate(ctx, p); err != nil {
		return nil, err
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		taken[e.ID] = struct{}{}
	}
	if p.ID == "" {
		p.ID = taxonomy.UniqueID(p.Name, taken)
	} else if _, dup := taken[p.ID]; dup {
		return nil, apperr.Validation("이미 존재하는 제품 ID입니다: %s", p.ID)
	}

	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("product created", zap.String("id", p.ID))
	return p, nil
}

// Update 整体覆盖 (创建时间保留)
func (s *ProductService) Update(ctx context.Context, id string, req dto.ProductRequest) (*model.Product, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p := fromRequest(req)
	p.ID = id
	if err := s.validate(ctx, p, current.CategoryIDs...); err != nil {
		return nil, err
	}
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// BulkCreate 按名称批量新建空商品
func (s *ProductService) BulkCreate(ctx context.Context, req dto.BulkCreateProductRequest) ([]model.Product, error) {
	names := make([]string, 0, len(req.Names))
	for _, n := range req.Names {
		names = append(names, bulk.Lines(n)...)
	}
	if len(names) == 0 {
		return nil, apperr.Validation("추가할 제품 이름을 입력해 주세요")
	}
	template := &model.Product{Name: names[0], BusinessUnitIDs: req.BusinessUnitIDs, CategoryIDs: req.CategoryIDs}
	template.EnsureCollections()
	if err := s.validate(ctx, template); err != nil {
		return nil, err
	}

	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(existing)+len(names))
	for _, e := range existing {
		taken[e.ID] = struct{}{}
	}

	now := s.now()
	created := make([]model.Product, 0, len(names))
	for _, name := range names {
		p := model.Product{
			ID:              taxonomy.UniqueID(name, taken),
			Name:            name,
			BusinessUnitIDs: append([]string{}, template.BusinessUnitIDs...),
			CategoryIDs:     append([]string{}, template.CategoryIDs...),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		p.EnsureCollections()
		created = append(created, p)
	}

	if err := s.repo.ReplaceAll(ctx, append(existing, created...)); err != nil {
		return nil, err
	}
	s.log.Info("products bulk created", zap.Int("count", len(created)))
	return created, nil
}

// ImportModels 追加 "名称|价格|说明" 格式的型号
func (s *ProductService) ImportModels(ctx context.Context, id, text string) (*model.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	models, err := bulk.Models(text)
	if err != nil {
		return nil, lineError(err)
	}
	if len(models) == 0 {
		return nil, apperr.Validation("추가할 모델이 없습니다")
	}
	p.Models = append(p.Models, models...)
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ImportOptions 追加一个选项组
func (s *ProductService) ImportOptions(ctx context.Context, id string, req dto.ImportOptionsRequest) (*model.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	group := strings.TrimSpace(req.Group)
	if group == "" {
		return nil, apperr.Validation("옵션 그룹 이름을 입력해 주세요")
	}
	options, err := bulk.Options(req.Text)
	if err != nil {
		return nil, lineError(err)
	}
	if len(options) == 0 {
		return nil, apperr.Validation("추가할 옵션이 없습니다")
	}
	p.OptionGroups = append(p.OptionGroups, model.OptionGroup{
		Name:             group,
		AllowMultiSelect: req.AllowMultiSelect,
		IsRequired:       req.IsRequired,
		Options:          options,
	})
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ==================== 前台 ====================

// Storefront 事业部页面：分类树、归一化后的选择、命中商品、未分类商品
type Storefront struct {
	Unit          *model.BusinessUnit `json:"unit"`
	Tree          []*taxonomy.Node    `json:"tree"`
	Selection     taxonomy.Selection  `json:"selection"`
	Products      []model.Product     `json:"products"`
	Uncategorized []model.Product     `json:"uncategorized"`
}

// Storefront 无效的选择会被修正为合法状态，而不是报错
func (s *ProductService) Storefront(ctx context.Context, unitID string, requested taxonomy.Selection) (*Storefront, error) {
	unit, err := s.units.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("사업부를 찾을 수 없습니다: %s", unitID)
		}
		return nil, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	unitCategories := taxonomy.OfUnit(categories, unitID)
	tree, err := taxonomy.BuildUnitTree(unitCategories, unitID)
	if err != nil {
		return nil, cycleError(err)
	}
	products, err := s.repo.ListByBusinessUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	sel := taxonomy.Resolve(tree, requested)
	matched := []model.Product{}
	if !sel.IsZero() {
		matched = taxonomy.MatchingProducts(products, unitCategories, sel)
	}
	return &Storefront{
		Unit:          unit,
		Tree:          tree,
		Selection:     sel,
		Products:      matched,
		Uncategorized: taxonomy.Uncategorized(products, categories, unitID),
	}, nil
}

// ==================== 私有方法 ====================

func fromRequest(req dto.ProductRequest) *model.Product {
	p := &model.Product{
		ID:              strings.TrimSpace(req.ID),
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		CategoryIDs:     req.CategoryIDs,
		BusinessUnitIDs: req.BusinessUnitIDs,
		Models:          req.Models,
		OptionGroups:    req.OptionGroups,
		Images:          req.Images,
		SpecImages:      req.SpecImages,
		MediaItems:      req.MediaItems,
		MediaPosition:   req.MediaPosition,
	}
	p.EnsureCollections()
	for i := range p.OptionGroups {
		if p.OptionGroups[i].Options == nil {
			p.OptionGroups[i].Options = []model.Option{}
		}
	}
	return p
}

// validate 名称必填；事业部、分类必须存在且分类属于所选事业部
// keep 为商品上已有的分类 id，分类被删除后留下的悬空 id 允许保留
func (s *ProductService) validate(ctx context.Context, p *model.Product, keep ...string) error {
	if p.Name == "" {
		return apperr.Validation("제품 이름을 입력해 주세요")
	}
	for _, m := range p.Models {
		if strings.TrimSpace(m.Name) == "" {
			return apperr.Validation("모델 이름을 입력해 주세요")
		}
		if m.Price < 0 {
			return apperr.Validation("가격은 0 이상이어야 합니다: %s", m.Name)
		}
	}
	for _, g := range p.OptionGroups {
		if strings.TrimSpace(g.Name) == "" {
			return apperr.Validation("옵션 그룹 이름을 입력해 주세요")
		}
		for _, o := range g.Options {
			if o.Price < 0 {
				return apperr.Validation("가격은 0 이상이어야 합니다: %s", o.Name)
			}
		}
	}
	for _, m := range p.MediaItems {
		switch m.Type {
		case model.MediaTypeYoutube, model.MediaTypeEmbed, model.MediaTypeLink, model.MediaTypeImage:
		default:
			return apperr.Validation("지원하지 않는 미디어 유형입니다: %s", m.Type)
		}
	}

	if len(p.BusinessUnitIDs) > 0 {
		units, err := s.units.List(ctx)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(units))
		for _, u := range units {
			known[u.ID] = true
		}
		for _, id := range p.BusinessUnitIDs {
			if !known[id] {
				return apperr.Validation("사업부를 찾을 수 없습니다: %s", id)
			}
		}
	}

	if len(p.CategoryIDs) > 0 {
		categories, err := s.categories.List(ctx)
		if err != nil {
			return err
		}
		byID := make(map[string]model.Category, len(categories))
		for _, c := range categories {
			byID[c.ID] = c
		}
		for _, id := range p.CategoryIDs {
			c, ok := byID[id]
			if !ok {
				if contains(keep, id) {
					continue
				}
				return apperr.Validation("카테고리를 찾을 수 없습니다: %s", id)
			}
			if len(p.BusinessUnitIDs) > 0 && !p.InBusinessUnit(c.BusinessUnitID) {
				return apperr.Validation("카테고리가 선택한 사업부에 속하지 않습니다: %s", c.Name)
			}
		}
	}
	return nil
}

func lineError(err error) error {
	var le *bulk.LineError
	if errors.As(err, &le) {
		return apperr.Validation("%d번째 줄: %s", le.Line, le.Reason)
	}
	return apperr.Validation("%s", err.Error())
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
