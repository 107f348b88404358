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
	"equipmall/internal/taxonomy"

	"go.uber.org/zap"
)

// BusinessUnitService 事业部管理
type BusinessUnitService struct {
	repo       repository.BusinessUnitRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
	log        *zap.Logger
	now        func() time.Time
}

// NewBusinessUnitService 创建事业部服务
func NewBusinessUnitService(repo repository.BusinessUnitRepository, categories repository.CategoryRepository, products repository.ProductRepository, log *zap.Logger) *BusinessUnitService {
	return &BusinessUnitService{repo: repo, categories: categories, products: products, log: log.Named("business_unit"), now: time.Now}
}

func (s *BusinessUnitService) List(ctx context.Context) ([]model.BusinessUnit, error) {
	return s.repo.List(ctx)
}

func (s *BusinessUnitService) Get(ctx context.Context, id string) (*model.BusinessUnit, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("사업부를 찾을 수 없습니다: %s", id)
	}
	return u, err
}

// Create 新建事业部；未指定 order 时排在最后
func (s *BusinessUnitService) Create(ctx context.Context, req dto.BusinessUnitRequest) (*model.BusinessUnit, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("사업부 이름을 입력해 주세요")
	}
	units, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(units))
	next := 0
	for _, u := range units {
		taken[u.ID] = struct{}{}
		if u.Order >= next {
			next = u.Order + 1
		}
	}

	unit := &model.BusinessUnit{
		ID:          strings.TrimSpace(req.ID),
		Name:        name,
		Description: req.Description,
		Image:       req.Image,
		Order:       next,
		CreatedAt:   s.now(),
	}
	if unit.ID == "" {
		unit.ID = taxonomy.UniqueID(name, taken)
	} else if _, dup := taken[unit.ID]; dup {
		return nil, apperr.Validation("이미 존재하는 사업부 ID입니다: %s", unit.ID)
	}
	if req.Order != nil {
		unit.Order = *req.Order
	}

	if err := s.repo.Create(ctx, unit); err != nil {
		return nil, err
	}
	s.log.Info("business unit created", zap.String("id", unit.ID))
	return unit, nil
}

func (s *BusinessUnitService) Update(ctx context.Context, id string, req dto.BusinessUnitRequest) (*model.BusinessUnit, error) {
	unit, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("사업부 이름을 입력해 주세요")
	}
	unit.Name = name
	unit.Description = req.Description
	unit.Image = req.Image
	if req.Order != nil {
		unit.Order = *req.Order
	}
	if err := s.repo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// Delete 仍有分类或商品挂在该事业部下时拒绝删除
func (s *BusinessUnitService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return err
	}
	if n := len(taxonomy.OfUnit(categories, id)); n > 0 {
		return apperr.Validation("사업부에 카테고리 %d개가 남아 있어 삭제할 수 없습니다", n)
	}
	products, err := s.products.ListByBusinessUnit(ctx, id)
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return apperr.Validation("사업부에 제품 %d개가 남아 있어 삭제할 수 없습니다", len(products))
	}
	return s.repo.Delete(ctx, id)
}
