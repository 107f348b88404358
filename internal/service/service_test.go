package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"equipmall/internal/api/dto"
	"equipmall/internal/model"
	"equipmall/internal/repository"
	"equipmall/internal/store"
	"equipmall/pkg/document"
	"equipmall/pkg/mailer"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==================== 测试辅助 ====================

type testEnv struct {
	store      *store.JSONFileStore
	units      repository.BusinessUnitRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
	quotations repository.QuotationRepository
	insights   repository.InsightRepository
	inquiries  repository.InquiryRepository
	settings   repository.EmailSettingsRepository

	sender   *recordingSender
	renderer *fakeRenderer
	notifier *NotificationService

	unitSvc      *BusinessUnitService
	categorySvc  *CategoryService
	productSvc   *ProductService
	quotationSvc *QuotationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := store.NewJSONFileStore(filepath.Join(t.TempDir(), "db.json"))
	log := zap.NewNop()

	env := &testEnv{
		store:      s,
		units:      repository.NewBusinessUnitRepository(s),
		categories: repository.NewCategoryRepository(s),
		products:   repository.NewProductRepository(s),
		quotations: repository.NewQuotationRepository(s),
		insights:   repository.NewInsightRepository(s),
		inquiries:  repository.NewInquiryRepository(s),
		settings:   repository.NewEmailSettingsRepository(s),
		sender:     &recordingSender{},
		renderer:   &fakeRenderer{},
	}
	env.notifier = NewNotificationService(env.sender, env.settings, nil, log)
	env.unitSvc = NewBusinessUnitService(env.units, env.categories, env.products, log)
	env.categorySvc = NewCategoryService(env.categories, env.units, log)
	env.productSvc = NewProductService(env.products, env.categories, env.units, log)
	env.quotationSvc = NewQuotationService(env.quotations, env.products, env.renderer, env.notifier, QuotationOptions{}, log)
	return env
}

// seedUnit 新建事业部
func (e *testEnv) seedUnit(t *testing.T, id, name string) {
	t.Helper()
	_, err := e.unitSvc.Create(context.Background(), dto.BusinessUnitRequest{ID: id, Name: name})
	require.NoError(t, err)
}

// seedCategory 新建分类并返回 id
func (e *testEnv) seedCategory(t *testing.T, unitID, parentID, name string) string {
	t.Helper()
	c, err := e.categorySvc.Create(context.Background(), dto.CreateCategoryRequest{Name: name, BusinessUnitID: unitID, ParentID: parentID})
	require.NoError(t, err)
	return c.ID
}

// seedTaxonomy pumps 事业部：
//
//	centrifugal ── single-stage ── horizontal, vertical
//	            └─ multi-stage
//	vacuum
func (e *testEnv) seedTaxonomy(t *testing.T) {
	t.Helper()
	e.seedUnit(t, "pumps", "펌프 사업부")
	e.seedCategory(t, "pumps", "", "Centrifugal")
	e.seedCategory(t, "pumps", "", "Vacuum")
	e.seedCategory(t, "pumps", "centrifugal", "Single Stage")
	e.seedCategory(t, "pumps", "centrifugal", "Multi Stage")
	e.seedCategory(t, "pumps", "single-stage", "Horizontal")
	e.seedCategory(t, "pumps", "single-stage", "Vertical")
}

// ==================== 替身 ====================

type recordingSender struct {
	mu   sync.Mutex
	sent []*mailer.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg *mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return r.err
}

func (r *recordingSender) messages() []*mailer.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*mailer.Message(nil), r.sent...)
}

type fakeRenderer struct {
	err  error
	last *document.Quote
}

func (f *fakeRenderer) PNG(q *document.Quote) ([]byte, error) {
	f.last = q
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png"), nil
}

func (f *fakeRenderer) PDF(q *document.Quote) ([]byte, error) {
	f.last = q
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3 fake"), nil
}

// quotableProduct 两个型号 (第二个不参与报价)、一个必选单选组、一个多选组
func quotableProduct() dto.ProductRequest {
	return dto.ProductRequest{
		ID:              "cp-100",
		Name:            "CP-100 원심펌프",
		BusinessUnitIDs: []string{"pumps"},
		CategoryIDs:     []string{"horizontal"},
		Models: []model.ProductModel{
			{Name: "CP-100A", Price: 100000},
			{Name: "CP-100Z", Price: 200000, QuotationDisabled: true},
		},
		OptionGroups: []model.OptionGroup{
			{Name: "재질", IsRequired: true, Options: []model.Option{{Name: "주철", Price: 0}, {Name: "스테인리스", Price: 5000}}},
			{Name: "부속", AllowMultiSelect: true, Options: []model.Option{{Name: "키트", Price: 10000}, {Name: "커버", Price: 20000}}},
		},
	}
}
