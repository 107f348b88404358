package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"equipmall/internal/api/dto"
	"equipmall/internal/apperr"
	"equipmall/internal/model"
	"equipmall/internal/quote"
	"equipmall/internal/repository"
	"equipmall/pkg/document"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QuoteRenderer 报价单渲染能力
type QuoteRenderer interface {
	PNG(q *document.Quote) ([]byte, error)
	PDF(q *document.Quote) ([]byte, error)
}

var _ QuoteRenderer = (*document.Renderer)(nil)

// QuotationOptions 报价单版面参数
type QuotationOptions struct {
	UnitName  string // 默认单位
	ValidDays int    // 有效期天数
}

// QuotationService 报价试算与开具
type QuotationService struct {
	repo     repository.QuotationRepository
	products repository.ProductRepository
	renderer QuoteRenderer
	notifier *NotificationService
	opts     QuotationOptions
	log      *zap.Logger
	now      func() time.Time
}

// NewQuotationService 创建报价服务；notifier 可以为 nil
func NewQuotationService(repo repository.QuotationRepository, products repository.ProductRepository, renderer QuoteRenderer, notifier *NotificationService, opts QuotationOptions, log *zap.Logger) *QuotationService {
	if opts.UnitName == "" {
		opts.UnitName = "대"
	}
	if opts.ValidDays <= 0 {
		opts.ValidDays = 30
	}
	return &QuotationService{
		repo:     repo,
		products: products,
		renderer: renderer,
		notifier: notifier,
		opts:     opts,
		log:      log.Named("quotation"),
		now:      time.Now,
	}
}

// Preview 只计算金额，不落库
func (s *QuotationService) Preview(ctx context.Context, req dto.QuotePreviewRequest) (*dto.QuotePreviewResponse, error) {
	p, resolved, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.QuotePreviewResponse{
		ProductID:   p.ID,
		ProductName: p.Name,
		Model:       resolved.Model,
		Options:     resolved.Options,
		Quantity:    resolved.Quantity,
		Totals:      resolved.Totals,
	}, nil
}

// Issue 开具报价单：保存 → 渲染 → 通知
// 渲染失败时返回已保存的报价单和 Render 错误，调用方可重试下载
func (s *QuotationService) Issue(ctx context.Context, req dto.IssueQuotationRequest) (*dto.IssueQuotationResponse, error) {
	customer := req.Customer.ToModel()
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.TrimSpace(customer.Email)
	if customer.Name == "" {
		return nil, apperr.Validation("담당자 이름을 입력해 주세요")
	}
	if err := validate.Var(customer.Email, "required,email"); err != nil {
		return nil, apperr.Validation("올바른 이메일 주소를 입력해 주세요")
	}

	p, resolved, err := s.resolve(ctx, req.QuotePreviewRequest)
	if err != nil {
		return nil, err
	}

	now := s.now()
	q := &model.Quotation{
		ID:          quotationID(now),
		CreatedAt:   now,
		Customer:    customer,
		ProductID:   p.ID,
		ProductName: p.Name,
		ModelName:   resolved.Model.Name,
		ModelPrice:  resolved.Model.Price,
		Options:     resolved.Options,
		Quantity:    resolved.Quantity,
		UnitPrice:   resolved.Totals.UnitPrice,
		LineTotal:   resolved.Totals.LineTotal,
		VAT:         resolved.Totals.VAT,
		TotalPrice:  resolved.Totals.GrandTotal,
		UnitName:    s.opts.UnitName,
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	s.log.Info("quotation issued",
		zap.String("id", q.ID),
		zap.String("product", q.ProductID),
		zap.Int64("total", q.TotalPrice),
	)

	resp := &dto.IssueQuotationResponse{Quotation: q}
	png, pdf, renderErr := s.render(q)
	if renderErr == nil {
		resp.PreviewPNG = base64.StdEncoding.EncodeToString(png)
		resp.PDFBase64 = base64.StdEncoding.EncodeToString(pdf)
	} else {
		s.log.Error("render quotation failed", zap.String("id", q.ID), zap.Error(renderErr))
	}

	if s.notifier != nil {
		s.notifier.QuotationIssued(ctx, q, pdf)
	}
	if renderErr != nil {
		return resp, renderErr
	}
	return resp, nil
}

func (s *QuotationService) List(ctx context.Context) ([]model.Quotation, error) {
	return s.repo.List(ctx)
}

func (s *QuotationService) Get(ctx context.Context, id string) (*model.Quotation, error) {
	q, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.NotFound("견적서를 찾을 수 없습니다: %s", id)
	}
	return q, err
}

// PDF 按已保存的快照重新渲染
func (s *QuotationService) PDF(ctx context.Context, id string) ([]byte, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.PDF(s.document(q))
	if err != nil {
		return nil, apperr.Render(err, "견적서 PDF 생성에 실패했습니다. 다시 시도해 주세요")
	}
	return data, nil
}

// ==================== 内部方法 ====================

func (s *QuotationService) resolve(ctx context.Context, req dto.QuotePreviewRequest) (*model.Product, *quote.Resolved, error) {
	p, err := s.products.GetByID(ctx, req.ProductID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil, apperr.NotFound("제품을 찾을 수 없습니다: %s", req.ProductID)
	}
	if err != nil {
		return nil, nil, err
	}
	if req.ModelIndex == nil {
		return nil, nil, apperr.Validation("모델을 선택해 주세요")
	}
	resolved, err := quote.Resolve(p, quote.Request{
		ModelIndex: *req.ModelIndex,
		Choices:    req.Choices,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return nil, nil, err
	}
	return p, resolved, nil
}

func (s *QuotationService) render(q *model.Quotation) ([]byte, []byte, error) {
	doc := s.document(q)
	png, err := s.renderer.PNG(doc)
	if err != nil {
		return nil, nil, apperr.Render(err, "견적서 이미지 생성에 실패했습니다. 다시 시도해 주세요")
	}
	pdf, err := s.renderer.PDF(doc)
	if err != nil {
		return nil, nil, apperr.Render(err, "견적서 PDF 생성에 실패했습니다. 다시 시도해 주세요")
	}
	return png, pdf, nil
}

// document 报价快照 → 版面数据
func (s *QuotationService) document(q *model.Quotation) *document.Quote {
	lines := make([]document.Line, 0, len(q.Options)+1)
	lines = append(lines, document.Line{Label: "모델", Detail: q.ModelName, Amount: q.ModelPrice})
	for _, o := range q.Options {
		lines = append(lines, document.Line{Label: o.Group, Detail: o.Name, Amount: o.Price})
	}
	unit := q.UnitName
	if unit == "" {
		unit = s.opts.UnitName
	}
	return &document.Quote{
		Number:          q.ID,
		IssuedAt:        q.CreatedAt,
		ValidUntil:      q.CreatedAt.AddDate(0, 0, s.opts.ValidDays),
		CustomerCompany: q.Customer.Company,
		CustomerName:    q.Customer.Name,
		CustomerEmail:   q.Customer.Email,
		CustomerPhone:   q.Customer.Phone,
		ProductName:     q.ProductName,
		Lines:           lines,
		Quantity:        q.Quantity,
		UnitName:        unit,
		UnitPrice:       q.UnitPrice,
		LineTotal:       q.LineTotal,
		VAT:             q.VAT,
		Total:           q.TotalPrice,
		Note:            q.Customer.Message,
	}
}

// quotationID Q-20260101-1A2B3C4D
func quotationID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "Q-" + now.Format("20060102") + "-" + suffix
}
