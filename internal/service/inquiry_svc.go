package service

import (
	"context"
	"strings"
	"time"

	"equipmall/internal/api/dto"
	"equipmall/internal/apperr"
	"equipmall/internal/model"
	"equipmall/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InquiryService 联系表单
type InquiryService struct {
	repo     repository.InquiryRepository
	notifier *NotificationService
	log      *zap.Logger
	now      func() time.Time
}

// NewInquiryService 创建咨询服务；notifier 可以为 nil
func NewInquiryService(repo repository.InquiryRepository, notifier *NotificationService, log *zap.Logger) *InquiryService {
	return &InquiryService{repo: repo, notifier: notifier, log: log.Named("inquiry"), now: time.Now}
}

func (s *InquiryService) List(ctx context.Context) ([]model.Inquiry, error) {
	return s.repo.List(ctx)
}

// Create 保存后发通知邮件，邮件失败不影响结果
func (s *InquiryService) Create(ctx context.Context, req dto.InquiryRequest) (*model.Inquiry, error) {
	inquiry := &model.Inquiry{
		ID:        uuid.NewString(),
		Company:   strings.TrimSpace(req.Company),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Subject:   strings.TrimSpace(req.Subject),
		Message:   strings.TrimSpace(req.Message),
		ProductID: req.ProductID,
		CreatedAt: s.now(),
	}
	if inquiry.Name == "" || inquiry.Message == "" {
		return nil, apperr.Validation("이름과 문의 내용을 입력해 주세요")
	}
	if err := validate.Var(inquiry.Email, "required,email"); err != nil {
		return nil, apperr.Validation("올바른 이메일 주소를 입력해 주세요")
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	s.log.Info("inquiry received", zap.String("id", inquiry.ID))

	if s.notifier != nil {
		s.notifier.InquiryReceived(ctx, inquiry)
	}
	return inquiry, nil
}
