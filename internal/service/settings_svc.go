package service

import (
	"context"
	"strings"

	"equipmall/internal/api/dto"
	"equipmall/internal/apperr"
	"equipmall/internal/model"
	"equipmall/internal/repository"

	"github.com/go-playground/validator/v10"
)

// validate 服务层直接校验用 (gin 绑定之外的兜底)
var validate = validator.New()

// SettingsService 邮件通知设置
type SettingsService struct {
	repo repository.EmailSettingsRepository
}

// NewSettingsService 创建设置服务
func NewSettingsService(repo repository.EmailSettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

func (s *SettingsService) Get(ctx context.Context) (*model.EmailSettings, error) {
	return s.repo.Get(ctx)
}

// Save 收件人逐个校验邮箱格式
func (s *SettingsService) Save(ctx context.Context, req dto.EmailSettingsRequest) (*model.EmailSettings, error) {
	recipients := make([]string, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if err := validate.Var(r, "email"); err != nil {
			return nil, apperr.Validation("올바르지 않은 이메일 주소입니다: %s", r)
		}
		recipients = append(recipients, r)
	}
	settings := &model.EmailSettings{
		ID:               model.DefaultEmailSettingsID,
		Recipients:       recipients,
		SenderName:       strings.TrimSpace(req.SenderName),
		QuotationSubject: strings.TrimSpace(req.QuotationSubject),
		InquirySubject:   strings.TrimSpace(req.InquirySubject),
		SendToCustomer:   req.SendToCustomer,
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
