package service

import (
	"context"
	"fmt"
	"strings"

	"equipmall/internal/model"
	"equipmall/internal/repository"
	"equipmall/pkg/document"
	"equipmall/pkg/mailer"

	"go.uber.org/zap"
)

// 默认邮件标题
const (
	defaultQuotationSubject = "[견적 요청] %s - %s"
	defaultInquirySubject   = "[문의] %s"
)

// NotificationService 报价/咨询通知邮件
// 发信失败只记日志，不影响业务结果
type NotificationService struct {
	sender   mailer.Sender
	settings repository.EmailSettingsRepository
	fallback []string // 设置里没有收件人时使用 (来自 SMTP 配置)
	log      *zap.Logger
}

// NewNotificationService 创建通知服务
func NewNotificationService(sender mailer.Sender, settings repository.EmailSettingsRepository, fallback []string, log *zap.Logger) *NotificationService {
	if sender == nil {
		sender = mailer.Nop{}
	}
	return &NotificationService{sender: sender, settings: settings, fallback: fallback, log: log.Named("notify")}
}

// QuotationIssued 报价单开具通知，pdf 为空时不带附件
func (s *NotificationService) QuotationIssued(ctx context.Context, q *model.Quotation, pdf []byte) {
	settings, recipients := s.recipients(ctx)
	if len(recipients) == 0 {
		s.log.Debug("no recipients, skip quotation mail", zap.String("id", q.ID))
		return
	}

	subject := fmt.Sprintf(defaultQuotationSubject, q.Customer.Company, q.ProductName)
	if settings.QuotationSubject != "" {
		subject = settings.QuotationSubject + " " + q.ID
	}

	var b strings.Builder
	fmt.Fprintf(&b, "견적번호: %s\n", q.ID)
	fmt.Fprintf(&b, "회사명: %s\n담당자: %s\n이메일: %s\n연락처: %s\n\n", q.Customer.Company, q.Customer.Name, q.Customer.Email, q.Customer.Phone)
	fmt.Fprintf(&b, "제품: %s / %s\n", q.ProductName, q.ModelName)
	for _, o := range q.Options {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", o.Group, o.Name, document.FormatKRW(o.Price))
	}
	fmt.Fprintf(&b, "수량: %d%s\n합계: %s (부가세 포함)\n", q.Quantity, q.UnitName, document.FormatKRW(q.TotalPrice))
	if q.Customer.Message != "" {
		fmt.Fprintf(&b, "\n요청사항:\n%s\n", q.Customer.Message)
	}

	msg := &mailer.Message{
		To:       recipients,
		ReplyTo:  q.Customer.Email,
		FromName: settings.SenderName,
		Subject:  subject,
		Body:     b.String(),
	}
	if len(pdf) > 0 {
		msg.Attachments = []mailer.Attachment{{Name: q.ID + ".pdf", Data: pdf}}
	}
	s.send(ctx, msg, q.ID)

	if settings.SendToCustomer && q.Customer.Email != "" {
		copyMsg := *msg
		copyMsg.To = []string{q.Customer.Email}
		copyMsg.ReplyTo = ""
		s.send(ctx, &copyMsg, q.ID)
	}
}

// InquiryReceived 咨询通知
func (s *NotificationService) InquiryReceived(ctx context.Context, inq *model.Inquiry) {
	settings, recipients := s.recipients(ctx)
	if len(recipients) == 0 {
		s.log.Debug("no recipients, skip inquiry mail", zap.String("id", inq.ID))
		return
	}

	subject := fmt.Sprintf(defaultInquirySubject, inq.Subject)
	if settings.InquirySubject != "" {
		subject = settings.InquirySubject + " " + inq.Subject
	}
	body := fmt.Sprintf("회사명: %s\n이름: %s\n이메일: %s\n연락처: %s\n제품: %s\n\n%s\n",
		inq.Company, inq.Name, inq.Email, inq.Phone, inq.ProductID, inq.Message)

	s.send(ctx, &mailer.Message{
		To:       recipients,
		ReplyTo:  inq.Email,
		FromName: settings.SenderName,
		Subject:  strings.TrimSpace(subject),
		Body:     body,
	}, inq.ID)
}

// recipients 读取设置；读取失败时退回配置中的收件人
func (s *NotificationService) recipients(ctx context.Context) (*model.EmailSettings, []string) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.log.Warn("load email settings failed", zap.Error(err))
		settings = &model.EmailSettings{}
	}
	if len(settings.Recipients) > 0 {
		return settings, settings.Recipients
	}
	return settings, s.fallback
}

func (s *NotificationService) send(ctx context.Context, msg *mailer.Message, ref string) {
	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.Error("send mail failed", zap.String("ref", ref), zap.Strings("to", msg.To), zap.Error(err))
		return
	}
	s.log.Info("mail sent", zap.String("ref", ref), zap.Int("attachments", len(msg.Attachments)))
}
