package service

import (
	"context"
	"errors"
	"testing"

	"equipmall/internal/api/dto"
	"equipmall/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBusinessUnitService_CRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, err := env.unitSvc.Create(ctx, dto.BusinessUnitRequest{Name: "Pump Division"})
	require.NoError(t, err)
	assert.Equal(t, "pump-division", a.ID)
	assert.Equal(t, 0, a.Order)

	b, err := env.unitSvc.Create(ctx, dto.BusinessUnitRequest{ID: "valves", Name: "밸브"})
	require.NoError(t, err)
	assert.Equal(t, 1, b.Order)

	_, err = env.unitSvc.Create(ctx, dto.BusinessUnitRequest{ID: "valves", Name: "중복"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	top := -1
	_, err = env.unitSvc.Update(ctx, "valves", dto.BusinessUnitRequest{Name: "밸브 사업부", Order: &top})
	require.NoError(t, err)
	units, err := env.unitSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "valves", units[0].ID)
	assert.Equal(t, "밸브 사업부", units[0].Name)

	_, err = env.unitSvc.Update(ctx, "ghost", dto.BusinessUnitRequest{Name: "x"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestBusinessUnitService_DeleteInUse(t *testing.T) {
	env := newTestEnv(t)
	env.seedTaxonomy(t)
	env.seedUnit(t, "valves", "밸브")
	ctx := context.Background()

	err := env.unitSvc.Delete(ctx, "pumps")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = env.productSvc.Create(ctx, dto.ProductRequest{ID: "gv", Name: "Gate Valve", BusinessUnitIDs: []string{"valves"}})
	require.NoError(t, err)
	err = env.unitSvc.Delete(ctx, "valves")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	require.NoError(t, env.productSvc.Delete(ctx, "gv"))
	require.NoError(t, env.unitSvc.Delete(ctx, "valves"))
	assert.True(t, errors.Is(env.unitSvc.Delete(ctx, "valves"), apperr.ErrNotFound))
}

func TestInsightService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInsightService(env.insights, zap.NewNop())
	ctx := context.Background()

	a, err := svc.Create(ctx, dto.InsightRequest{Title: "펌프 선정 가이드"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, dto.InsightRequest{Title: "유지보수 체크리스트"})
	require.NoError(t, err)
	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, b.Order)

	require.NoError(t, svc.Reorder(ctx, []string{b.ID, a.ID}))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)

	assert.True(t, errors.Is(svc.Reorder(ctx, []string{"ghost"}), apperr.ErrNotFound))

	updated, err := svc.Update(ctx, a.ID, dto.InsightRequest{Title: "펌프 선정 가이드 (개정)", Link: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Order)

	_, err = svc.Create(ctx, dto.InsightRequest{Title: " "})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, a.ID), apperr.ErrNotFound))
}

func TestInquiryService(t *testing.T) {
	env := newTestEnv(t)
	notifier := NewNotificationService(env.sender, env.settings, []string{"ops@example.com"}, zap.NewNop())
	svc := NewInquiryService(env.inquiries, notifier, zap.NewNop())
	ctx := context.Background()

	inq, err := svc.Create(ctx, dto.InquiryRequest{
		Company: "한빛산업",
		Name:    " 김담당 ",
		Email:   "buyer@example.com",
		Subject: "대리점 문의",
		Message: "카탈로그 요청드립니다",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, inq.ID)
	assert.Equal(t, "김담당", inq.Name)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// 设置中没有收件人时使用配置的收件人
	msgs := env.sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"ops@example.com"}, msgs[0].To)
	assert.Equal(t, "buyer@example.com", msgs[0].ReplyTo)
	assert.Contains(t, msgs[0].Subject, "대리점 문의")

	_, err = svc.Create(ctx, dto.InquiryRequest{Name: "x", Email: "bad", Message: "m"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	_, err = svc.Create(ctx, dto.InquiryRequest{Name: "x", Email: "a@b.co"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestInquiryService_NoRecipients(t *testing.T) {
	env := newTestEnv(t)
	svc := NewInquiryService(env.inquiries, env.notifier, zap.NewNop())

	_, err := svc.Create(context.Background(), dto.InquiryRequest{Name: "x", Email: "a@b.co", Message: "m"})
	require.NoError(t, err)
	assert.Empty(t, env.sender.messages())
}

func TestSettingsService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSettingsService(env.settings)
	ctx := context.Background()

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Recipients)

	saved, err := svc.Save(ctx, dto.EmailSettingsRequest{
		Recipients:     []string{" sales@example.com ", "", "ops@example.com"},
		SenderName:     "이큅몰",
		SendToCustomer: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sales@example.com", "ops@example.com"}, saved.Recipients)

	got, err = svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "이큅몰", got.SenderName)
	assert.True(t, got.SendToCustomer)
	assert.Equal(t, []string{"sales@example.com", "ops@example.com"}, got.Recipients)

	_, err = svc.Save(ctx, dto.EmailSettingsRequest{Recipients: []string{"nope"}})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
