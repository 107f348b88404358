package repository

import (
	"context"
	"errors"

	"equipmall/internal/apperr"
	"equipmall/internal/model"
	"equipmall/internal/store"
)

// EmailSettingsRepository 邮件设置 (单行)
type EmailSettingsRepository interface {
	// Get 没有设置时返回零值设置，不报错
	Get(ctx context.Context) (*model.EmailSettings, error)
	Save(ctx context.Context, settings *model.EmailSettings) error
}

type emailSettingsRepo struct {
	c collection[model.EmailSettings]
}

// NewEmailSettingsRepository 创建邮件设置仓储
func NewEmailSettingsRepository(s store.Store) EmailSettingsRepository {
	return &emailSettingsRepo{c: collection[model.EmailSettings]{
		store:  s,
		entity: store.EmailSettings,
		decode: decodeEmailSettings,
		id:     func(e *model.EmailSettings) string { return e.ID },
	}}
}

func (r *emailSettingsRepo) Get(ctx context.Context) (*model.EmailSettings, error) {
	items, err := r.c.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == model.DefaultEmailSettingsID {
			return &items[i], nil
		}
	}
	// 旧数据 id 不固定，取第一行
	if len(items) > 0 {
		return &items[0], nil
	}
	return &model.EmailSettings{ID: model.DefaultEmailSettingsID, Recipients: []string{}}, nil
}

// Save 已有该行则更新，否则创建
func (r *emailSettingsRepo) Save(ctx context.Context, settings *model.EmailSettings) error {
	if settings.ID == "" {
		settings.ID = model.DefaultEmailSettingsID
	}
	_, err := r.c.get(ctx, settings.ID)
	if errors.Is(err, apperr.ErrNotFound) {
		return r.c.create(ctx, settings)
	}
	if err != nil {
		return err
	}
	return r.c.update(ctx, settings)
}
