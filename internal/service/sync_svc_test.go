package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"equipmall/internal/apperr"
	"equipmall/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// failingBulk 某个实体整集合写入失败的存储
type failingBulk struct {
	store.Store
	entity store.Entity
}

func (f failingBulk) SyncBulk(ctx context.Context, entity store.Entity, records []store.Record) error {
	if entity == f.entity {
		return apperr.Upstream(errors.New("quota exceeded"), "bulk %s", entity)
	}
	return f.Store.SyncBulk(ctx, entity, records)
}

func TestSyncService_Migrate(t *testing.T) {
	env := newTestEnv(t)
	env.seedTaxonomy(t)
	_, err := env.productSvc.Create(context.Background(), quotableProduct())
	require.NoError(t, err)
	// 表格空白行
	require.NoError(t, env.store.SyncBulk(context.Background(), store.Insights, []store.Record{{"id": "i1", "title": "T"}, {"title": "blank"}}))

	primary := store.NewJSONFileStore(filepath.Join(t.TempDir(), "primary.json"))
	svc := NewSyncService(env.store, primary, nil, SyncNames{Local: "json", Primary: "sheets"}, zap.NewNop())

	report, err := svc.Migrate(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Succeeded())
	assert.Equal(t, "json", report.Source)
	assert.Equal(t, "sheets", report.Target)
	require.Len(t, report.Results, len(store.AllEntities))

	counts := map[string]int{}
	for _, r := range report.Results {
		counts[r.Entity] = r.Count
	}
	assert.Equal(t, 6, counts["categories"])
	assert.Equal(t, 1, counts["products"])
	assert.Equal(t, 1, counts["insights"])

	categories, err := primary.Fetch(context.Background(), store.Categories)
	require.NoError(t, err)
	assert.Len(t, categories, 6)
}

func TestSyncService_MigratePartial(t *testing.T) {
	env := newTestEnv(t)
	env.seedTaxonomy(t)

	inner := store.NewJSONFileStore(filepath.Join(t.TempDir(), "primary.json"))
	svc := NewSyncService(env.store, failingBulk{Store: inner, entity: store.Products}, nil, SyncNames{}, zap.NewNop())

	report, err := svc.Migrate(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Succeeded())
	for _, r := range report.Results {
		if r.Entity == string(store.Products) {
			assert.False(t, r.OK)
			assert.Equal(t, "bulk products", r.Error)
			continue
		}
		assert.True(t, r.OK, r.Entity)
	}

	categories, err := inner.Fetch(context.Background(), store.Categories)
	require.NoError(t, err)
	assert.Len(t, categories, 6)
}

func TestSyncService_Snapshot(t *testing.T) {
	env := newTestEnv(t)
	env.seedTaxonomy(t)
	ctx := context.Background()

	none := NewSyncService(nil, env.store, nil, SyncNames{}, zap.NewNop())
	_, err := none.Snapshot(ctx)
	assert.True(t, errors.Is(err, apperr.ErrConfig))
	_, err = none.Migrate(ctx)
	assert.True(t, errors.Is(err, apperr.ErrConfig))

	snap := store.NewJSONFileStore(filepath.Join(t.TempDir(), "snapshot.json"))
	svc := NewSyncService(nil, env.store, snap, SyncNames{Primary: "json", Snapshot: "snapshot"}, zap.NewNop())
	assert.True(t, svc.LastSnapshot().IsZero())

	report, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.True(t, report.Succeeded())
	assert.False(t, svc.LastSnapshot().IsZero())

	units, err := snap.Fetch(ctx, store.BusinessUnits)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "pumps", units[0].ID())
}
