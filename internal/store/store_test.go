package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"equipmall/internal/apperr"
	"equipmall/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== 通用行为 ====================

func names(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, fmt.Sprint(r["name"]))
	}
	return out
}

func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()

	list, err := s.Fetch(ctx, Categories)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.SyncCreate(ctx, Categories, Record{"id": "a", "name": "펌프"}))
	require.NoError(t, s.SyncCreate(ctx, Categories, Record{"id": "b", "name": "밸브"}))

	err = s.SyncCreate(ctx, Categories, Record{"id": "a", "name": "중복"})
	assert.True(t, errors.Is(err, apperr.ErrValidation), err)

	list, err = s.Fetch(ctx, Categories)
	require.NoError(t, err)
	assert.Equal(t, []string{"펌프", "밸브"}, names(list))

	require.NoError(t, s.SyncUpdate(ctx, Categories, Record{"id": "a", "name": "펌프2"}))
	err = s.SyncUpdate(ctx, Categories, Record{"id": "zz", "name": "없음"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound), err)

	require.NoError(t, s.SyncDelete(ctx, Categories, "b"))
	err = s.SyncDelete(ctx, Categories, "b")
	assert.True(t, errors.Is(err, apperr.ErrNotFound), err)

	list, err = s.Fetch(ctx, Categories)
	require.NoError(t, err)
	assert.Equal(t, []string{"펌프2"}, names(list))

	// 其他实体不受影响
	list, err = s.Fetch(ctx, Insights)
	require.NoError(t, err)
	assert.Empty(t, list)

	bulk := []Record{{"id": "x", "name": "X"}, {"id": "y", "name": "Y"}, {"id": "z", "name": "Z"}}
	require.NoError(t, s.SyncBulk(ctx, Categories, bulk))
	list, err = s.Fetch(ctx, Categories)
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y", "Z"}, names(list))

	require.NoError(t, s.SyncBulk(ctx, Categories, nil))
	list, err = s.Fetch(ctx, Categories)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestJSONFileStore_Contract(t *testing.T) {
	runStoreContract(t, NewJSONFileStore(filepath.Join(t.TempDir(), "data", "db.json")))
}

func setupGormStore(t *testing.T) *GormStore {
	db, err := database.InitDB(database.Config{Driver: "sqlite", DSN: ":memory:"}, &RecordRow{})
	require.NoError(t, err)
	return NewGormStore(db)
}

func TestGormStore_Contract(t *testing.T) {
	runStoreContract(t, setupGormStore(t))
}

// ==================== JSONFileStore ====================

func TestJSONFileStore_NestsProductsUnderFirstUnit(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.json")
	s := NewJSONFileStore(path)

	require.NoError(t, s.SyncCreate(ctx, BusinessUnits, Record{"id": "u1", "name": "산업설비"}))
	require.NoError(t, s.SyncCreate(ctx, Products, Record{"id": "p1", "name": "펌프A", "businessUnitIds": []string{"u1", "u2"}}))
	require.NoError(t, s.SyncCreate(ctx, Products, Record{"id": "p2", "name": "미분류"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw struct {
		BusinessUnits []struct {
			ID       string           `json:"id"`
			Products []map[string]any `json:"products"`
		} `json:"businessUnits"`
		Products []map[string]any `json:"products"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw.BusinessUnits, 1)
	require.Len(t, raw.BusinessUnits[0].Products, 1)
	assert.Equal(t, "p1", raw.BusinessUnits[0].Products[0]["id"])
	require.Len(t, raw.Products, 1)
	assert.Equal(t, "p2", raw.Products[0]["id"])

	units, err := s.Fetch(ctx, BusinessUnits)
	require.NoError(t, err)
	_, nested := units[0]["products"]
	assert.False(t, nested)

	products, err := s.Fetch(ctx, Products)
	require.NoError(t, err)
	assert.Equal(t, []string{"펌프A", "미분류"}, names(products))
}

func TestJSONFileStore_LegacyNestedProducts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	legacy := `{
  "businessUnits": [{"id": "u1", "name": "A", "products": [{"id": "p1", "name": "구형"}]}],
  "siteTitle": "keep me"
}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))
	s := NewJSONFileStore(path)
	ctx := context.Background()

	products, err := s.Fetch(ctx, Products)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, []any{"u1"}, products[0]["businessUnitIds"])

	// 写入后保留未知字段
	require.NoError(t, s.SyncCreate(ctx, Insights, Record{"id": "i1", "name": "뉴스"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"siteTitle": "keep me"`)
}

func TestJSONFileStore_ConcurrentWriters(t *testing.T) {
	s := NewJSONFileStore(filepath.Join(t.TempDir(), "db.json"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, s.SyncCreate(ctx, Inquiries, Record{"id": fmt.Sprintf("q%d", i), "name": "x"}))
		}(i)
	}
	wg.Wait()

	list, err := s.Fetch(ctx, Inquiries)
	require.NoError(t, err)
	assert.Len(t, list, 20)
}

func TestJSONFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewJSONFileStore(path).Fetch(context.Background(), Categories)
	assert.Error(t, err)
}

// ==================== SheetStore ====================

type fakeBridge struct {
	rows    map[string][]map[string]any
	synced  []string
	failErr error
}

func (f *fakeBridge) Fetch(_ context.Context, sheet string) ([]map[string]any, error) {
	if f.failErr != nil {
		return nil, f.failErr
	}
	return f.rows[sheet], nil
}

func (f *fakeBridge) Sync(_ context.Context, sheet, action string, _ any) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.synced = append(f.synced, sheet+":"+action)
	return nil
}

func TestSheetStore(t *testing.T) {
	ctx := context.Background()
	bridge := &fakeBridge{rows: map[string][]map[string]any{
		"categories": {{"id": "a", "name": "펌프"}},
	}}
	s := NewSheetStore(bridge)

	list, err := s.Fetch(ctx, Categories)
	require.NoError(t, err)
	assert.Equal(t, []string{"펌프"}, names(list))

	require.NoError(t, s.SyncCreate(ctx, Categories, Record{"id": "b"}))
	require.NoError(t, s.SyncDelete(ctx, Categories, "b"))
	require.NoError(t, s.SyncBulk(ctx, Categories, []Record{{"id": "a"}}))
	assert.Equal(t, []string{"categories:create", "categories:delete", "categories:bulk"}, bridge.synced)

	bridge.failErr = errors.New("timeout")
	_, err = s.Fetch(ctx, Categories)
	assert.True(t, errors.Is(err, apperr.ErrUpstream))
	err = s.SyncUpdate(ctx, Categories, Record{"id": "a"})
	assert.True(t, errors.Is(err, apperr.ErrUpstream))
}

// ==================== FallbackStore ====================

type brokenStore struct{}

var errBroken = apperr.Upstream(errors.New("down"), "broken")

func (brokenStore) Fetch(context.Context, Entity) ([]Record, error) { return nil, errBroken }
func (brokenStore) SyncCreate(context.Context, Entity, Record) error { return errBroken }
func (brokenStore) SyncUpdate(context.Context, Entity, Record) error { return errBroken }
func (brokenStore) SyncDelete(context.Context, Entity, string) error { return errBroken }
func (brokenStore) SyncBulk(context.Context, Entity, []Record) error { return errBroken }

func TestFallbackStore_ReadsSecondaryWhenPrimaryDown(t *testing.T) {
	ctx := context.Background()
	local := NewJSONFileStore(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, local.SyncCreate(ctx, Categories, Record{"id": "a", "name": "펌프"}))

	s := NewFallbackStore(brokenStore{}, local, nil)
	list, err := s.Fetch(ctx, Categories)
	require.NoError(t, err)
	assert.Equal(t, []string{"펌프"}, names(list))

	// 写操作不会静默落到后备存储
	err = s.SyncCreate(ctx, Categories, Record{"id": "b", "name": "밸브"})
	assert.True(t, errors.Is(err, apperr.ErrUpstream))
	list, _ = local.Fetch(ctx, Categories)
	assert.Len(t, list, 1)
}

func TestFallbackStore_MirrorsWrites(t *testing.T) {
	ctx := context.Background()
	primary := setupGormStore(t)
	local := NewJSONFileStore(filepath.Join(t.TempDir(), "db.json"))
	s := NewFallbackStore(primary, local, nil)

	// 后备里已经有旧版本
	require.NoError(t, local.SyncCreate(ctx, Categories, Record{"id": "a", "name": "old"}))

	require.NoError(t, s.SyncCreate(ctx, Categories, Record{"id": "a", "name": "펌프"}))
	require.NoError(t, s.SyncCreate(ctx, Categories, Record{"id": "b", "name": "밸브"}))
	require.NoError(t, s.SyncDelete(ctx, Categories, "b"))

	// 后备里没有的记录更新时补建
	require.NoError(t, primary.SyncCreate(ctx, Categories, Record{"id": "c", "name": "c"}))
	require.NoError(t, s.SyncUpdate(ctx, Categories, Record{"id": "c", "name": "필터"}))

	list, err := local.Fetch(ctx, Categories)
	require.NoError(t, err)
	assert.Equal(t, []string{"펌프", "필터"}, names(list))
}

// ==================== CachedStore ====================

type countingStore struct {
	Store
	fetches int
}

func (c *countingStore) Fetch(ctx context.Context, e Entity) ([]Record, error) {
	c.fetches++
	return c.Store.Fetch(ctx, e)
}

func TestCachedStore(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewJSONFileStore(filepath.Join(t.TempDir(), "db.json"))}
	s := NewCachedStore(inner, NewMemoryCache(), time.Minute, nil)

	require.NoError(t, s.SyncCreate(ctx, Categories, Record{"id": "a", "name": "펌프"}))
	_, err := s.Fetch(ctx, Categories)
	require.NoError(t, err)
	list, err := s.Fetch(ctx, Categories)
	require.NoError(t, err)
	assert.Equal(t, []string{"펌프"}, names(list))
	assert.Equal(t, 1, inner.fetches)

	// 写入后失效
	require.NoError(t, s.SyncUpdate(ctx, Categories, Record{"id": "a", "name": "밸브"}))
	list, err = s.Fetch(ctx, Categories)
	require.NoError(t, err)
	assert.Equal(t, []string{"밸브"}, names(list))
	assert.Equal(t, 2, inner.fetches)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
}
