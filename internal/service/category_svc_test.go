package service

import (
	"context"
	"errors"
	"testing"

	"equipmall/internal/api/dto"
	"equipmall/internal/apperr"
	"equipmall/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func categoryByID(t *testing.T, env *testEnv, id string) model.Category {
	t.Helper()
	c, err := env.categories.GetByID(context.Background(), id)
	require.NoError(t, err)
	return *c
}

func TestCategoryService_Create(t *testing.T) {
	env := newTestEnv(t)
	env.seedTaxonomy(t)

	assert.Equal(t, 0, categoryByID(t, env, "centrifugal").Order)
	assert.Equal(t, 1, categoryByID(t, env, "vacuum").Order)
	assert.Equal(t, 1, categoryByID(t, env, "multi-stage").Order)
	assert.Equal(t, "single-stage", categoryByID(t, env, "vertical").ParentID)

	// 同名冲突时追加序号
	id := env.seedCategory(t, "pumps", "", "Vacuum")
	assert.Equal(t, "vacuum-1", id)
}

func TestCategoryService_CreateRejects(t *testing.T) {
	env := newTestEnv(t)
	env.seedTaxonomy(t)
	env.seedUnit(t, "valves", "밸브 사업부")
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreateCategoryRequest
		kind error
	}{
		{"空名称", dto.CreateCategoryRequest{Name: "  ", BusinessUnitID: "pumps"}, apperr.ErrValidation},
		{"事业部不存在", dto.CreateCategoryRequest{Name: "X", BusinessUnitID: "nope"}, apperr.ErrValidation},
		{"超过三级", dto.CreateCategoryRequest{Name: "Deep", BusinessUnitID: "pumps", ParentID: "horizontal"}, apperr.ErrValidation},
		{"上级属于其他事业部", dto.CreateCategoryRequest{Name: "Gate", BusinessUnitID: "valves", ParentID: "centrifugal"}, apperr.ErrValidation},
		{"上级不存在", dto.CreateCategoryRequest{Name: "X", BusinessUnitID: "pumps", ParentID: "ghost"}, apperr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.categorySvc.Create(ctx, tt.req)
			assert.True(t, errors.Is(err, tt.kind), err)
		})
	}
}

func TestCategoryService_BulkCreate(t *testing.T) {
	env := newTestEnv(t)
	env.seedTaxonomy(t)

	created, err := env.categorySvc.BulkCreate(context.Background(), dto.BulkCreateCategoryRequest{
		Names:          []string{"Dry Vane\n\n  Liquid Ring  ", " "},
		BusinessUnitID: "pumps",
		ParentID:       "vacuum",
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "dry-vane", created[0].ID)
	assert.Equal(t, "Liquid Ring", created[1].Name)
	assert.Equal(t, 0, created[0].Order)
	assert.Equal(t, 1, created[1].Order)

	all, err := env.categories.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 8)

	_, err = env.categorySvc.BulkCreate(context.Background(), dto.BulkCreateCategoryRequest{
		Names: []string{"\n"}, BusinessUnitID: "pumps",
	})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestCategoryService_Reorder(t *testing.T) {
	env := newTestEnv(t)
	env.seedTaxonomy(t)
	ctx := context.Background()

	require.NoError(t, env.categorySvc.Reorder(ctx, []string{"vacuum", "centrifugal"}))
	assert.Equal(t, 0, categoryByID(t, env, "vacuum").Order)
	assert.Equal(t, 1, categoryByID(t, env, "centrifugal").Order)

	// 重放同一请求结果不变
	require.NoError(t, env.categorySvc.Reorder(ctx, []string{"vacuum", "centrifugal"}))
	assert.Equal(t, 0, categoryByID(t, env, "vacuum").Order)

	list, err := env.categorySvc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "펌프 사업부", list[0].BusinessUnitName)

	err = env.categorySvc.Reorder(ctx, []string{"vacuum", "ghost"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Equal(t, 0, categoryByID(t, env, "vacuum").Order)
}

func TestCategoryService_Update(t *testing.T) {
	env := newTestEnv(t)
	env.seedTaxonomy(t)
	ctx := context.Background()

	name := "Multi-Stage Pumps"
	c, err := env.categorySvc.Update(ctx, "multi-stage", dto.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Multi-Stage Pumps", c.Name)
	assert.Equal(t, "centrifugal", c.ParentID)

	// 移动到 vacuum 下，排在末尾
	parent := "vacuum"
	c, err = env.categorySvc.Update(ctx, "multi-stage", dto.UpdateCategoryRequest{ParentID: &parent})
	require.NoError(t, err)
	assert.Equal(t, "vacuum", c.ParentID)
	assert.Equal(t, 0, c.Order)

	// 移到自己的子孙下面
	child := "horizontal"
	_, err = env.categorySvc.Update(ctx, "centrifugal", dto.UpdateCategoryRequest{ParentID: &child})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	// 整棵子树移动后超过三级
	_, err = env.categorySvc.Update(ctx, "single-stage", dto.UpdateCategoryRequest{ParentID: &parent})
	require.NoError(t, err)
	_, err = env.categorySvc.Update(ctx, "vacuum", dto.UpdateCategoryRequest{ParentID: strPtr("centrifugal")})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = env.categorySvc.Update(ctx, "ghost", dto.UpdateCategoryRequest{Name: &name})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCategoryService_DeleteReparents(t *testing.T) {
	env := newTestEnv(t)
	env.seedTaxonomy(t)
	ctx := context.Background()

	require.NoError(t, env.categorySvc.Delete(ctx, "single-stage"))

	_, err := env.categories.GetByID(ctx, "single-stage")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	h := categoryByID(t, env, "horizontal")
	v := categoryByID(t, env, "vertical")
	assert.Equal(t, "centrifugal", h.ParentID)
	assert.Equal(t, "centrifugal", v.ParentID)
	// 排在 multi-stage (order 1) 之后，保持原有相对顺序
	assert.Equal(t, 2, h.Order)
	assert.Equal(t, 3, v.Order)

	tree, err := env.categorySvc.Tree(ctx, "pumps")
	require.NoError(t, err)
	require.Len(t, tree, 2)
	require.Len(t, tree[0].Children, 3)
	assert.Equal(t, "multi-stage", tree[0].Children[0].ID)

	// 叶子直接删除
	require.NoError(t, env.categorySvc.Delete(ctx, "vacuum"))
	assert.True(t, errors.Is(env.categorySvc.Delete(ctx, "vacuum"), apperr.ErrNotFound))
}

func TestCategoryService_Options(t *testing.T) {
	env := newTestEnv(t)
	env.seedTaxonomy(t)

	opts, err := env.categorySvc.Options(context.Background(), "pumps")
	require.NoError(t, err)
	require.Len(t, opts, 6)
	assert.Equal(t, "centrifugal", opts[0].Category.ID)
	assert.Equal(t, 0, opts[0].Depth)
	assert.Equal(t, "single-stage", opts[1].Category.ID)
	assert.Equal(t, 1, opts[1].Depth)
	assert.Equal(t, "horizontal", opts[2].Category.ID)
	assert.Equal(t, 2, opts[2].Depth)
	assert.Equal(t, "vacuum", opts[5].Category.ID)
}

func TestCategoryService_CycleIsConfigError(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit(t, "pumps", "펌프")
	ctx := context.Background()

	// 成环数据只可能来自手工编辑表格
	require.NoError(t, env.categories.ReplaceAll(ctx, []model.Category{
		{ID: "a", Name: "A", BusinessUnitID: "pumps", ParentID: "b"},
		{ID: "b", Name: "B", BusinessUnitID: "pumps", ParentID: "a"},
	}))
	_, err := env.categorySvc.Create(ctx, dto.CreateCategoryRequest{Name: "C", BusinessUnitID: "pumps", ParentID: "a"})
	assert.True(t, errors.Is(err, apperr.ErrConfig), err)
}

func TestCategoryService_DetachedCycleInTree(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit(t, "pumps", "펌프")
	ctx := context.Background()

	require.NoError(t, env.categories.ReplaceAll(ctx, []model.Category{
		{ID: "root", Name: "Root", BusinessUnitID: "pumps"},
		{ID: "a", Name: "A", BusinessUnitID: "pumps", ParentID: "b"},
		{ID: "b", Name: "B", BusinessUnitID: "pumps", ParentID: "a"},
	}))
	_, err := env.categorySvc.Tree(ctx, "pumps")
	assert.True(t, errors.Is(err, apperr.ErrConfig), err)
	_, err = env.categorySvc.Options(ctx, "pumps")
	assert.True(t, errors.Is(err, apperr.ErrConfig), err)
}

func TestCategoryService_OrphanSurfaced(t *testing.T) {
	env := newTestEnv(t)
	env.seedUnit(t, "pumps", "펌프")
	ctx := context.Background()

	require.NoError(t, env.categories.ReplaceAll(ctx, []model.Category{
		{ID: "root", Name: "Root", BusinessUnitID: "pumps"},
		{ID: "left-behind", Name: "Left", BusinessUnitID: "pumps", ParentID: "deleted"},
	}))
	tree, err := env.categorySvc.Tree(ctx, "pumps")
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "left-behind", tree[1].ID)
	assert.True(t, tree[1].Orphan)

	opts, err := env.categorySvc.Options(ctx, "pumps")
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	// 重新指定上级后不再是孤儿
	_, err = env.categorySvc.Update(ctx, "left-behind", dto.UpdateCategoryRequest{ParentID: strPtr("root")})
	require.NoError(t, err)
	tree, err = env.categorySvc.Tree(ctx, "pumps")
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.False(t, tree[0].Children[0].Orphan)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
