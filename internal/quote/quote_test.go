package quote

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipmall/internal/apperr"
	"equipmall/internal/model"
)

func sampleProduct() *model.Product {
	return &model.Product{
		ID:   "compressor",
		Name: "Air Compressor",
		Models: []model.ProductModel{
			{Name: "AC-100", Price: 1_000_000},
			{Name: "AC-200", Price: 2_000_000, QuotationDisabled: true},
		},
		OptionGroups: []model.OptionGroup{
			{
				Name:       "전압",
				IsRequired: true,
				Options:    []model.Option{{Name: "220V", Price: 0}, {Name: "380V", Price: 50_000}},
			},
			{
				Name:             "액세서리",
				AllowMultiSelect: true,
				Options:          []model.Option{{Name: "필터", Price: 30_000}, {Name: "호스", Price: 10_000}},
			},
		},
	}
}

func TestCalculate(t *testing.T) {
	totals, err := Calculate(
		model.ProductModel{Price: 1_000_000},
		[]model.Option{{Price: 50_000}, {Price: 30_000}},
		3,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1_080_000), totals.UnitPrice)
	assert.Equal(t, int64(3_240_000), totals.LineTotal)
	assert.Equal(t, int64(324_000), totals.VAT)
	assert.Equal(t, int64(3_564_000), totals.GrandTotal)
}

func TestCalculate_VATRounding(t *testing.T) {
	tests := []struct {
		price int64
		vat   int64
	}{
		{5, 1},
		{4, 0},
		{123, 12},
	}
	for _, tt := range tests {
		totals, err := Calculate(model.ProductModel{Price: tt.price}, nil, 1)
		require.NoError(t, err)
		assert.Equal(t, tt.vat, totals.VAT, "price %d", tt.price)
	}
}

func TestCalculate_Overflow(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		options  []model.Option
		quantity int
	}{
		{"小计溢出", 1_000_000, nil, 10_000_000_000_000},
		{"含税溢出", math.MaxInt64 / 2, nil, 2},
		{"单价溢出", math.MaxInt64, []model.Option{{Price: 1}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(model.ProductModel{Price: tt.price}, tt.options, tt.quantity)
			assert.True(t, errors.Is(err, apperr.ErrValidation), err)
		})
	}
}

func TestResolve_QuantityLimit(t *testing.T) {
	req := Request{ModelIndex: 0, Choices: []GroupChoice{{Group: 0, Options: []int{0}}}, Quantity: MaxQuantity}
	r, err := Resolve(sampleProduct(), req)
	require.NoError(t, err)
	assert.Greater(t, r.Totals.GrandTotal, int64(0))

	req.Quantity = MaxQuantity + 1
	_, err = Resolve(sampleProduct(), req)
	assert.True(t, errors.Is(err, apperr.ErrValidation), err)
}

func TestQuotableModels(t *testing.T) {
	models := QuotableModels(sampleProduct())
	require.Len(t, models, 1)
	assert.Equal(t, "AC-100", models[0].Model.Name)
	assert.Equal(t, 0, models[0].Index)
}

func TestResolve(t *testing.T) {
	p := sampleProduct()

	tests := []struct {
		name    string
		req     Request
		wantErr bool
		total   int64
	}{
		{
			name:  "必选组 + 多选组",
			req:   Request{ModelIndex: 0, Quantity: 3, Choices: []GroupChoice{{Group: 0, Options: []int{1}}, {Group: 1, Options: []int{0}}}},
			total: 3_564_000,
		},
		{
			name:    "缺少必选",
			req:     Request{ModelIndex: 0, Quantity: 1, Choices: []GroupChoice{{Group: 1, Options: []int{0}}}},
			wantErr: true,
		},
		{
			name:    "单选组选了两个",
			req:     Request{ModelIndex: 0, Quantity: 1, Choices: []GroupChoice{{Group: 0, Options: []int{0, 1}}}},
			wantErr: true,
		},
		{
			name:    "不可报价型号",
			req:     Request{ModelIndex: 1, Quantity: 1, Choices: []GroupChoice{{Group: 0, Options: []int{0}}}},
			wantErr: true,
		},
		{
			name:    "数量为 0",
			req:     Request{ModelIndex: 0, Quantity: 0},
			wantErr: true,
		},
		{
			name:    "选项越界",
			req:     Request{ModelIndex: 0, Quantity: 1, Choices: []GroupChoice{{Group: 0, Options: []int{9}}}},
			wantErr: true,
		},
		{
			name:    "选项组越界",
			req:     Request{ModelIndex: 0, Quantity: 1, Choices: []GroupChoice{{Group: 5, Options: []int{0}}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(p, tt.req)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperr.ErrValidation))
				assert.NotEmpty(t, apperr.MessageOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.total, got.Totals.GrandTotal)
			assert.Len(t, got.Options, 2)
			assert.Equal(t, "전압", got.Options[0].Group)
		})
	}
}

func TestResolve_DuplicateChoiceCountsOnce(t *testing.T) {
	p := sampleProduct()
	got, err := Resolve(p, Request{ModelIndex: 0, Quantity: 1, Choices: []GroupChoice{
		{Group: 0, Options: []int{0}},
		{Group: 1, Options: []int{1, 1}},
	}})
	require.NoError(t, err)
	assert.Equal(t, int64(1_010_000), got.Totals.UnitPrice)
}
