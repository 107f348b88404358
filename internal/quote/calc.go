// Package quote 报价计算与选项校验
package quote

import (
	"math"

	"github.com/shopspring/decimal"

	"equipmall/internal/apperr"
	"equipmall/internal/model"
)

// VATRate 부가세 10%
var VATRate = decimal.NewFromFloat(0.1)

// MaxQuantity 单张报价单的数量上限
const MaxQuantity = 100_000

var maxAmount = decimal.NewFromInt(math.MaxInt64)

// Totals 报价金额
type Totals struct {
	UnitPrice  int64 `json:"unitPrice"`
	LineTotal  int64 `json:"lineTotal"`
	VAT        int64 `json:"vat"`
	GrandTotal int64 `json:"grandTotal"`
}

// Calculate 单价 = 型号价 + 选项价之和；小计 = 单价 × 数量；税额四舍五入到整数
// 全程用 decimal 计算，任何金额超出 int64 时返回校验错误
func Calculate(m model.ProductModel, options []model.Option, quantity int) (Totals, error) {
	unit := decimal.NewFromInt(m.Price)
	for _, o := range options {
		unit = unit.Add(decimal.NewFromInt(o.Price))
	}
	line := unit.Mul(decimal.NewFromInt(int64(quantity)))
	vat := line.Mul(VATRate).Round(0)
	grand := line.Add(vat)

	for _, amount := range []decimal.Decimal{unit, line, grand} {
		if amount.Abs().GreaterThan(maxAmount) {
			return Totals{}, apperr.Validation("견적 금액이 너무 큽니다. 수량을 확인해 주세요")
		}
	}
	return Totals{
		UnitPrice:  unit.IntPart(),
		LineTotal:  line.IntPart(),
		VAT:        vat.IntPart(),
		GrandTotal: grand.IntPart(),
	}, nil
}

// QuotableModels 报价流程可选的型号 (排除 QuotationDisabled)
// 返回值保留型号在商品中的原始下标
func QuotableModels(p *model.Product) []IndexedModel {
	out := make([]IndexedModel, 0, len(p.Models))
	for i, m := range p.Models {
		if m.QuotationDisabled {
			continue
		}
		out = append(out, IndexedModel{Index: i, Model: m})
	}
	return out
}

// IndexedModel 带原始下标的型号
type IndexedModel struct {
	Index int                `json:"index"`
	Model model.ProductModel `json:"model"`
}
