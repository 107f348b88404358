package quote

import (
	"equipmall/internal/apperr"
	"equipmall/internal/model"
)

// GroupChoice 某个选项组中选中的选项下标
type GroupChoice struct {
	Group   int   `json:"group"`
	Options []int `json:"options"`
}

// Request 报价选择
type Request struct {
	ModelIndex int           `json:"modelIndex"`
	Choices    []GroupChoice `json:"choices"`
	Quantity   int           `json:"quantity"`
}

// Resolved 校验通过的选择快照
type Resolved struct {
	Model    model.ProductModel
	Options  []model.QuotedOption
	Quantity int
	Totals   Totals
}

// Resolve 校验选择并计算金额
// 单选组最多一个选项，必选组至少一个；任何不满足都返回面向用户的校验错误，不做默认填充
func Resolve(p *model.Product, req Request) (*Resolved, error) {
	if req.Quantity < 1 {
		return nil, apperr.Validation("수량은 1 이상이어야 합니다")
	}
	if req.Quantity > MaxQuantity {
		return nil, apperr.Validation("수량은 %d 이하로 입력해 주세요", MaxQuantity)
	}
	if req.ModelIndex < 0 || req.ModelIndex >= len(p.Models) {
		return nil, apperr.Validation("모델을 선택해 주세요")
	}
	m := p.Models[req.ModelIndex]
	if m.QuotationDisabled {
		return nil, apperr.Validation("견적이 제공되지 않는 모델입니다: %s", m.Name)
	}

	chosen := make(map[int][]int, len(req.Choices))
	for _, c := range req.Choices {
		if c.Group < 0 || c.Group >= len(p.OptionGroups) {
			return nil, apperr.Validation("존재하지 않는 옵션 그룹입니다")
		}
		chosen[c.Group] = appendUnique(chosen[c.Group], c.Options...)
	}

	picked := make([]model.Option, 0)
	snapshot := make([]model.QuotedOption, 0)
	for gi, g := range p.OptionGroups {
		sel := chosen[gi]
		if g.IsRequired && len(sel) == 0 {
			return nil, apperr.Validation("필수 옵션을 선택해 주세요: %s", g.Name)
		}
		if !g.AllowMultiSelect && len(sel) > 1 {
			return nil, apperr.Validation("하나만 선택할 수 있는 옵션입니다: %s", g.Name)
		}
		for _, oi := range sel {
			if oi < 0 || oi >= len(g.Options) {
				return nil, apperr.Validation("존재하지 않는 옵션입니다: %s", g.Name)
			}
			o := g.Options[oi]
			picked = append(picked, o)
			snapshot = append(snapshot, model.QuotedOption{Group: g.Name, Name: o.Name, Price: o.Price})
		}
	}

	totals, err := Calculate(m, picked, req.Quantity)
	if err != nil {
		return nil, err
	}
	return &Resolved{
		Model:    m,
		Options:  snapshot,
		Quantity: req.Quantity,
		Totals:   totals,
	}, nil
}

func appendUnique(dst []int, vals ...int) []int {
	for _, v := range vals {
		dup := false
		for _, d := range dst {
			if d == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}
