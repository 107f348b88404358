package taxonomy

import "equipmall/internal/model"

// Matcher 基于分类集合回答 "哪些商品命中当前选择"
// 商品的 CategoryIDs 必须已在存储边界归一化 (旧的单值 categoryId 视为单元素集合)
type Matcher struct {
	children map[string][]string
}

// NewMatcher 建立 parentID -> 子分类 id 的索引
func NewMatcher(categories []model.Category) *Matcher {
	m := &Matcher{children: make(map[string][]string)}
	for _, c := range categories {
		if c.ParentID == "" {
			continue
		}
		m.children[c.ParentID] = append(m.children[c.ParentID], c.ID)
	}
	return m
}

// SelectionIDs 当前选择展开后的分类 id 集合
// 小类：仅自身；中类：自身 + 子类；大类：自身 + 中类 + 这些中类的小类
func (m *Matcher) SelectionIDs(s Selection) map[string]struct{} {
	ids := make(map[string]struct{})
	switch {
	case s.Minor != "":
		ids[s.Minor] = struct{}{}
	case s.Mid != "":
		ids[s.Mid] = struct{}{}
		for _, minor := range m.children[s.Mid] {
			ids[minor] = struct{}{}
		}
	case s.Major != "":
		ids[s.Major] = struct{}{}
		for _, mid := range m.children[s.Major] {
			ids[mid] = struct{}{}
			for _, minor := range m.children[mid] {
				ids[minor] = struct{}{}
			}
		}
	}
	return ids
}

// Match 商品是否命中选择
func (m *Matcher) Match(p *model.Product, s Selection) bool {
	return intersects(p.CategoryIDs, m.SelectionIDs(s))
}

// Filter 过滤命中选择的商品，保持原顺序
func (m *Matcher) Filter(products []model.Product, s Selection) []model.Product {
	ids := m.SelectionIDs(s)
	out := make([]model.Product, 0)
	for _, p := range products {
		if intersects(p.CategoryIDs, ids) {
			out = append(out, p)
		}
	}
	return out
}

// MatchingProducts 便捷函数
func MatchingProducts(products []model.Product, categories []model.Category, s Selection) []model.Product {
	return NewMatcher(categories).Filter(products, s)
}

// Uncategorized 事业部内未被分类树任何节点命中的商品
// 包括没有分类、或分类不在该事业部树内的商品；孤儿分类按顶层处理
func Uncategorized(products []model.Product, categories []model.Category, businessUnitID string) []model.Product {
	unit := OfUnit(categories, businessUnitID)
	m := NewMatcher(unit)

	covered := make(map[string]struct{})
	majors := append(ChildrenOf(unit, ""), Orphans(unit)...)
	for _, major := range majors {
		for id := range m.SelectionIDs(Selection{Major: major.ID}) {
			covered[id] = struct{}{}
		}
	}

	out := make([]model.Product, 0)
	for _, p := range products {
		if !p.InBusinessUnit(businessUnitID) {
			continue
		}
		if !intersects(p.CategoryIDs, covered) {
			out = append(out, p)
		}
	}
	return out
}

func intersects(ids []string, set map[string]struct{}) bool {
	for _, id := range ids {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
