// Package taxonomy 事业部内三级分类 (대분류/중분류/소분류) 的建树、筛选与排序
package taxonomy

import (
	"errors"
	"fmt"
	"sort"

	"equipmall/internal/model"
)

// ErrCycle 分类父链成环，属于数据配置错误
var ErrCycle = errors.New("taxonomy: category cycle")

// Node 分类树节点
// Orphan 表示上级 id 在本事业部中不存在，节点被提升到顶层，等待管理员重新指定上级
type Node struct {
	model.Category
	Children []*Node `json:"children"`
	Orphan   bool    `json:"orphan,omitempty"`
}

// Option 下拉框用的扁平分类，Depth 从 0 开始
type Option struct {
	Category model.Category `json:"category"`
	Depth    int            `json:"depth"`
}

// BuildTree 以 parentID 为根构建子树 ("" 为顶层)
// 兄弟节点按 Order 稳定排序；发现某节点是自己的祖先时返回 ErrCycle
func BuildTree(categories []model.Category, parentID string) ([]*Node, error) {
	path := map[string]bool{}
	if parentID != "" {
		path[parentID] = true
	}
	return build(categories, parentID, path)
}

// BuildUnitTree 构建某个事业部的完整分类树
// 上级不存在的分类作为 Orphan 节点排在顶层之后；每个分类都必须出现在树中，
// 从顶层和孤儿节点都走不到的分类只可能处在环上，返回 ErrCycle
func BuildUnitTree(categories []model.Category, businessUnitID string) ([]*Node, error) {
	unit := OfUnit(categories, businessUnitID)
	tree, err := BuildTree(unit, "")
	if err != nil {
		return nil, err
	}
	for _, o := range Orphans(unit) {
		children, err := build(unit, o.ID, map[string]bool{o.ID: true})
		if err != nil {
			return nil, err
		}
		tree = append(tree, &Node{Category: o, Children: children, Orphan: true})
	}

	reached := make(map[string]bool, len(unit))
	for _, c := range Flatten(tree) {
		reached[c.ID] = true
	}
	for _, c := range unit {
		if reached[c.ID] {
			continue
		}
		if _, err := Depth(unit, c.ID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %q is unreachable", ErrCycle, c.ID)
	}
	return tree, nil
}

// Orphans 上级 id 不在集合中的分类，按 Order 稳定排序
// 旧数据删除上级后会留下这种分类
func Orphans(categories []model.Category) []model.Category {
	byID := indexByID(categories)
	out := make([]model.Category, 0)
	for _, c := range categories {
		if c.ParentID == "" {
			continue
		}
		if _, ok := byID[c.ParentID]; !ok {
			out = append(out, c)
		}
	}
	SortByOrder(out)
	return out
}

func build(categories []model.Category, parentID string, path map[string]bool) ([]*Node, error) {
	siblings := ChildrenOf(categories, parentID)
	nodes := make([]*Node, 0, len(siblings))
	for _, c := range siblings {
		if path[c.ID] {
			return nil, fmt.Errorf("%w: %q is its own ancestor", ErrCycle, c.ID)
		}
		path[c.ID] = true
		children, err := build(categories, c.ID, path)
		delete(path, c.ID)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &Node{Category: c, Children: children})
	}
	return nodes, nil
}

// ChildrenOf 取 parentID 的直接子分类，按 Order 稳定排序
func ChildrenOf(categories []model.Category, parentID string) []model.Category {
	out := make([]model.Category, 0)
	for _, c := range categories {
		if c.ParentID == parentID {
			out = append(out, c)
		}
	}
	SortByOrder(out)
	return out
}

// OfUnit 过滤出某个事业部的分类，保持原顺序
func OfUnit(categories []model.Category, businessUnitID string) []model.Category {
	out := make([]model.Category, 0)
	for _, c := range categories {
		if c.BusinessUnitID == businessUnitID {
			out = append(out, c)
		}
	}
	return out
}

// SortByOrder 按 Order 升序稳定排序 (同 Order 保持原顺序)
func SortByOrder(categories []model.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Order < categories[j].Order
	})
}

// Flatten 先序遍历展开
func Flatten(nodes []*Node) []model.Category {
	out := make([]model.Category, 0)
	var walk func([]*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			out = append(out, n.Category)
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}

// FlatOptions 先序遍历某事业部分类并带上深度，用于 "选择上级分类" 下拉框
func FlatOptions(categories []model.Category, businessUnitID string) ([]Option, error) {
	tree, err := BuildUnitTree(categories, businessUnitID)
	if err != nil {
		return nil, err
	}

	out := make([]Option, 0)
	var walk func([]*Node, int)
	walk = func(ns []*Node, depth int) {
		for _, n := range ns {
			out = append(out, Option{Category: n.Category, Depth: depth})
			walk(n.Children, depth+1)
		}
	}
	walk(tree, 0)
	return out, nil
}
