package taxonomy

import "equipmall/internal/model"

// ReorderGroup 拖拽排序后的本地乐观更新
// group 是某个兄弟组的新顺序：组内 Order 重写为下标，组外分类原样保留，合并后按 Order 重新排序
// 同样的输入重复执行结果相同，保存失败后可以直接重放
func ReorderGroup(all []model.Category, group []model.Category) []model.Category {
	inGroup := make(map[string]struct{}, len(group))
	for _, c := range group {
		inGroup[c.ID] = struct{}{}
	}

	out := make([]model.Category, 0, len(all))
	for _, c := range all {
		if _, ok := inGroup[c.ID]; !ok {
			out = append(out, c)
		}
	}
	for i, c := range group {
		c.Order = i
		out = append(out, c)
	}

	SortByOrder(out)
	return out
}

// ApplyOrderedIDs 持久化侧的排序：按 orderedIDs 中的位置重写 Order
// 未出现的 id 不变；返回新切片和实际被改写的分类
func ApplyOrderedIDs(all []model.Category, orderedIDs []string) ([]model.Category, []model.Category) {
	position := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		if _, seen := position[id]; !seen {
			position[id] = i
		}
	}

	out := make([]model.Category, len(all))
	changed := make([]model.Category, 0, len(orderedIDs))
	for i, c := range all {
		if pos, ok := position[c.ID]; ok {
			c.Order = pos
			changed = append(changed, c)
		}
		out[i] = c
	}
	return out, changed
}

// GroupOf 取出某兄弟组 (按 Order 排序)
func GroupOf(all []model.Category, businessUnitID, parentID string) []model.Category {
	out := make([]model.Category, 0)
	for _, c := range all {
		if c.SameGroup(businessUnitID, parentID) {
			out = append(out, c)
		}
	}
	SortByOrder(out)
	return out
}
