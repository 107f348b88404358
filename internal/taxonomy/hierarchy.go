package taxonomy

import (
	"fmt"

	"equipmall/internal/apperr"
	"equipmall/internal/model"
)

// Depth 分类所在层级，大类为 1
// 父链指向不存在的 id 时在该处截断
func Depth(categories []model.Category, id string) (int, error) {
	byID := indexByID(categories)
	visited := make(map[string]bool)

	depth := 0
	for cur := id; cur != ""; {
		if visited[cur] {
			return 0, fmt.Errorf("%w: %q is its own ancestor", ErrCycle, cur)
		}
		visited[cur] = true

		c, ok := byID[cur]
		if !ok {
			break
		}
		depth++
		cur = c.ParentID
	}
	return depth, nil
}

// Height 以 id 为根的子树高度，叶子为 1
func Height(categories []model.Category, id string) (int, error) {
	tree, err := BuildTree(categories, id)
	if err != nil {
		return 0, err
	}
	return 1 + treeHeight(tree), nil
}

func treeHeight(nodes []*Node) int {
	h := 0
	for _, n := range nodes {
		if sub := 1 + treeHeight(n.Children); sub > h {
			h = sub
		}
	}
	return h
}

// Descendants 所有后代 id (广度优先)
func Descendants(categories []model.Category, id string) []string {
	m := NewMatcher(categories)
	seen := map[string]bool{id: true}
	out := make([]string, 0)

	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range m.children[cur] {
			if seen[child] {
				continue
			}
			seen[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

// ValidateParent 校验新建分类的上级：必须存在、同一事业部，且新分类深度不超过三级
func ValidateParent(categories []model.Category, businessUnitID, parentID string) error {
	if parentID == "" {
		return nil
	}
	parent, ok := indexByID(categories)[parentID]
	if !ok {
		return apperr.NotFound("상위 카테고리를 찾을 수 없습니다: %s", parentID)
	}
	if parent.BusinessUnitID != businessUnitID {
		return apperr.Validation("상위 카테고리가 해당 사업부에 속하지 않습니다")
	}
	depth, err := Depth(categories, parentID)
	if err != nil {
		return err
	}
	if depth+1 > model.MaxCategoryDepth {
		return apperr.Validation("카테고리는 최대 %d단계까지 가능합니다", model.MaxCategoryDepth)
	}
	return nil
}

// ValidateMove 校验把 id 移到 newParentID 下：不能成环，整棵子树移动后深度不超过三级
func ValidateMove(categories []model.Category, id, newParentID string) error {
	if newParentID == "" {
		height, err := Height(categories, id)
		if err != nil {
			return err
		}
		if height > model.MaxCategoryDepth {
			return apperr.Validation("카테고리는 최대 %d단계까지 가능합니다", model.MaxCategoryDepth)
		}
		return nil
	}
	if newParentID == id {
		return apperr.Validation("자기 자신을 상위 카테고리로 지정할 수 없습니다")
	}
	for _, d := range Descendants(categories, id) {
		if d == newParentID {
			return apperr.Validation("하위 카테고리 아래로 이동할 수 없습니다")
		}
	}

	byID := indexByID(categories)
	parent, ok := byID[newParentID]
	if !ok {
		return apperr.NotFound("상위 카테고리를 찾을 수 없습니다: %s", newParentID)
	}
	if self, ok := byID[id]; ok && self.BusinessUnitID != parent.BusinessUnitID {
		return apperr.Validation("상위 카테고리가 해당 사업부에 속하지 않습니다")
	}

	parentDepth, err := Depth(categories, newParentID)
	if err != nil {
		return err
	}
	height, err := Height(categories, id)
	if err != nil {
		return err
	}
	if parentDepth+height > model.MaxCategoryDepth {
		return apperr.Validation("카테고리는 최대 %d단계까지 가능합니다", model.MaxCategoryDepth)
	}
	return nil
}

// Reparent 删除 id 前把它的直接子分类过继给它的上级
// 子分类保持相对顺序，排在上级原有子分类之后；返回被改写的子分类
func Reparent(categories []model.Category, id string) []model.Category {
	deleted, ok := indexByID(categories)[id]
	if !ok {
		return nil
	}

	remaining := make([]model.Category, 0, len(categories))
	for _, c := range categories {
		if c.ID != id {
			remaining = append(remaining, c)
		}
	}

	order := NextOrder(remaining, deleted.BusinessUnitID, deleted.ParentID)
	moved := make([]model.Category, 0)
	for _, c := range GroupOf(categories, deleted.BusinessUnitID, id) {
		c.ParentID = deleted.ParentID
		c.Order = order
		order++
		moved = append(moved, c)
	}
	return moved
}

func indexByID(categories []model.Category) map[string]model.Category {
	out := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		out[c.ID] = c
	}
	return out
}
