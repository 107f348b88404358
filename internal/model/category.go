package model

import "time"

// 分类层级
const (
	LevelMajor = 1 // 대분류
	LevelMid   = 2 // 중분류
	LevelMinor = 3 // 소분류

	MaxCategoryDepth = LevelMinor
)

// Category 商品分类
// ParentID 为空表示大分类；Order 只在同一 (BusinessUnitID, ParentID) 兄弟组内有意义
type Category struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	BusinessUnitID string    `json:"businessUnitId"`
	ParentID       string    `json:"parentId"`
	Order          int       `json:"order"`
	CreatedAt      time.Time `json:"createdAt"`
}

// SameGroup 是否与另一分类处于同一兄弟组
func (c *Category) SameGroup(businessUnitID, parentID string) bool {
	return c.BusinessUnitID == businessUnitID && c.ParentID == parentID
}
