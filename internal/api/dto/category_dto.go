package dto

import "equipmall/internal/model"

// ==================== 请求 DTO ====================

// CreateCategoryRequest 新建分类
type CreateCategoryRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	BusinessUnitID string `json:"businessUnitId" binding:"required"`
	ParentID       string `json:"parentId"`
}

// BulkCreateCategoryRequest 批量新建：names 每项一个名称，也可以是多行文本
type BulkCreateCategoryRequest struct {
	Names          []string `json:"names" binding:"required,min=1"`
	BusinessUnitID string   `json:"businessUnitId" binding:"required"`
	ParentID       string   `json:"parentId"`
}

// ReorderRequest 按位置重写 order
type ReorderRequest struct {
	OrderedIDs []string `json:"orderedIds" binding:"required,min=1"`
}

// UpdateCategoryRequest 改名或移动；nil 表示不修改
type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
}

// ==================== 响应 DTO ====================

// CategoryView 列表项，附带事业部名称
type CategoryView struct {
	model.Category
	BusinessUnitName string `json:"businessUnitName"`
}
