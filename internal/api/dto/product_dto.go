package dto

import "equipmall/internal/model"

// ==================== 请求 DTO ====================

// ProductRequest 新建/整体更新商品
type ProductRequest struct {
	ID              string               `json:"id"`
	Name            string               `json:"name" binding:"required,max=200"`
	Description     string               `json:"description"`
	CategoryIDs     []string             `json:"categoryIds"`
	BusinessUnitIDs []string             `json:"businessUnitIds"`
	Models          []model.ProductModel `json:"models" binding:"dive"`
	OptionGroups    []model.OptionGroup  `json:"optionGroups"`
	Images          []string             `json:"images"`
	SpecImages      []string             `json:"specImages"`
	MediaItems      []model.MediaItem    `json:"mediaItems"`
	MediaPosition   string               `json:"mediaPosition" binding:"omitempty,oneof=top bottom"`
}

// BulkCreateProductRequest 批量新建：只有名称，型号/选项/图片为空
type BulkCreateProductRequest struct {
	Names           []string `json:"names" binding:"required,min=1"`
	BusinessUnitIDs []string `json:"businessUnitIds"`
	CategoryIDs     []string `json:"categoryIds"`
}

// ImportModelsRequest "名称|价格|说明" 多行文本
type ImportModelsRequest struct {
	Text string `json:"text" binding:"required"`
}

// ImportOptionsRequest 导入为一个新的选项组
type ImportOptionsRequest struct {
	Group            string `json:"group" binding:"required"`
	AllowMultiSelect bool   `json:"allowMultiSelect"`
	IsRequired       bool   `json:"isRequired"`
	Text             string `json:"text" binding:"required"`
}

// StorefrontQuery 前台三级筛选参数
type StorefrontQuery struct {
	Major string `form:"major"`
	Mid   string `form:"mid"`
	Minor string `form:"minor"`
}
