package model

import "time"

// MediaType 商品媒体类型
type MediaType string

const (
	MediaTypeYoutube MediaType = "youtube"
	MediaTypeEmbed   MediaType = "embed"
	MediaTypeLink    MediaType = "link"
	MediaTypeImage   MediaType = "image"
)

// Product 商品
// 一个商品可以挂在多个事业部、多个分类 (任意层级) 下
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	// --- 归属 ---
	CategoryIDs     []string `json:"categoryIds"`
	BusinessUnitIDs []string `json:"businessUnitIds"`

	// --- 报价相关 ---
	Models       []ProductModel `json:"models"`       // 型号 (独立定价的 SKU)
	OptionGroups []OptionGroup  `json:"optionGroups"` // 叠加在型号上的选项组

	// --- 展示素材 ---
	Images        []string    `json:"images"`
	SpecImages    []string    `json:"specImages"`
	MediaItems    []MediaItem `json:"mediaItems"`
	MediaPosition string      `json:"mediaPosition,omitempty"` // top / bottom

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductModel 商品型号
type ProductModel struct {
	Name              string `json:"name"`
	Price             int64  `json:"price"`
	Description       string `json:"description,omitempty"`
	QuotationDisabled bool   `json:"quotationDisabled"` // 不参与报价，但后台仍可见可编辑
}

// OptionGroup 选项组
type OptionGroup struct {
	Name             string   `json:"name"`
	AllowMultiSelect bool     `json:"allowMultiSelect"`
	IsRequired       bool     `json:"isRequired"`
	Options          []Option `json:"options"`
}

// Option 选项
type Option struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
}

// MediaItem 媒体条目
type MediaItem struct {
	Type  MediaType `json:"type"`
	URL   string    `json:"url"`
	Title string    `json:"title,omitempty"`
}

// InBusinessUnit 商品是否属于该事业部
func (p *Product) InBusinessUnit(unitID string) bool {
	for _, id := range p.BusinessUnitIDs {
		if id == unitID {
			return true
		}
	}
	return false
}

// EnsureCollections 把 nil 集合替换为空切片，保证 JSON 输出为 []
func (p *Product) EnsureCollections() {
	if p.CategoryIDs == nil {
		p.CategoryIDs = []string{}
	}
	if p.BusinessUnitIDs == nil {
		p.BusinessUnitIDs = []string{}
	}
	if p.Models == nil {
		p.Models = []ProductModel{}
	}
	if p.OptionGroups == nil {
		p.OptionGroups = []OptionGroup{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.SpecImages == nil {
		p.SpecImages = []string{}
	}
	if p.MediaItems == nil {
		p.MediaItems = []MediaItem{}
	}
}
