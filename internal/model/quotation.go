package model

import "time"

// Customer 报价客户信息
type Customer struct {
	Company string `json:"company"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message,omitempty"`
}

// QuotedOption 报价时选中的选项快照
type QuotedOption struct {
	Group string `json:"group"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Quotation 报价单
// 开具时生成的不可变记录：商品/型号/选项均为快照，之后不再更新
type Quotation struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Customer Customer `json:"customer"`

	// --- 商品快照 ---
	ProductID   string         `json:"productId"`
	ProductName string         `json:"productName"`
	ModelName   string         `json:"modelName"`
	ModelPrice  int64          `json:"modelPrice"`
	Options     []QuotedOption `json:"options"`

	// --- 金额 ---
	Quantity   int    `json:"quantity"`
	UnitPrice  int64  `json:"unitPrice"`
	LineTotal  int64  `json:"lineTotal"`
	VAT        int64  `json:"vat"`
	TotalPrice int64  `json:"totalPrice"`
	UnitName   string `json:"unitName"` // 单位，如 "대" / "EA"
}
