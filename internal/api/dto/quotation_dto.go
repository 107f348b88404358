package dto

import (
	"equipmall/internal/model"
	"equipmall/internal/quote"
)

// QuotePreviewRequest 试算
// ModelIndex 用指针区分"未传"与下标 0
type QuotePreviewRequest struct {
	ProductID  string              `json:"productId" binding:"required"`
	ModelIndex *int                `json:"modelIndex" binding:"required"`
	Choices    []quote.GroupChoice `json:"choices"`
	Quantity   int                 `json:"quantity" binding:"required,min=1,max=100000"`
}

// IssueQuotationRequest 开具报价单
type IssueQuotationRequest struct {
	QuotePreviewRequest
	Customer CustomerRequest `json:"customer"`
}

// CustomerRequest 客户信息
type CustomerRequest struct {
	Company string `json:"company" binding:"max=100"`
	Name    string `json:"name" binding:"required,max=50"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"max=30"`
	Message string `json:"message" binding:"max=2000"`
}

// ToModel 转换为模型
func (c CustomerRequest) ToModel() model.Customer {
	return model.Customer{Company: c.Company, Name: c.Name, Email: c.Email, Phone: c.Phone, Message: c.Message}
}

// QuotePreviewResponse 试算结果
type QuotePreviewResponse struct {
	ProductID   string               `json:"productId"`
	ProductName string               `json:"productName"`
	Model       model.ProductModel   `json:"model"`
	Options     []model.QuotedOption `json:"options"`
	Quantity    int                  `json:"quantity"`
	quote.Totals
}

// IssueQuotationResponse 开具结果；PDF 渲染失败时 Quotation 仍然已保存
type IssueQuotationResponse struct {
	Quotation  *model.Quotation `json:"quotation"`
	PreviewPNG string           `json:"previewPng,omitempty"` // base64
	PDFBase64  string           `json:"pdfBase64,omitempty"`
}
