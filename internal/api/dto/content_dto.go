package dto

// BusinessUnitRequest 新建/更新事业部
type BusinessUnitRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Order       *int   `json:"order,omitempty"`
}

// InsightRequest 新建/更新资讯
type InsightRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	Image   string `json:"image"`
	Link    string `json:"link" binding:"omitempty,url"`
}

// InquiryRequest 联系表单
type InquiryRequest struct {
	Company   string `json:"company" binding:"max=100"`
	Name      string `json:"name" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"max=30"`
	Subject   string `json:"subject" binding:"max=200"`
	Message   string `json:"message" binding:"required,max=5000"`
	ProductID string `json:"productId"`
}

// EmailSettingsRequest 通知设置
type EmailSettingsRequest struct {
	Recipients       []string `json:"recipients" binding:"dive,email"`
	SenderName       string   `json:"senderName"`
	QuotationSubject string   `json:"quotationSubject"`
	InquirySubject   string   `json:"inquirySubject"`
	SendToCustomer   bool     `json:"sendToCustomer"`
}
