package model

// EmailSettings 通知邮件设置 (emailSettings 表只有一行)
type EmailSettings struct {
	ID               string   `json:"id"`
	Recipients       []string `json:"recipients"`       // 报价/咨询通知收件人
	SenderName       string   `json:"senderName"`       // 发件人显示名
	QuotationSubject string   `json:"quotationSubject"` // 报价邮件标题前缀
	InquirySubject   string   `json:"inquirySubject"`
	SendToCustomer   bool     `json:"sendToCustomer"` // 报价单是否同时抄送给客户
}

// DefaultEmailSettingsID 唯一设置行的 id
const DefaultEmailSettingsID = "default"
