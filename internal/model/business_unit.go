package model

import "time"

// BusinessUnit 事业部 (产品线)
type BusinessUnit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Insight 资讯卡片，Order 用于手动排序
type Insight struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Link      string    `json:"link"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}

// Inquiry 联系/咨询表单，创建后不再修改
type Inquiry struct {
	ID        string    `json:"id"`
	Company   string    `json:"company"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	ProductID string    `json:"productId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
