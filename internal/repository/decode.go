package repository

import (
	"strings"

	"equipmall/internal/model"
	"equipmall/internal/store"
)

// ==================== 记录 -> 模型 ====================

func decodeCategory(r store.Record) model.Category {
	f := fields(r)
	return model.Category{
		ID:             f.str("id"),
		Name:           f.str("name"),
		BusinessUnitID: f.str("businessUnitId"),
		ParentID:       f.str("parentId"),
		Order:          int(f.num("order")),
		CreatedAt:      f.when("createdAt"),
	}
}

// decodeProduct 兼容旧数据：单值 categoryId / businessUnitId 合并进数组
func decodeProduct(r store.Record) model.Product {
	f := fields(r)
	p := model.Product{
		ID:              f.str("id"),
		Name:            f.str("name"),
		Description:     f.str("description"),
		CategoryIDs:     merge(f.strs("categoryIds"), f.strs("categoryId")),
		BusinessUnitIDs: merge(f.strs("businessUnitIds"), f.strs("businessUnitId")),
		Images:          f.strs("images"),
		SpecImages:      f.strs("specImages"),
		MediaPosition:   f.str("mediaPosition"),
		CreatedAt:       f.when("createdAt"),
		UpdatedAt:       f.when("updatedAt"),
	}
	for _, m := range f.objects("models") {
		p.Models = append(p.Models, model.ProductModel{
			Name:              m.str("name"),
			Price:             m.num("price"),
			Description:       m.str("description"),
			QuotationDisabled: m.flag("quotationDisabled"),
		})
	}
	for _, g := range f.objects("optionGroups") {
		group := model.OptionGroup{
			Name:             g.str("name"),
			AllowMultiSelect: g.flag("allowMultiSelect"),
			IsRequired:       g.flag("isRequired"),
			Options:          []model.Option{},
		}
		for _, o := range g.objects("options") {
			group.Options = append(group.Options, model.Option{
				Name:        o.str("name"),
				Price:       o.num("price"),
				Description: o.str("description"),
			})
		}
		p.OptionGroups = append(p.OptionGroups, group)
	}
	for _, m := range f.objects("mediaItems") {
		p.MediaItems = append(p.MediaItems, model.MediaItem{
			Type:  model.MediaType(m.str("type")),
			URL:   m.str("url"),
			Title: m.str("title"),
		})
	}
	p.EnsureCollections()
	return p
}

func decodeBusinessUnit(r store.Record) model.BusinessUnit {
	f := fields(r)
	return model.BusinessUnit{
		ID:          f.str("id"),
		Name:        f.str("name"),
		Description: f.str("description"),
		Image:       f.str("image"),
		Order:       int(f.num("order")),
		CreatedAt:   f.when("createdAt"),
	}
}

func decodeInsight(r store.Record) model.Insight {
	f := fields(r)
	return model.Insight{
		ID:        f.str("id"),
		Title:     f.str("title"),
		Summary:   f.str("summary"),
		Content:   f.str("content"),
		Image:     f.str("image"),
		Link:      f.str("link"),
		Order:     int(f.num("order")),
		CreatedAt: f.when("createdAt"),
	}
}

func decodeInquiry(r store.Record) model.Inquiry {
	f := fields(r)
	return model.Inquiry{
		ID:        f.str("id"),
		Company:   f.str("company"),
		Name:      f.str("name"),
		Email:     f.str("email"),
		Phone:     f.str("phone"),
		Subject:   f.str("subject"),
		Message:   f.str("message"),
		ProductID: f.str("productId"),
		CreatedAt: f.when("createdAt"),
	}
}

// decodeQuotation 客户信息可能是嵌套对象，也可能是表格里的平铺列
func decodeQuotation(r store.Record) model.Quotation {
	f := fields(r)
	c := f.object("customer")
	q := model.Quotation{
		ID:        f.str("id"),
		CreatedAt: f.when("createdAt"),
		Customer: model.Customer{
			Company: first(c.str("company"), f.str("company")),
			Name:    first(c.str("name"), f.str("customerName")),
			Email:   first(c.str("email"), f.str("email")),
			Phone:   first(c.str("phone"), f.str("phone")),
			Message: first(c.str("message"), f.str("message")),
		},
		ProductID:   f.str("productId"),
		ProductName: f.str("productName"),
		ModelName:   f.str("modelName"),
		ModelPrice:  f.num("modelPrice"),
		Options:     []model.QuotedOption{},
		Quantity:    int(f.num("quantity")),
		UnitPrice:   f.num("unitPrice"),
		LineTotal:   f.num("lineTotal"),
		VAT:         f.num("vat"),
		TotalPrice:  f.num("totalPrice"),
		UnitName:    f.str("unitName"),
	}
	for _, o := range f.objects("options") {
		q.Options = append(q.Options, model.QuotedOption{
			Group: o.str("group"),
			Name:  o.str("name"),
			Price: o.num("price"),
		})
	}
	return q
}

func decodeEmailSettings(r store.Record) model.EmailSettings {
	f := fields(r)
	return model.EmailSettings{
		ID:               f.str("id"),
		Recipients:       splitAddresses(f.strs("recipients")),
		SenderName:       f.str("senderName"),
		QuotationSubject: f.str("quotationSubject"),
		InquirySubject:   f.str("inquirySubject"),
		SendToCustomer:   f.flag("sendToCustomer"),
	}
}

// splitAddresses 表格里常写成 "a@x.com, b@x.com"
func splitAddresses(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		for _, a := range strings.Split(it, ",") {
			if a = strings.TrimSpace(a); a != "" {
				out = append(out, a)
			}
		}
	}
	return out
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
