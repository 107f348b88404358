// Package bulk 后台批量录入文本的解析：一行一条，列之间用 | 分隔
package bulk

import (
	"fmt"
	"strconv"
	"strings"

	"equipmall/internal/model"
)

// LineError 某一行解析失败
type LineError struct {
	Line   int // 从 1 开始
	Reason string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Lines 按行切分，去掉首尾空白和空行
func Lines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Models 解析 "名称|价格|说明"，价格可带千分位逗号或 "원"
func Models(text string) ([]model.ProductModel, error) {
	rows, err := rows(text)
	if err != nil {
		return nil, err
	}
	out := make([]model.ProductModel, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.ProductModel{Name: r.name, Price: r.price, Description: r.desc})
	}
	return out, nil
}

// Options 解析选项，列格式与 Models 相同
func Options(text string) ([]model.Option, error) {
	rows, err := rows(text)
	if err != nil {
		return nil, err
	}
	out := make([]model.Option, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Option{Name: r.name, Price: r.price, Description: r.desc})
	}
	return out, nil
}

type row struct {
	name  string
	price int64
	desc  string
}

func rows(text string) ([]row, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]row, 0, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		cols := strings.SplitN(l, "|", 3)
		r := row{name: strings.TrimSpace(cols[0])}
		if r.name == "" {
			return nil, &LineError{Line: i + 1, Reason: "name is empty"}
		}
		if len(cols) > 1 {
			price, err := ParsePrice(cols[1])
			if err != nil {
				return nil, &LineError{Line: i + 1, Reason: err.Error()}
			}
			r.price = price
		}
		if len(cols) > 2 {
			r.desc = strings.TrimSpace(cols[2])
		}
		out = append(out, r)
	}
	return out, nil
}

// ParsePrice "1,200,000원" -> 1200000，空串为 0
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "원")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative price %q", s)
	}
	return v, nil
}
