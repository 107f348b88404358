package repository

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"equipmall/internal/store"
)

// 记录归一化：所有存储后端读出的原始行都在这里转换成统一形状
//
// Sheets 一侧单元格可能是 JSON 字符串、数字字符串或者直接为空；
// 本地 JSON 文件则是原生数组/对象。模型层拿到的永远是确定的类型。

// fields 原始记录的读取视图
type fields map[string]any

func (f fields) str(key string) string { return String(f[key]) }

func (f fields) num(key string) int64 { return Int(f[key]) }

func (f fields) flag(key string) bool { return Bool(f[key]) }

func (f fields) strs(key string) []string { return StringList(f[key]) }

func (f fields) when(key string) time.Time { return Time(f[key]) }

// objects 对象数组：原生 []any 或 JSON 字符串
func (f fields) objects(key string) []fields {
	items, _ := decoded(f[key]).([]any)
	out := make([]fields, 0, len(items))
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, fields(m))
		}
	}
	return out
}

// object 单个对象，缺失时返回空视图
func (f fields) object(key string) fields {
	if m, ok := decoded(f[key]).(map[string]any); ok {
		return fields(m)
	}
	return fields{}
}

// decoded 如果是 JSON 字符串则解析一次
func decoded(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '[' && s[0] != '{') {
		return v
	}
	var out any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return v
	}
	return out
}

// StringList 把各种形状统一成 []string
// 支持 []string、[]any、JSON 数组字符串、单个字符串；空值返回 []
func StringList(v any) []string {
	out := make([]string, 0)
	switch x := decoded(v).(type) {
	case nil:
	case []string:
		for _, s := range x {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, it := range x {
			if s := String(it); s != "" {
				out = append(out, s)
			}
		}
	case string:
		if s := strings.TrimSpace(x); s != "" && s != "null" {
			out = append(out, s)
		}
	default:
		if s := String(x); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// String 标量转字符串；数字不输出科学计数法
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s := strings.TrimSpace(x)
		if s == "null" || s == "undefined" {
			return ""
		}
		return s
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// Int 数字或数字字符串 ("1,200" 也可以)，无法解析时为 0
func Int(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case int:
		return int64(x)
	case int64:
		return x
	case float64:
		return int64(math.Round(x))
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		f, _ := x.Float64()
		return int64(math.Round(f))
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(x), ",", "")
		if s == "" {
			return 0
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(math.Round(f))
		}
	}
	return 0
}

// Bool 支持 true/"TRUE"/"1"/"yes"/1
func Bool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case float64:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "1", "yes", "y", "on":
			return true
		}
	}
	return false
}

// Time RFC3339 或 "2006-01-02 15:04:05"，失败为零值
func Time(v any) time.Time {
	s := String(v)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// merge 合并后去重，保持首次出现顺序
func merge(lists ...[]string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, l := range lists {
		for _, s := range l {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// toRecord 模型编码为存储记录 (嵌套结构变为 []any / map)
func toRecord(v any) (store.Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec store.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
