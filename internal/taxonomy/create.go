package taxonomy

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"equipmall/internal/model"
)

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9가-힣-]`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// Slugify 名称转 id：小写、空白转连字符、去掉 [a-z0-9 한글 -] 以外的字符、合并并裁剪连字符
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// UniqueID 生成不与 taken 冲突的 id，冲突时依次追加 -1、-2 …
// slug 为空时退回随机 id；结果会写入 taken
func UniqueID(name string, taken map[string]struct{}) string {
	base := Slugify(name)
	if base == "" {
		base = uuid.NewString()
	}

	id := base
	for n := 1; ; n++ {
		if _, ok := taken[id]; !ok {
			break
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
	taken[id] = struct{}{}
	return id
}

// NextOrder 兄弟组内下一个 Order：max+1，空组为 0
func NextOrder(existing []model.Category, businessUnitID, parentID string) int {
	max := -1
	for _, c := range existing {
		if c.SameGroup(businessUnitID, parentID) && c.Order > max {
			max = c.Order
		}
	}
	return max + 1
}

// PlanBulkCreate 根据多行名称生成新分类 (不落库)
// 空行跳过，按输入顺序分配递增 Order
func PlanBulkCreate(existing []model.Category, names []string, businessUnitID, parentID string, now time.Time) []model.Category {
	taken := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		taken[c.ID] = struct{}{}
	}

	order := NextOrder(existing, businessUnitID, parentID)
	out := make([]model.Category, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		out = append(out, model.Category{
			ID:             UniqueID(name, taken),
			Name:           name,
			BusinessUnitID: businessUnitID,
			ParentID:       parentID,
			Order:          order,
			CreatedAt:      now,
		})
		order++
	}
	return out
}
