package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// JSONFileStore 本地 JSON 文件存储 (Sheets 不可用时的后备)
//
// 文件结构：产品嵌套在其第一个业务单元下 (businessUnits[].products)，
// 没有业务单元的产品放在顶层 products。读取时展开为平铺列表。
// 每次调用都是整文件 读-改-写，只保证进程内单写者。
type JSONFileStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONFileStore 创建文件存储，文件不存在时视为空库
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// Path 文件路径
func (s *JSONFileStore) Path() string { return s.path }

// document 内存中的文档：产品已展开
type document struct {
	collections map[Entity][]Record
	extra       map[string]json.RawMessage // 不认识的顶层字段原样保留
}

func (s *JSONFileStore) Fetch(ctx context.Context, entity Entity) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	list := doc.collections[entity]
	out := make([]Record, 0, len(list))
	for _, r := range list {
		out = append(out, r.Clone())
	}
	return out, nil
}

func (s *JSONFileStore) SyncCreate(ctx context.Context, entity Entity, rec Record) error {
	return s.mutate(entity, func(list []Record) ([]Record, error) {
		return appendRecord(list, rec)
	})
}

func (s *JSONFileStore) SyncUpdate(ctx context.Context, entity Entity, rec Record) error {
	return s.mutate(entity, func(list []Record) ([]Record, error) {
		return replaceRecord(list, entity, rec)
	})
}

func (s *JSONFileStore) SyncDelete(ctx context.Context, entity Entity, id string) error {
	return s.mutate(entity, func(list []Record) ([]Record, error) {
		return removeRecord(list, entity, id)
	})
}

func (s *JSONFileStore) SyncBulk(ctx context.Context, entity Entity, records []Record) error {
	return s.mutate(entity, func([]Record) ([]Record, error) {
		out := make([]Record, 0, len(records))
		for _, r := range records {
			out = append(out, r.Clone())
		}
		return out, nil
	})
}

func (s *JSONFileStore) mutate(entity Entity, fn func([]Record) ([]Record, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	list, err := fn(doc.collections[entity])
	if err != nil {
		return err
	}
	doc.collections[entity] = list
	return s.save(doc)
}

// ==================== 文件读写 ====================

func (s *JSONFileStore) load() (*document, error) {
	doc := &document{collections: map[Entity][]Record{}, extra: map[string]json.RawMessage{}}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return doc, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	for key, value := range raw {
		entity := Entity(key)
		if !isEntity(entity) {
			doc.extra[key] = value
			continue
		}
		var list []Record
		if err := json.Unmarshal(value, &list); err != nil {
			return nil, fmt.Errorf("parse %s.%s: %w", s.path, key, err)
		}
		doc.collections[entity] = list
	}

	// 展开嵌套产品
	units := doc.collections[BusinessUnits]
	products := make([]Record, 0)
	for _, u := range units {
		nested, _ := u["products"].([]any)
		for _, item := range nested {
			p, ok := item.(map[string]any)
			if !ok {
				continue
			}
			rec := Record(p)
			if _, has := rec["businessUnitIds"]; !has {
				rec["businessUnitIds"] = []any{u.ID()}
			}
			products = append(products, rec)
		}
		delete(u, "products")
	}
	doc.collections[Products] = append(products, doc.collections[Products]...)
	return doc, nil
}

func (s *JSONFileStore) save(doc *document) error {
	out := make(map[string]any, len(doc.collections)+len(doc.extra))
	for k, v := range doc.extra {
		out[k] = v
	}
	for entity, list := range doc.collections {
		if entity == Products || entity == BusinessUnits {
			continue
		}
		out[string(entity)] = list
	}

	units := doc.collections[BusinessUnits]
	nested := make(map[string][]Record, len(units))
	for _, u := range units {
		nested[u.ID()] = []Record{}
	}
	loose := make([]Record, 0)
	for _, p := range doc.collections[Products] {
		if uid := firstUnitID(p); uid != "" {
			if _, ok := nested[uid]; ok {
				nested[uid] = append(nested[uid], p)
				continue
			}
		}
		loose = append(loose, p)
	}
	outUnits := make([]Record, 0, len(units))
	for _, u := range units {
		c := u.Clone()
		c["products"] = nested[u.ID()]
		outUnits = append(outUnits, c)
	}
	out[string(BusinessUnits)] = outUnits
	out[string(Products)] = loose

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	// 先写临时文件再 rename，避免写一半的文件
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}

func isEntity(e Entity) bool {
	for _, known := range AllEntities {
		if known == e {
			return true
		}
	}
	return false
}

// firstUnitID 取产品的第一个业务单元 id，兼容 []any / []string / string
func firstUnitID(p Record) string {
	switch v := p["businessUnitIds"].(type) {
	case []any:
		if len(v) > 0 && v[0] != nil {
			return fmt.Sprint(v[0])
		}
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case string:
		var ids []string
		if json.Unmarshal([]byte(v), &ids) == nil {
			if len(ids) > 0 {
				return ids[0]
			}
			return ""
		}
		return v
	}
	if v, ok := p["businessUnitId"].(string); ok {
		return v
	}
	return ""
}
