package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// StringArray 字符串数组类型，以 JSON 文本落库
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	items, err := scanJSONStrings(value)
	if err != nil {
		return err
	}
	*s = items
	return nil
}

// Tags 有序标签集合：保持插入顺序，拒绝重复
type Tags []string

// Value 实现 driver.Valuer 接口
func (t Tags) Value() (driver.Value, error) {
	return StringArray(t).Value()
}

// Scan 实现 sql.Scanner 接口
func (t *Tags) Scan(value interface{}) error {
	items, err := scanJSONStrings(value)
	if err != nil {
		return err
	}
	*t = items
	return nil
}

// NewTags 按输入顺序构建标签集合，空白与重复项会被忽略
func NewTags(values []string) Tags {
	tags := make(Tags, 0, len(values))
	for _, value := range values {
		tags.Add(value)
	}
	return tags
}

// Contains 判断标签是否存在
func (t Tags) Contains(tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, existing := range t {
		if existing == tag {
			return true
		}
	}
	return false
}

// Add 追加标签，已存在或为空时返回 false 且集合不变
func (t *Tags) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || t.Contains(tag) {
		return false
	}
	*t = append(*t, tag)
	return true
}

// Remove 删除标签，不存在时返回 false
func (t *Tags) Remove(tag string) bool {
	tag = strings.TrimSpace(tag)
	for idx, existing := range *t {
		if existing == tag {
			*t = append((*t)[:idx:idx], (*t)[idx+1:]...)
			return true
		}
	}
	return false
}

func scanJSONStrings(value interface{}) ([]string, error) {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return []string{}, nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return []string{}, nil
	}
	if len(raw) == 0 {
		return []string{}, nil
	}
	items := make([]string, 0)
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}
