package service

import (
	"strings"
	"unicode"
)

// GenerateSlug 由标题生成 URL 安全的 slug：
// 小写后仅保留 [a-z0-9]、空白与连字符，空白段与连字符段各自折叠为单个连字符，首尾连字符去除。
// 空标题返回空串，发布前需视为非法。
func GenerateSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}
	return b.String()
}

// IsValidSlug 判断 slug 是否符合格式：非空、仅含小写字母数字与单个连字符、首尾无连字符
func IsValidSlug(slug string) bool {
	if slug == "" {
		return false
	}
	return GenerateSlug(slug) == slug
}
