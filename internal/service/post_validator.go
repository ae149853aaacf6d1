package service

import (
	"net/url"
	"strings"

	"github.com/brandsite-api/internal/models"
)

// ValidateForSave 保存校验：只有缺少标题会阻止保存
func ValidateForSave(post *models.BlogPost) error {
	if post == nil || strings.TrimSpace(post.Title) == "" {
		return newValidationError([]Violation{{Field: "title", Message: "title is required"}})
	}
	return nil
}

// ValidateForPublish 发布校验，返回全部违规项；为空表示可以发布
func ValidateForPublish(post *models.BlogPost) []Violation {
	if post == nil {
		return []Violation{{Field: "title", Message: "title is required"}}
	}
	violations := make([]Violation, 0)
	if strings.TrimSpace(post.Title) == "" {
		violations = append(violations, Violation{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(post.Content) == "" {
		violations = append(violations, Violation{Field: "content", Message: "content is required to publish"})
	}
	if !IsValidSlug(post.Slug) {
		violations = append(violations, Violation{Field: "slug", Message: "slug must contain letters or digits"})
	}
	if post.ImageURL != nil && !isAbsoluteHTTPURL(*post.ImageURL) {
		violations = append(violations, Violation{Field: "image_url", Message: "image url must be an absolute http(s) url"})
	}
	return violations
}

func isAbsoluteHTTPURL(raw string) bool {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
