package public

import "github.com/brandsite-api/internal/provider"

// Handler 公开接口处理器入口
// 说明：该处理器用于站点访客侧 API（博客阅读、联系表单、候补名单）。
type Handler struct {
	*provider.Container
}

// New 创建公开接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
