package shared

import (
	"strings"

	"github.com/brandsite-api/internal/http/response"
	"github.com/brandsite-api/internal/service"

	"github.com/gin-gonic/gin"
)

// 鉴权中间件写入的上下文键
const (
	ContextEditorID      = "editor_id"
	ContextEditorEmail   = "editor_email"
	ContextEditorIsSuper = "editor_is_super"
)

// EditorSession 根据已通过校验的 JWT 上下文构建会话；未登录时返回匿名会话。
func EditorSession(c *gin.Context) service.SessionGuard {
	editorID := c.GetString(ContextEditorID)
	if strings.TrimSpace(editorID) == "" {
		return service.Anonymous
	}
	return service.NewEditorSession(editorID, c.GetString(ContextEditorEmail))
}

// GetEditorID 读取当前编辑 ID，缺失时直接写入 401 响应。
func GetEditorID(c *gin.Context) (string, bool) {
	editorID := strings.TrimSpace(c.GetString(ContextEditorID))
	if editorID == "" {
		RespondError(c, response.CodeUnauthorized, "authentication required", nil)
		return "", false
	}
	return editorID, true
}
