package admin

import (
	handlershared "github.com/brandsite-api/internal/http/handlers/shared"
	"github.com/brandsite-api/internal/service"

	"github.com/gin-gonic/gin"
)

func getEditorID(c *gin.Context) (string, bool) {
	return handlershared.GetEditorID(c)
}

func editorSession(c *gin.Context) service.SessionGuard {
	return handlershared.EditorSession(c)
}

func parsePagination(c *gin.Context) (int, int) {
	return handlershared.ParsePagination(c, 20)
}
