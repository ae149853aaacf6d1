package public

import (
	handlershared "github.com/brandsite-api/internal/http/handlers/shared"
	"github.com/brandsite-api/internal/http/response"
	"github.com/brandsite-api/internal/service"

	"github.com/gin-gonic/gin"
)

// GetPosts 公开文章列表；后端异常时返回空列表
func (h *Handler) GetPosts(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c, h.Config.Blog.PublicPageSize)
	posts, total := h.PostService.ListPublic(c.Request.Context(), service.PostQuery{
		Page:     page,
		PageSize: pageSize,
		Tag:      c.Query("tag"),
	})
	response.SuccessWithPage(c, posts, response.BuildPagination(page, pageSize, total))
}

// GetPostBySlug 公开文章详情
func (h *Handler) GetPostBySlug(c *gin.Context) {
	post, err := h.PostService.GetPublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondMappedError(c, err, nil, response.CodeInternal, "failed to load post")
		return
	}
	response.Success(c, post)
}
