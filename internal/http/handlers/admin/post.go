package admin

import (
	"strings"

	handlershared "github.com/brandsite-api/internal/http/handlers/shared"
	"github.com/brandsite-api/internal/http/response"
	"github.com/brandsite-api/internal/models"
	"github.com/brandsite-api/internal/service"

	"github.com/gin-gonic/gin"
)

var postErrorRules = []handlershared.MappedError{
	{Target: service.ErrSlugExists, Code: response.CodeConflict, Msg: "slug already exists"},
	{Target: service.ErrInvalidPostStatus, Code: response.CodeBadRequest, Msg: "invalid post status"},
}

// PostRequest 创建/更新文章请求；status 为空时保持当前状态（新文章为 draft）
type PostRequest struct {
	Title    string   `json:"title"`
	Slug     string   `json:"slug"`
	Excerpt  *string  `json:"excerpt"`
	Content  string   `json:"content"`
	ImageURL *string  `json:"image_url"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status"`
}

func (r PostRequest) toInput(id string) service.PostInput {
	return service.PostInput{
		ID:       id,
		Title:    r.Title,
		Slug:     r.Slug,
		Excerpt:  r.Excerpt,
		Content:  r.Content,
		ImageURL: r.ImageURL,
		Tags:     r.Tags,
	}
}

func parseTargetStatus(raw string) (models.PostStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	status, err := models.ParsePostStatus(raw)
	if err != nil {
		return "", service.ErrInvalidPostStatus
	}
	return status, nil
}

// GetAdminPosts 获取文章列表 (Admin)
func (h *Handler) GetAdminPosts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	posts, total, err := h.PostService.ListAdmin(c.Request.Context(), editorSession(c), service.PostQuery{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		Tag:      c.Query("tag"),
	})
	if err != nil {
		respondMappedError(c, err, postErrorRules, response.CodeInternal, "failed to load posts")
		return
	}
	response.SuccessWithPage(c, posts, response.BuildPagination(page, pageSize, total))
}

// AdminPostDetail 后台文章详情，附带编辑会话初始状态
type AdminPostDetail struct {
	*models.BlogPost
	SlugTouched bool `json:"slug_touched"`
}

// GetAdminPost 获取文章详情 (Admin)
func (h *Handler) GetAdminPost(c *gin.Context) {
	post, err := h.PostService.GetByID(c.Request.Context(), editorSession(c), c.Param("id"))
	if err != nil {
		respondMappedError(c, err, postErrorRules, response.CodeInternal, "failed to load post")
		return
	}
	response.Success(c, AdminPostDetail{
		BlogPost:    post,
		SlugTouched: h.PostService.EditorDraft(post).SlugTouched(),
	})
}

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	h.savePost(c, req, "")
}

// UpdatePost 更新文章，后写覆盖
func (h *Handler) UpdatePost(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "post id is required", nil)
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	h.savePost(c, req, id)
}

func (h *Handler) savePost(c *gin.Context, req PostRequest, id string) {
	target, err := parseTargetStatus(req.Status)
	if err != nil {
		respondMappedError(c, err, postErrorRules, response.CodeBadRequest, "invalid post status")
		return
	}
	post, err := h.PostService.CreateOrUpdate(c.Request.Context(), editorSession(c), req.toInput(id), target)
	if err != nil {
		respondMappedError(c, err, postErrorRules, response.CodeInternal, "failed to save post")
		return
	}
	response.Success(c, post)
}

// StatusRequest 状态迁移请求
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePostStatus 仅迁移文章状态（发布/归档/转草稿）
func (h *Handler) UpdatePostStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	target, err := parseTargetStatus(req.Status)
	if err != nil || target == "" {
		respondError(c, response.CodeBadRequest, "invalid post status", nil)
		return
	}
	post, err := h.PostService.Transition(c.Request.Context(), editorSession(c), c.Param("id"), target)
	if err != nil {
		respondMappedError(c, err, postErrorRules, response.CodeInternal, "failed to update post status")
		return
	}
	response.Success(c, post)
}

// DeletePost 删除文章（物理删除）
func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.PostService.Delete(c.Request.Context(), editorSession(c), c.Param("id")); err != nil {
		respondMappedError(c, err, postErrorRules, response.CodeInternal, "failed to delete post")
		return
	}
	response.Success(c, nil)
}

// SlugPreviewRequest slug 预览请求
type SlugPreviewRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	SlugTouched bool   `json:"slug_touched"`
}

// PreviewPostSlug 按编辑会话规则返回 slug
func (h *Handler) PreviewPostSlug(c *gin.Context) {
	var req SlugPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	draft := h.PostService.PreviewSlug(req.Title, req.Slug, req.SlugTouched)
	response.Success(c, gin.H{
		"slug":         draft.Slug(),
		"slug_touched": draft.SlugTouched(),
		"valid":        service.IsValidSlug(draft.Slug()),
	})
}
