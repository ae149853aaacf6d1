package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/brandsite-api/internal/cache"
	"github.com/brandsite-api/internal/logger"
	"github.com/brandsite-api/internal/models"
	"github.com/brandsite-api/internal/repository"
)

// PublicPostCache 公开列表缓存，失败只记录日志不影响主流程
type PublicPostCache interface {
	Get(ctx context.Context, tag string, page, pageSize int) (*cache.PublicPostPage, bool, error)
	Set(ctx context.Context, tag string, page, pageSize int, value *cache.PublicPostPage) error
	Invalidate(ctx context.Context) error
}

// PostService 文章生命周期控制器：状态迁移与持久化字段的唯一决策方
type PostService struct {
	repo  repository.PostRepository
	cache PublicPostCache
	now   func() time.Time
}

// NewPostService 创建文章服务
func NewPostService(repo repository.PostRepository, listCache PublicPostCache) *PostService {
	return &PostService{
		repo:  repo,
		cache: listCache,
		now:   time.Now,
	}
}

// SetClock 替换时间源
func (s *PostService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// PostInput 创建/更新文章输入；ID 为空表示新建
type PostInput struct {
	ID       string
	Title    string
	Slug     string
	Excerpt  *string
	Content  string
	ImageURL *string
	Tags     []string
}

// PostQuery 列表查询条件
type PostQuery struct {
	Page     int
	PageSize int
	Status   string
	Search   string
	Tag      string
}

// CanTransition 状态迁移函数：三种状态之间可以任意迁移，未知状态一律拒绝
func CanTransition(from, to models.PostStatus) error {
	if !from.Valid() || !to.Valid() {
		return ErrInvalidPostStatus
	}
	return nil
}

// ApplyTransition 将文章迁移到目标状态。
// 进入 published 前必须通过发布校验；published_at 只在首次发布时写入。
func ApplyTransition(post *models.BlogPost, target models.PostStatus, now time.Time) error {
	from := post.Status
	if from == "" {
		from = models.PostStatusDraft
	}
	if err := CanTransition(from, target); err != nil {
		return err
	}
	if target == models.PostStatusPublished {
		if violations := ValidateForPublish(post); len(violations) > 0 {
			return newValidationError(violations)
		}
		if post.PublishedAt == nil {
			stamped := now
			post.PublishedAt = &stamped
		}
	}
	post.Status = target
	return nil
}

// CreateOrUpdate 保存文章并迁移到目标状态；target 为空时新文章为 draft，已有文章保持原状态
func (s *PostService) CreateOrUpdate(ctx context.Context, session SessionGuard, input PostInput, target models.PostStatus) (*models.BlogPost, error) {
	editor, ok := currentEditor(session)
	if !ok {
		return nil, ErrAuthRequired
	}
	if target != "" && !target.Valid() {
		return nil, ErrInvalidPostStatus
	}

	id := strings.TrimSpace(input.ID)
	isNew := id == ""
	var post *models.BlogPost
	if isNew {
		post = &models.BlogPost{
			AuthorID: editor.ID,
			Status:   models.PostStatusDraft,
		}
	} else {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, repositoryError("post_get", err)
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		post = existing
	}

	applyPostInput(post, input)
	if err := ValidateForSave(post); err != nil {
		return nil, err
	}
	if target == "" {
		target = post.Status
	}

	now := s.now()
	if err := ApplyTransition(post, target, now); err != nil {
		return nil, err
	}

	if post.Slug != "" {
		count, err := s.repo.CountBySlug(ctx, post.Slug, post.ID)
		if err != nil {
			return nil, repositoryError("post_slug_check", err)
		}
		if count > 0 {
			return nil, repositoryError("post_slug_check", ErrSlugExists)
		}
	}

	post.UpdatedAt = now
	op := "post_update"
	var err error
	if isNew {
		op = "post_create"
		post.CreatedAt = now
		err = s.repo.Create(ctx, post)
	} else {
		err = s.repo.Update(ctx, post)
	}
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = ErrSlugExists
		}
		return nil, repositoryError(op, err)
	}

	s.invalidatePublicCache(ctx)
	logger.Infow("post_saved",
		"post_id", post.ID,
		"slug", post.Slug,
		"status", post.Status,
		"editor_id", editor.ID,
		"created", isNew,
	)
	return post, nil
}

// Transition 只迁移状态，不修改内容字段
func (s *PostService) Transition(ctx context.Context, session SessionGuard, id string, target models.PostStatus) (*models.BlogPost, error) {
	editor, ok := currentEditor(session)
	if !ok {
		return nil, ErrAuthRequired
	}
	if !target.Valid() {
		return nil, ErrInvalidPostStatus
	}
	post, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, repositoryError("post_get", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	from := post.Status
	now := s.now()
	if err := ApplyTransition(post, target, now); err != nil {
		return nil, err
	}
	post.UpdatedAt = now
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, repositoryError("post_update", err)
	}
	s.invalidatePublicCache(ctx)
	logger.Infow("post_status_changed",
		"post_id", post.ID,
		"from", from,
		"to", post.Status,
		"editor_id", editor.ID,
	)
	return post, nil
}

// Delete 物理删除文章；不存在时返回 ErrNotFound
func (s *PostService) Delete(ctx context.Context, session SessionGuard, id string) error {
	editor, ok := currentEditor(session)
	if !ok {
		return ErrAuthRequired
	}
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return repositoryError("post_delete", err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.invalidatePublicCache(ctx)
	logger.Infow("post_deleted", "post_id", id, "editor_id", editor.ID)
	return nil
}

// ListAdmin 后台列表，按创建时间倒序；筛选 published 时按发布时间倒序
func (s *PostService) ListAdmin(ctx context.Context, session SessionGuard, query PostQuery) ([]models.BlogPost, int64, error) {
	if _, ok := currentEditor(session); !ok {
		return nil, 0, ErrAuthRequired
	}
	filter := repository.PostListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Search:   query.Search,
		Tag:      query.Tag,
		OrderBy:  "created_at DESC",
	}
	if strings.TrimSpace(query.Status) != "" {
		status, err := models.ParsePostStatus(query.Status)
		if err != nil {
			return nil, 0, ErrInvalidPostStatus
		}
		filter.Status = status
		if status == models.PostStatusPublished {
			filter.OrderBy = "published_at DESC, created_at DESC"
		}
	}
	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, repositoryError("post_list", err)
	}
	return posts, total, nil
}

// ListPublic 公开列表：仅 published，按发布时间倒序。
// 读取失败时降级为空列表，不阻塞页面渲染。
func (s *PostService) ListPublic(ctx context.Context, query PostQuery) ([]models.BlogPost, int64) {
	tag := strings.TrimSpace(query.Tag)
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, tag, query.Page, query.PageSize)
		if err != nil {
			logger.Warnw("post_public_cache_get_failed", "error", err)
		} else if hit {
			return cached.Posts, cached.Total
		}
	}

	posts, total, err := s.repo.List(ctx, repository.PostListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Status:   models.PostStatusPublished,
		Tag:      tag,
		OrderBy:  "published_at DESC, created_at DESC",
	})
	if err != nil {
		logger.Warnw("post_public_list_failed", "error", err)
		return []models.BlogPost{}, 0
	}

	if s.cache != nil {
		page := &cache.PublicPostPage{Posts: posts, Total: total}
		if err := s.cache.Set(ctx, tag, query.Page, query.PageSize, page); err != nil {
			logger.Warnw("post_public_cache_set_failed", "error", err)
		}
	}
	return posts, total
}

// GetByID 获取文章：编辑可见任意状态，匿名仅可见已发布
func (s *PostService) GetByID(ctx context.Context, session SessionGuard, id string) (*models.BlogPost, error) {
	post, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, repositoryError("post_get", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if _, ok := currentEditor(session); !ok && !post.IsPublished() {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetPublicBySlug 获取公开文章详情
func (s *PostService) GetPublicBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.repo.GetBySlug(ctx, strings.TrimSpace(slug), true)
	if err != nil {
		return nil, repositoryError("post_get_by_slug", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// PreviewSlug 按编辑会话规则计算 slug：客户端回传当前标题、slug 与是否手动编辑过
func (s *PostService) PreviewSlug(title, slug string, slugTouched bool) *PostDraft {
	draft := &PostDraft{}
	if slugTouched {
		draft.SetSlug(slug)
	}
	draft.SetTitle(title)
	return draft
}

// EditorDraft 以已保存文章开启编辑会话，供后台详情返回初始 slug_touched
func (s *PostService) EditorDraft(post *models.BlogPost) *PostDraft {
	if post == nil {
		return NewPostDraft("", "")
	}
	return NewPostDraft(post.Title, post.Slug)
}

func applyPostInput(post *models.BlogPost, input PostInput) {
	post.Title = strings.TrimSpace(input.Title)
	if strings.TrimSpace(input.Slug) == "" {
		post.Slug = GenerateSlug(post.Title)
	} else {
		post.Slug = GenerateSlug(input.Slug)
	}
	post.Excerpt = normalizeOptionalString(input.Excerpt)
	post.Content = input.Content
	post.ImageURL = normalizeOptionalString(input.ImageURL)
	post.Tags = models.NewTags(input.Tags)
}

func normalizeOptionalString(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *PostService) invalidatePublicCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warnw("post_public_cache_invalidate_failed", "error", err)
	}
}
