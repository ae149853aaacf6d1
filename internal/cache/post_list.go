package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brandsite-api/internal/constants"
	"github.com/brandsite-api/internal/models"
)

// PublicPostPage 公开文章列表缓存条目
type PublicPostPage struct {
	Posts []models.BlogPost `json:"posts"`
	Total int64             `json:"total"`
}

// PublicPostListCache 公开文章列表缓存。
// key 中带版本号，任何文章变更只需自增版本，旧条目随 TTL 过期。
type PublicPostListCache struct {
	TTL time.Duration
}

// NewPublicPostListCache 创建公开文章列表缓存
func NewPublicPostListCache(ttl time.Duration) *PublicPostListCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &PublicPostListCache{TTL: ttl}
}

// Get 读取缓存页
func (c *PublicPostListCache) Get(ctx context.Context, tag string, page, pageSize int) (*PublicPostPage, bool, error) {
	if !Enabled() {
		return nil, false, nil
	}
	key, err := c.pageKey(ctx, tag, page, pageSize)
	if err != nil {
		return nil, false, err
	}
	var cached PublicPostPage
	hit, err := GetJSON(ctx, key, &cached)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &cached, true, nil
}

// Set 写入缓存页
func (c *PublicPostListCache) Set(ctx context.Context, tag string, page, pageSize int, value *PublicPostPage) error {
	if !Enabled() || value == nil {
		return nil
	}
	key, err := c.pageKey(ctx, tag, page, pageSize)
	if err != nil {
		return err
	}
	return SetJSON(ctx, key, value, c.TTL)
}

// Invalidate 使全部公开列表缓存失效
func (c *PublicPostListCache) Invalidate(ctx context.Context) error {
	_, err := Incr(ctx, constants.CachePublicPostsVersion)
	return err
}

func (c *PublicPostListCache) pageKey(ctx context.Context, tag string, page, pageSize int) (string, error) {
	version, err := GetInt64(ctx, constants.CachePublicPostsVersion)
	if err != nil {
		return "", err
	}
	return BuildPublicPostPageKey(version, tag, page, pageSize), nil
}

// BuildPublicPostPageKey 构建公开列表分页 key；标签区分大小写，与仓库过滤保持一致
func BuildPublicPostPageKey(version int64, tag string, page, pageSize int) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		tag = "_"
	}
	return fmt.Sprintf("posts:public:v%d:%s:%d:%d", version, tag, page, pageSize)
}
