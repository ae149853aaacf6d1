package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brandsite-api/internal/authz"
	"github.com/brandsite-api/internal/cache"
	"github.com/brandsite-api/internal/config"
	adminhandlers "github.com/brandsite-api/internal/http/handlers/admin"
	publichandlers "github.com/brandsite-api/internal/http/handlers/public"
	"github.com/brandsite-api/internal/http/response"
	"github.com/brandsite-api/internal/logger"
	"github.com/brandsite-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按公开/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bs"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:editor_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts, please try again later",
	}
	contactRule := formRateLimitRule(redisPrefix, "contact", cfg.Forms.Contact,
		"please wait before sending another message")
	waitlistRule := formRateLimitRule(redisPrefix, "waitlist", cfg.Forms.Waitlist,
		"please wait before submitting again")

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/posts", publicHandler.GetPosts)
			public.GET("/posts/:slug", publicHandler.GetPostBySlug)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.GET("/forms/options", publicHandler.GetFormOptions)
			public.POST("/contact", RateLimitMiddleware(redisClient, contactRule, KeyByIP), publicHandler.SubmitContact)
			public.POST("/waitlist", RateLimitMiddleware(redisClient, waitlistRule, KeyByIP), publicHandler.JoinWaitlist)
		}

		// 编辑后台
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), adminHandler.EditorLogin)

			// 当前编辑自身信息，只需登录
			self := admin.Group("")
			self.Use(JWTAuthMiddleware(c.AuthService))
			{
				self.GET("/me", adminHandler.GetCurrentEditor)
				self.PUT("/password", adminHandler.UpdateEditorPassword)
			}

			// 需要鉴权与授权的接口
			authorized := admin.Group("")
			authorized.Use(JWTAuthMiddleware(c.AuthService), EditorRBACMiddleware(c.AuthzService))
			{
				// 文章管理
				authorized.GET("/posts", adminHandler.GetAdminPosts)
				authorized.POST("/posts", adminHandler.CreatePost)
				authorized.POST("/posts/slug", adminHandler.PreviewPostSlug)
				authorized.GET("/posts/:id", adminHandler.GetAdminPost)
				authorized.PUT("/posts/:id", adminHandler.UpdatePost)
				authorized.PUT("/posts/:id/status", adminHandler.UpdatePostStatus)
				authorized.DELETE("/posts/:id", adminHandler.DeletePost)

				// 编辑账号与角色
				authorized.GET("/editors", adminHandler.GetEditors)
				authorized.POST("/editors", adminHandler.CreateEditor)
				authorized.PUT("/editors/:id/roles", adminHandler.AssignEditorRoles)
				authorized.DELETE("/editors/:id", adminHandler.DeleteEditor)

				// 表单数据
				authorized.GET("/contact-messages", adminHandler.GetContactMessages)
				authorized.GET("/waitlist", adminHandler.GetWaitlistEntries)

				// 邮件配置检查
				authorized.POST("/email/test", adminHandler.SendTestEmail)

				// 权限目录
				authorized.GET("/permissions", func(ctx *gin.Context) {
					response.Success(ctx, buildPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

func formRateLimitRule(redisPrefix, form string, cfg config.FormRateConfig, message string) RateLimitRule {
	return RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:%s", redisPrefix, form),
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxAttempts,
		BlockSeconds:  cfg.BlockSeconds,
		Message:       message,
	}
}

// 不经过 RBAC 的后台路由
var unguardedAdminPaths = map[string]struct{}{
	"/api/v1/admin/login":    {},
	"/api/v1/admin/me":       {},
	"/api/v1/admin/password": {},
}

type permissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildPermissionCatalog(engine *gin.Engine) []permissionCatalogItem {
	if engine == nil {
		return []permissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]permissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if _, skip := unguardedAdminPaths[item.Path]; skip {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, permissionCatalogItem{
			Module:     derivePermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func derivePermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	return segments[1]
}
