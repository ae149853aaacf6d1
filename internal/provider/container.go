package provider

import (
	"time"

	"github.com/brandsite-api/internal/authz"
	"github.com/brandsite-api/internal/cache"
	"github.com/brandsite-api/internal/config"
	"github.com/brandsite-api/internal/logger"
	"github.com/brandsite-api/internal/models"
	"github.com/brandsite-api/internal/queue"
	"github.com/brandsite-api/internal/repository"
	"github.com/brandsite-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	EditorRepo         repository.EditorRepository
	PostRepo           repository.PostRepository
	ContactMessageRepo repository.ContactMessageRepository
	WaitlistRepo       repository.WaitlistRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	EmailService    *service.EmailService
	CaptchaService  *service.CaptchaService
	PostService     *service.PostService
	ContactService  *service.ContactService
	WaitlistService *service.WaitlistService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.EditorRepo = repository.NewEditorRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.ContactMessageRepo = repository.NewContactMessageRepository(db)
	c.WaitlistRepo = repository.NewWaitlistRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.EditorRepo, c.AuthzService)

	listCache := cache.NewPublicPostListCache(time.Duration(c.Config.Blog.PublicCacheTTLSeconds) * time.Second)
	c.PostService = service.NewPostService(c.PostRepo, listCache)
	c.ContactService = service.NewContactService(c.ContactMessageRepo, c.QueueClient, c.EmailService, c.Config.Forms.NotifyEmail)
	c.WaitlistService = service.NewWaitlistService(c.WaitlistRepo, c.QueueClient, c.EmailService)
}

// Close 释放队列与缓存连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
