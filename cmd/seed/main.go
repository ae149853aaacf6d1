package main

import (
	"context"
	"errors"

	"github.com/brandsite-api/internal/config"
	"github.com/brandsite-api/internal/logger"
	"github.com/brandsite-api/internal/models"
	"github.com/brandsite-api/internal/repository"
	"github.com/brandsite-api/internal/service"
)

type samplePost struct {
	Title   string
	Excerpt string
	Content string
	Tags    []string
	Status  models.PostStatus
}

var samplePosts = []samplePost{
	{
		Title:   "How We Trace Stolen Crypto Assets",
		Excerpt: "A walkthrough of on-chain tracing from first report to exchange freeze.",
		Content: "Recovering digital assets starts with a clean timeline. We collect wallet addresses, transaction hashes and the first point of contact with the attacker, then follow the funds across bridges and mixers until they touch a regulated exchange.",
		Tags:    []string{"asset-recovery", "investigations"},
		Status:  models.PostStatusPublished,
	},
	{
		Title:   "Removing Your Digital Footprint in 2026",
		Excerpt: "Data brokers, search caches and forgotten accounts.",
		Content: "Most exposure comes from data brokers that resell public records. Opt-out requests, search engine removal tools and account cleanup cover the majority of cases.",
		Tags:    []string{"privacy", "footprint"},
		Status:  models.PostStatusPublished,
	},
	{
		Title:   "Incident Response Checklist (Draft)",
		Excerpt: "Work in progress.",
		Content: "",
		Tags:    []string{"emergency-response"},
		Status:  models.PostStatusDraft,
	},
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	editor, err := models.InitDefaultEditor(cfg.Bootstrap.EditorEmail, cfg.Bootstrap.EditorPassword)
	if err != nil {
		stdLog.Fatalf("Failed to init default editor: %v", err)
	}
	if editor == nil {
		editor = &models.Editor{}
		if err := models.DB.Where("is_super = ?", true).Order("created_at ASC").First(editor).Error; err != nil {
			stdLog.Fatalf("Failed to load seed author: %v", err)
		}
	}

	// 走生命周期控制器写入，保证 slug 与发布时间规则一致
	posts := service.NewPostService(repository.NewPostRepository(models.DB), nil)
	session := service.NewEditorSession(editor.ID, editor.Email)
	ctx := context.Background()

	created := 0
	for _, sample := range samplePosts {
		excerpt := sample.Excerpt
		_, err := posts.CreateOrUpdate(ctx, session, service.PostInput{
			Title:   sample.Title,
			Excerpt: &excerpt,
			Content: sample.Content,
			Tags:    sample.Tags,
		}, sample.Status)
		if err != nil {
			if errors.Is(err, service.ErrSlugExists) {
				logger.Infow("seed_post_skipped", "title", sample.Title)
				continue
			}
			stdLog.Fatalf("Failed to seed post %q: %v", sample.Title, err)
		}
		created++
	}
	logger.Infow("seed_completed", "posts_created", created)
}
