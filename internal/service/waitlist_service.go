package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/brandsite-api/internal/logger"
	"github.com/brandsite-api/internal/models"
	"github.com/brandsite-api/internal/queue"
	"github.com/brandsite-api/internal/repository"
)

// WaitlistInput 候补名单提交内容
type WaitlistInput struct {
	Email              string
	Twitter            string
	Telegram           string
	ProjectName        string
	UseCases           []string
	OtherUseCase       string
	ProjectDescription string
	ClientIP           string
}

// WaitlistQuery 后台候补名单查询
type WaitlistQuery struct {
	Page     int
	PageSize int
	Search   string
}

// WaitlistService 候补名单业务服务
type WaitlistService struct {
	repo   repository.WaitlistRepository
	queue  FormTaskQueue
	mailer FormMailer
	now    func() time.Time
}

// NewWaitlistService 创建候补名单服务
func NewWaitlistService(repo repository.WaitlistRepository, taskQueue FormTaskQueue, mailer FormMailer) *WaitlistService {
	return &WaitlistService{
		repo:   repo,
		queue:  taskQueue,
		mailer: mailer,
		now:    time.Now,
	}
}

// Join 加入候补名单，同一邮箱只能登记一次
func (s *WaitlistService) Join(ctx context.Context, input WaitlistInput) (*models.WaitlistEntry, error) {
	if err := newValidationError(validateWaitlistInput(input)); err != nil {
		return nil, err
	}
	useCases := make(models.StringArray, 0, len(input.UseCases))
	for _, useCase := range input.UseCases {
		useCase = strings.TrimSpace(useCase)
		if useCase == "" || isKnownOption(useCase, useCases) {
			continue
		}
		useCases = append(useCases, useCase)
	}
	entry := &models.WaitlistEntry{
		Email:              models.NormalizeEmail(input.Email),
		Twitter:            optionalString(input.Twitter),
		Telegram:           optionalString(input.Telegram),
		ProjectName:        optionalString(input.ProjectName),
		UseCases:           useCases,
		OtherUseCase:       optionalString(input.OtherUseCase),
		ProjectDescription: strings.TrimSpace(input.ProjectDescription),
		ClientIP:           strings.TrimSpace(input.ClientIP),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrWaitlistDuplicate
		}
		return nil, repositoryError("join waitlist", err)
	}
	logger.Infow("waitlist_joined", "entry_id", entry.ID)

	if !queueEnabled(s.queue) {
		logger.Warnw("waitlist_welcome_skip_queue_disabled", "entry_id", entry.ID)
		return entry, nil
	}
	if err := s.queue.EnqueueWaitlistWelcome(queue.WaitlistWelcomePayload{EntryID: entry.ID}); err != nil {
		logger.Warnw("waitlist_welcome_enqueue_failed", "entry_id", entry.ID, "error", err)
	}
	return entry, nil
}

// Welcome 发送欢迎邮件（由 worker 调用），已发送过的条目直接跳过
func (s *WaitlistService) Welcome(ctx context.Context, entryID uint) error {
	if s.mailer == nil {
		return nil
	}
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		return repositoryError("load waitlist entry", err)
	}
	if entry == nil {
		logger.Debugw("waitlist_welcome_skip_not_found", "entry_id", entryID)
		return nil
	}
	if entry.WelcomedAt != nil {
		return nil
	}
	projectName := ""
	if entry.ProjectName != nil {
		projectName = *entry.ProjectName
	}
	if err := s.mailer.SendWaitlistWelcome(entry.Email, projectName); err != nil {
		return err
	}
	if err := s.repo.MarkWelcomed(ctx, entry.ID, s.now()); err != nil {
		return repositoryError("mark waitlist entry welcomed", err)
	}
	return nil
}

// List 后台候补名单列表
func (s *WaitlistService) List(ctx context.Context, session SessionGuard, query WaitlistQuery) ([]models.WaitlistEntry, int64, error) {
	if _, ok := currentEditor(session); !ok {
		return nil, 0, ErrAuthRequired
	}
	entries, total, err := s.repo.List(ctx, repository.WaitlistListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Search:   query.Search,
	})
	if err != nil {
		return nil, 0, repositoryError("list waitlist entries", err)
	}
	return entries, total, nil
}

func optionalString(value string) *string {
	return normalizeOptionalString(&value)
}
