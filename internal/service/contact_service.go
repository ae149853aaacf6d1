package service

import (
	"context"
	"strings"
	"time"

	"github.com/brandsite-api/internal/logger"
	"github.com/brandsite-api/internal/models"
	"github.com/brandsite-api/internal/queue"
	"github.com/brandsite-api/internal/repository"
)

// ContactInput 联系表单提交内容
type ContactInput struct {
	Name         string
	Organization string
	Email        string
	Phone        string
	Service      string
	Message      string
	ClientIP     string
}

// ContactQuery 后台留言列表查询
type ContactQuery struct {
	Page     int
	PageSize int
	Email    string
	Service  string
}

// ContactService 联系表单业务服务
type ContactService struct {
	repo        repository.ContactMessageRepository
	queue       FormTaskQueue
	mailer      FormMailer
	notifyEmail string
	now         func() time.Time
}

// NewContactService 创建联系表单服务
func NewContactService(repo repository.ContactMessageRepository, taskQueue FormTaskQueue, mailer FormMailer, notifyEmail string) *ContactService {
	return &ContactService{
		repo:        repo,
		queue:       taskQueue,
		mailer:      mailer,
		notifyEmail: strings.TrimSpace(notifyEmail),
		now:         time.Now,
	}
}

// Submit 校验并保存留言，随后投递通知任务
func (s *ContactService) Submit(ctx context.Context, input ContactInput) (*models.ContactMessage, error) {
	if err := newValidationError(validateContactInput(input)); err != nil {
		return nil, err
	}
	message := &models.ContactMessage{
		Name:         strings.TrimSpace(input.Name),
		Organization: strings.TrimSpace(input.Organization),
		Email:        models.NormalizeEmail(input.Email),
		Phone:        normalizePhone(input.Phone),
		Service:      strings.TrimSpace(input.Service),
		Message:      strings.TrimSpace(input.Message),
		ClientIP:     strings.TrimSpace(input.ClientIP),
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, repositoryError("save contact message", err)
	}
	logger.Infow("contact_message_saved", "message_id", message.ID, "service", message.Service)

	if s.notifyEmail == "" {
		logger.Debugw("contact_notify_skip_no_recipient", "message_id", message.ID)
		return message, nil
	}
	if !queueEnabled(s.queue) {
		logger.Warnw("contact_notify_skip_queue_disabled", "message_id", message.ID)
		return message, nil
	}
	if err := s.queue.EnqueueContactNotify(queue.ContactNotifyPayload{MessageID: message.ID}); err != nil {
		logger.Warnw("contact_notify_enqueue_failed", "message_id", message.ID, "error", err)
	}
	return message, nil
}

// Notify 发送新留言通知邮件（由 worker 调用）
func (s *ContactService) Notify(ctx context.Context, messageID uint) error {
	if s.notifyEmail == "" || s.mailer == nil {
		logger.Debugw("contact_notify_skip_unconfigured", "message_id", messageID)
		return nil
	}
	message, err := s.repo.GetByID(ctx, messageID)
	if err != nil {
		return repositoryError("load contact message", err)
	}
	if message == nil {
		logger.Debugw("contact_notify_skip_not_found", "message_id", messageID)
		return nil
	}
	if message.NotifiedAt != nil {
		return nil
	}
	input := ContactNotifyEmailInput{
		Name:         message.Name,
		Organization: message.Organization,
		Email:        message.Email,
		Phone:        message.Phone,
		Service:      message.Service,
		Message:      message.Message,
		ClientIP:     message.ClientIP,
		SubmittedAt:  message.CreatedAt,
	}
	if err := s.mailer.SendContactNotification(s.notifyEmail, input); err != nil {
		return err
	}
	if err := s.repo.MarkNotified(ctx, message.ID, s.now()); err != nil {
		return repositoryError("mark contact message notified", err)
	}
	return nil
}

// List 后台留言列表
func (s *ContactService) List(ctx context.Context, session SessionGuard, query ContactQuery) ([]models.ContactMessage, int64, error) {
	if _, ok := currentEditor(session); !ok {
		return nil, 0, ErrAuthRequired
	}
	messages, total, err := s.repo.List(ctx, repository.ContactMessageListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		Email:    query.Email,
		Service:  query.Service,
	})
	if err != nil {
		return nil, 0, repositoryError("list contact messages", err)
	}
	return messages, total, nil
}
