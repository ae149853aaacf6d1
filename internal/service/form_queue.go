package service

import (
	"github.com/brandsite-api/internal/queue"

	"github.com/hibiken/asynq"
)

// FormTaskQueue 表单提交后的异步邮件任务入口，由 queue.Client 实现
type FormTaskQueue interface {
	Enabled() bool
	EnqueueContactNotify(payload queue.ContactNotifyPayload, opts ...asynq.Option) error
	EnqueueWaitlistWelcome(payload queue.WaitlistWelcomePayload, opts ...asynq.Option) error
}

// FormMailer 表单相关邮件发送，由 EmailService 实现
type FormMailer interface {
	SendContactNotification(toEmail string, input ContactNotifyEmailInput) error
	SendWaitlistWelcome(toEmail, projectName string) error
}

func queueEnabled(q FormTaskQueue) bool {
	return q != nil && q.Enabled()
}
