package worker

import (
	"context"

	"github.com/brandsite-api/internal/logger"
	"github.com/brandsite-api/internal/provider"
	"github.com/brandsite-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskContactNotify, c.handleContactNotify)
	mux.HandleFunc(queue.TaskWaitlistWelcome, c.handleWaitlistWelcome)
}

func (c *Consumer) handleContactNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil {
		logger.Debugw("worker_contact_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseContactNotifyPayload(task)
	if err != nil {
		logger.Warnw("worker_contact_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.MessageID == 0 {
		logger.Debugw("worker_contact_notify_skip_invalid_payload", "message_id", payload.MessageID)
		return nil
	}
	if c.ContactService == nil {
		logger.Warnw("worker_contact_notify_skip_service_nil", "message_id", payload.MessageID)
		return nil
	}
	if err := c.ContactService.Notify(ctx, payload.MessageID); err != nil {
		logger.Warnw("worker_contact_notify_failed", "message_id", payload.MessageID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleWaitlistWelcome(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil {
		logger.Debugw("worker_waitlist_welcome_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseWaitlistWelcomePayload(task)
	if err != nil {
		logger.Warnw("worker_waitlist_welcome_unmarshal_failed", "error", err)
		return err
	}
	if payload.EntryID == 0 {
		logger.Debugw("worker_waitlist_welcome_skip_invalid_payload", "entry_id", payload.EntryID)
		return nil
	}
	if c.WaitlistService == nil {
		logger.Warnw("worker_waitlist_welcome_skip_service_nil", "entry_id", payload.EntryID)
		return nil
	}
	if err := c.WaitlistService.Welcome(ctx, payload.EntryID); err != nil {
		logger.Warnw("worker_waitlist_welcome_failed", "entry_id", payload.EntryID, "error", err)
		return err
	}
	return nil
}
