package queue

import (
	"encoding/json"

	"github.com/brandsite-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskContactNotify 新留言通知邮件任务
	TaskContactNotify = constants.TaskContactNotify
	// TaskWaitlistWelcome 候补名单欢迎邮件任务
	TaskWaitlistWelcome = constants.TaskWaitlistWelcome
)

// ContactNotifyPayload 新留言通知任务载荷
type ContactNotifyPayload struct {
	MessageID uint `json:"message_id"`
}

// WaitlistWelcomePayload 欢迎邮件任务载荷
type WaitlistWelcomePayload struct {
	EntryID uint `json:"entry_id"`
}

// NewContactNotifyTask 创建新留言通知任务
func NewContactNotifyTask(payload ContactNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactNotify, body), nil
}

// NewWaitlistWelcomeTask 创建欢迎邮件任务
func NewWaitlistWelcomeTask(payload WaitlistWelcomePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWaitlistWelcome, body), nil
}

// ParseContactNotifyPayload 解析新留言通知载荷
func ParseContactNotifyPayload(task *asynq.Task) (ContactNotifyPayload, error) {
	var payload ContactNotifyPayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}

// ParseWaitlistWelcomePayload 解析欢迎邮件载荷
func ParseWaitlistWelcomePayload(task *asynq.Task) (WaitlistWelcomePayload, error) {
	var payload WaitlistWelcomePayload
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
