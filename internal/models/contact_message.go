package models

import "time"

// ContactMessage 联系表单留言表
type ContactMessage struct {
	ID           uint       `gorm:"primarykey" json:"id"`                          // 主键
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`        // 姓名
	Organization string     `gorm:"type:varchar(200)" json:"organization"`         // 机构
	Email        string     `gorm:"type:varchar(255);not null;index" json:"email"` // 邮箱
	Phone        string     `gorm:"type:varchar(32)" json:"phone"`                 // 电话
	Service      string     `gorm:"type:varchar(100)" json:"service"`              // 咨询服务
	Message      string     `gorm:"type:text;not null" json:"message"`             // 留言内容
	ClientIP     string     `gorm:"type:varchar(64)" json:"client_ip"`             // 来源 IP
	NotifiedAt   *time.Time `json:"notified_at"`                                   // 通知邮件发送时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                       // 创建时间
}

// TableName 指定表名
func (ContactMessage) TableName() string {
	return "contact_messages"
}
