package models

import "time"

// WaitlistEntry 候补名单表
type WaitlistEntry struct {
	ID                 uint        `gorm:"primarykey" json:"id"`                                // 主键
	Email              string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"` // 邮箱（小写唯一）
	Twitter            *string     `gorm:"type:varchar(100)" json:"twitter"`                    // Twitter
	Telegram           *string     `gorm:"type:varchar(100)" json:"telegram"`                   // Telegram
	ProjectName        *string     `gorm:"type:varchar(200)" json:"project_name"`               // 项目名称
	UseCases           StringArray `gorm:"type:text" json:"use_cases"`                          // 用途
	OtherUseCase       *string     `gorm:"type:text" json:"other_use_case"`                     // 其他用途
	ProjectDescription string      `gorm:"type:text;not null" json:"project_description"`       // 项目描述
	ClientIP           string      `gorm:"type:varchar(64)" json:"client_ip"`                   // 来源 IP
	WelcomedAt         *time.Time  `json:"welcomed_at"`                                         // 欢迎邮件发送时间
	CreatedAt          time.Time   `gorm:"index" json:"created_at"`                             // 创建时间
}

// TableName 指定表名
func (WaitlistEntry) TableName() string {
	return "waitlist_entries"
}
