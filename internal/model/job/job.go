package job

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeGithubUserMigrate = "githubuser:migrate"
)

const (
	StatusQueued    = "queued"
	StatusStarted   = "started"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Job 后台任务记录，由 worker 消费 RabbitMQ 消息后更新状态
type Job struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Type        string     `gorm:"type:varchar(50);not null;index" json:"type"`
	Payload     string     `gorm:"type:text;not null" json:"payload"`
	Status      string     `gorm:"type:varchar(20);not null;default:'queued'" json:"status"`
	Result      *string    `gorm:"type:text" json:"result,omitempty"`
	UserID      *uint      `gorm:"index" json:"user_id,omitempty"`
	PackageID   *uint      `gorm:"index" json:"package_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (Job) TableName() string {
	return "jobs"
}
