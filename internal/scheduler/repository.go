package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"terminal-terrace/registry/internal/model/job"
)

// JobRepository 任务记录
type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j *job.Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *JobRepository) FindByID(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	var j job.Job
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

// MarkFailed 发布失败时把任务标记为失败
func (r *JobRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&job.Job{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       job.StatusFailed,
			"result":       reason,
			"completed_at": now,
		}).Error
}

// LastByUser 用户最近一次指定类型的任务，没有时返回 nil
func (r *JobRepository) LastByUser(ctx context.Context, userID uint, jobType string) (*job.Job, error) {
	var j job.Job
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND type = ?", userID, jobType).
		Order("created_at DESC").
		First(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}
