// Package scheduler 把后台任务写入 jobs 表并通过 RabbitMQ 投递给 worker。
// 调用方不等待任务执行，也不等待消息发布完成。
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"terminal-terrace/registry/internal/model/job"
)

const (
	publishTimeout  = 10 * time.Second
	maxPublishTries = 3
)

// Scheduler 后台任务调度
type Scheduler interface {
	ScheduleUserScopeMigration(ctx context.Context, userID uint, oldScope, newScope string) error
}

// Publisher 消息发布，由 pkg/rabbitmq.Publisher 实现
type Publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// UserScopeMigrationPayload githubuser:migrate 任务参数
type UserScopeMigrationPayload struct {
	ID       uint   `json:"id"`
	OldScope string `json:"old_scope"`
	NewScope string `json:"new_scope"`
}

// Message 投递给 worker 的消息体
type Message struct {
	ID      uuid.UUID       `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JobScheduler 先持久化任务再异步发布
type JobScheduler struct {
	jobs       *JobRepository
	publisher  Publisher
	routingKey string
	newBackOff func() backoff.BackOff

	wg sync.WaitGroup
}

type Option func(*JobScheduler)

// WithBackOff 发布失败时的重试策略，每条消息调用一次 fn
func WithBackOff(fn func() backoff.BackOff) Option {
	return func(s *JobScheduler) {
		s.newBackOff = fn
	}
}

func defaultBackOff() backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 200 * time.Millisecond
	exp.MaxInterval = 2 * time.Second
	return backoff.WithMaxRetries(exp, maxPublishTries-1)
}

func NewJobScheduler(jobs *JobRepository, publisher Publisher, routingKey string, opts ...Option) *JobScheduler {
	s := &JobScheduler{
		jobs:       jobs,
		publisher:  publisher,
		routingKey: routingKey,
		newBackOff: defaultBackOff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *JobScheduler) ScheduleUserScopeMigration(ctx context.Context, userID uint, oldScope, newScope string) error {
	_, err := s.createJob(ctx, job.TypeGithubUserMigrate, UserScopeMigrationPayload{
		ID:       userID,
		OldScope: oldScope,
		NewScope: newScope,
	}, &userID)
	return err
}

func (s *JobScheduler) createJob(ctx context.Context, jobType string, payload any, userID *uint) (*job.Job, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	j := &job.Job{
		ID:        uuid.New(),
		Type:      jobType,
		Payload:   string(raw),
		Status:    job.StatusQueued,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.publish(context.WithoutCancel(ctx), j)
	}()
	return j, nil
}

// publish 按退避策略重试，最终失败只记录日志并把任务标记为失败
func (s *JobScheduler) publish(ctx context.Context, j *job.Job) {
	log := slog.With("job_id", j.ID, "type", j.Type)

	body, err := json.Marshal(Message{ID: j.ID, Type: j.Type, Payload: json.RawMessage(j.Payload)})
	if err != nil {
		log.ErrorContext(ctx, "序列化任务消息失败", "error", err)
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    j.ID.String(),
		Type:         j.Type,
		Timestamp:    j.CreatedAt,
		Body:         body,
	}
	op := func() error {
		return s.publisher.Publish(publishCtx, s.routingKey, msg)
	}
	notify := func(err error, wait time.Duration) {
		log.WarnContext(ctx, "发布任务消息失败，稍后重试", "error", err, "wait", wait)
	}
	err = backoff.RetryNotify(op, backoff.WithContext(s.newBackOff(), publishCtx), notify)
	if err != nil {
		log.ErrorContext(ctx, "发布任务消息失败", "error", err)
		if err := s.jobs.MarkFailed(ctx, j.ID, err.Error()); err != nil {
			log.ErrorContext(ctx, "更新任务状态失败", "error", err)
		}
		return
	}
	log.DebugContext(ctx, "任务已投递")
}

// Wait 等待所有已发起的发布完成，关闭服务前调用
func (s *JobScheduler) Wait() {
	s.wg.Wait()
}
