// Package github GitHub 账号相关操作：触发仓库同步、解除绑定
package github

import (
	"context"
	"log/slog"

	"terminal-terrace/registry/internal/auth"
	"terminal-terrace/registry/internal/scheduler"
	"terminal-terrace/registry/internal/user"
	"terminal-terrace/registry/pkg/response"
)

const (
	MsgNotConnected = "You must connect your user account to github to sync packages."
	MsgScopeMissing = "You must refresh your GitHub token to sync packages: the OAuth scope is unknown."
	MsgSyncStarted  = "Sync started. Your packages will be updated shortly."
)

type Service struct {
	users     *user.UserRepository
	scheduler scheduler.Scheduler
}

func NewService(users *user.UserRepository, s scheduler.Scheduler) *Service {
	return &Service{users: users, scheduler: s}
}

// RequestSync 为当前用户安排一次仓库同步，不等待执行结果
func (s *Service) RequestSync(ctx context.Context, actor auth.Actor) error {
	u, err := user.LookupID(ctx, s.users, actor.UserID)
	if err != nil {
		return err
	}

	// token 只有在绑定了 GitHub 账号时才有意义
	if !u.HasGithubLink() || !u.HasGithubToken() {
		return response.NewBusinessError(
			response.WithErrorCode(response.GitHubNotConnected),
			response.WithErrorMessage(MsgNotConnected),
		)
	}
	if !u.HasGithubScope() {
		return response.NewBusinessError(
			response.WithErrorCode(response.GitHubScopeMissing),
			response.WithErrorMessage(MsgScopeMissing),
		)
	}

	if err := s.scheduler.ScheduleUserScopeMigration(ctx, u.ID, "", *u.GithubScope); err != nil {
		slog.ErrorContext(ctx, "安排 GitHub 同步失败", "user_id", u.ID, "error", err)
		return response.NewBusinessError(
			response.WithErrorMessage("安排同步任务失败"),
			response.WithError(err),
		)
	}

	slog.InfoContext(ctx, "已安排 GitHub 同步", "user_id", u.ID)
	return nil
}

// Disconnect 解除 GitHub 绑定，id/token/scope 一起清空；未绑定时什么也不做
func (s *Service) Disconnect(ctx context.Context, actor auth.Actor) (bool, error) {
	u, err := user.LookupID(ctx, s.users, actor.UserID)
	if err != nil {
		return false, err
	}

	if !u.DisconnectGithub() {
		return false, nil
	}

	if err := s.users.ClearGithub(ctx, u.ID); err != nil {
		return false, response.NewBusinessError(
			response.WithErrorMessage("解除 GitHub 绑定失败"),
			response.WithError(err),
		)
	}

	slog.InfoContext(ctx, "已解除 GitHub 绑定", "user_id", u.ID)
	return true, nil
}
