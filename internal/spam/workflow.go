// Package spam 实现“标记垃圾用户”的级联处理：
// 禁用账号并加上 ROLE_SPAMMER，批量废弃其维护的包，删除所有版本，最后把包从 provider 索引中移除。
//
// 关系库部分在一个事务内完成，要么全部生效要么全部回滚；
// 索引移除在事务提交之后逐个进行，失败只会被收集上报，不会回滚已提交的数据。
package spam

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"

	"terminal-terrace/registry/internal/auth"
	"terminal-terrace/registry/internal/model/pkg"
	userModel "terminal-terrace/registry/internal/model/user"
	"terminal-terrace/registry/pkg/response"
)

const (
	// IndexRemovalFailedKind 写入 PackageRef.Error，具体原因只记录在日志中
	IndexRemovalFailedKind = "index_removal_failed"

	DefaultReplacement = "spam/spam"
	indexRemoveTimeout = 10 * time.Second
)

// DefaultPoisonDumpedAt 远未来的导出时间，下游导出任务会一直跳过这些包
var DefaultPoisonDumpedAt = time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// IndexRemover provider 索引的移除操作，需要幂等
type IndexRemover interface {
	Remove(ctx context.Context, name string) error
}

type Config struct {
	Replacement    string
	PoisonDumpedAt time.Time
}

type Workflow struct {
	registry Registry
	index    IndexRemover
	cfg      Config
	validate *validator.Validate
}

func NewWorkflow(registry Registry, index IndexRemover, cfg Config) *Workflow {
	if cfg.Replacement == "" {
		cfg.Replacement = DefaultReplacement
	}
	if cfg.PoisonDumpedAt.IsZero() {
		cfg.PoisonDumpedAt = DefaultPoisonDumpedAt
	}

	v := validator.New()
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return &Workflow{
		registry: registry,
		index:    index,
		cfg:      cfg,
		validate: v,
	}
}

func rejected(code response.ResponseCode, msg string, err error) (*Result, error) {
	result := &Result{
		Outcome:  Rejected,
		State:    StateActive,
		Reason:   msg,
		Packages: []PackageRef{},
	}
	return result, response.NewBusinessError(
		response.WithErrorCode(code),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}

// MarkSpammer 标记垃圾用户
//
// 返回的 Result 总是非空；Rejected 与事务失败同时返回业务错误，
// PartiallyApplied 不返回错误，未移除的包记录在 FailedPackages 中。
func (w *Workflow) MarkSpammer(ctx context.Context, actor auth.Actor, req MarkSpammerRequest) (*Result, error) {
	if !actor.HasRole(userModel.RoleAntispam) {
		return rejected(response.NotAuthorized, "缺少 antispam 权限", nil)
	}
	if err := w.validate.Struct(req); err != nil {
		return rejected(response.ValidationFailed, "请求无效", err)
	}

	target, err := w.registry.FindUser(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rejected(response.NotFound, "用户不存在", err)
		}
		return rejected(response.Fail, "查询用户失败", err)
	}

	log := slog.With("user_id", target.ID, "actor_id", actor.UserID)

	packages, step, err := w.applyRelational(ctx, target)
	if err != nil {
		log.ErrorContext(ctx, "标记垃圾用户失败，事务已回滚", "step", step, "error", err)
		result := &Result{
			Outcome:    Rejected,
			State:      StateFailed,
			FailedStep: step,
			Reason:     "关系库事务失败，未做任何修改",
			Packages:   []PackageRef{},
		}
		return result, response.NewBusinessError(
			response.WithErrorCode(response.TransactionFailed),
			response.WithErrorMessage("标记失败，请重试"),
			response.WithError(err),
		)
	}

	refs := make([]PackageRef, len(packages))
	for i, p := range packages {
		refs[i] = PackageRef{ID: p.ID, Name: p.Name}
	}
	log.InfoContext(ctx, "已标记垃圾用户", "packages", len(packages))

	// 提交之后不再响应取消
	result := w.removeFromIndex(context.WithoutCancel(ctx), refs)
	if result.Outcome == PartiallyApplied {
		log.WarnContext(ctx, "部分包未能从索引移除", "failed", len(result.FailedPackages))
	}
	return result, nil
}

// applyRelational 在一个事务中完成禁用、废弃和删除版本，失败时返回所在步骤
func (w *Workflow) applyRelational(ctx context.Context, target *userModel.User) ([]pkg.Package, State, error) {
	var (
		packages []pkg.Package
		step     = StateDisabling
	)

	err := w.registry.Transaction(ctx, func(tx Registry) error {
		// 禁用与加角色合并为一次用户更新
		target.Enabled = false
		step = StateRoleAssigning
		target.AddRole(userModel.RoleSpammer)
		if err := tx.UpdateUser(ctx, target); err != nil {
			return fmt.Errorf("update user: %w", err)
		}

		step = StatePackagesAbandoning
		if _, err := tx.AbandonPackagesByMaintainer(ctx, target.ID, AbandonFields{
			ReplacementPackage: w.cfg.Replacement,
			DumpedAt:           w.cfg.PoisonDumpedAt,
		}); err != nil {
			return fmt.Errorf("abandon packages: %w", err)
		}

		var err error
		packages, err = tx.FindPackagesByMaintainer(ctx, target.ID)
		if err != nil {
			return fmt.Errorf("load packages: %w", err)
		}

		step = StateVersionsRemoving
		for _, p := range packages {
			for _, v := range p.Versions {
				if err := tx.DeleteVersion(ctx, v.ID); err != nil {
					return fmt.Errorf("delete version %d of %s: %w", v.ID, p.Name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, step, err
	}
	return packages, StateIndexRemoving, nil
}

// RetryIndexRemoval 只重新执行索引移除，可重复调用
func (w *Workflow) RetryIndexRemoval(ctx context.Context, actor auth.Actor, names []string) (*Result, error) {
	if !actor.HasRole(userModel.RoleAntispam) {
		return rejected(response.NotAuthorized, "缺少 antispam 权限", nil)
	}
	if len(names) == 0 {
		return rejected(response.ValidationFailed, "未指定包", nil)
	}

	refs := make([]PackageRef, len(names))
	for i, name := range names {
		refs[i] = PackageRef{Name: name}
	}
	return w.removeFromIndex(context.WithoutCancel(ctx), refs), nil
}

// removeFromIndex 逐个移除，失败的包单独记录
func (w *Workflow) removeFromIndex(ctx context.Context, refs []PackageRef) *Result {
	var errs *multierror.Error
	failed := []PackageRef{}

	for _, ref := range refs {
		removeCtx, cancel := context.WithTimeout(ctx, indexRemoveTimeout)
		err := w.index.Remove(removeCtx, ref.Name)
		cancel()
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", ref.Name, err))
			ref.Error = IndexRemovalFailedKind
			failed = append(failed, ref)
		}
	}

	result := &Result{
		Outcome:  Applied,
		State:    StateDone,
		Packages: refs,
	}
	if err := errs.ErrorOrNil(); err != nil {
		slog.WarnContext(ctx, "provider 索引移除失败", "error", err)
		result.Outcome = PartiallyApplied
		result.State = StateIndexRemoving
		result.FailedStep = StateIndexRemoving
		result.Reason = "部分包仍在 provider 索引中，可稍后重试"
		result.FailedPackages = failed
	}
	return result
}
