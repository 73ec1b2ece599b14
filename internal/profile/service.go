// Package profile 用户主页与包列表
package profile

import (
	"context"
	"log/slog"

	"terminal-terrace/registry/internal/auth"
	"terminal-terrace/registry/internal/catalog"
	"terminal-terrace/registry/internal/favorite"
	"terminal-terrace/registry/internal/model/job"
	"terminal-terrace/registry/internal/model/pkg"
	userModel "terminal-terrace/registry/internal/model/user"
	"terminal-terrace/registry/internal/pagination"
	"terminal-terrace/registry/internal/scheduler"
	"terminal-terrace/registry/internal/user"
	"terminal-terrace/registry/pkg/response"
)

type Service struct {
	users     *user.UserRepository
	packages  *catalog.PackageRepository
	favorites *favorite.Store
	jobs      *scheduler.JobRepository
	pageSize  int
}

func NewService(
	users *user.UserRepository,
	packages *catalog.PackageRepository,
	favorites *favorite.Store,
	jobs *scheduler.JobRepository,
	pageSize int,
) *Service {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &Service{
		users:     users,
		packages:  packages,
		favorites: favorites,
		jobs:      jobs,
		pageSize:  pageSize,
	}
}

// ListPackages 用户维护的包（宽松分页，按包名排序）
func (s *Service) ListPackages(ctx context.Context, username string, page int) (*PackagesPage, error) {
	u, err := user.Lookup(ctx, s.users, username)
	if err != nil {
		return nil, err
	}
	return s.packagesOf(ctx, u, page)
}

// ViewProfile 用户主页，antispam 用户可以看到标记入口
func (s *Service) ViewProfile(ctx context.Context, viewer auth.Actor, username string, page int) (*ProfilePage, error) {
	u, err := user.Lookup(ctx, s.users, username)
	if err != nil {
		return nil, err
	}

	list, err := s.packagesOf(ctx, u, page)
	if err != nil {
		return nil, err
	}

	return &ProfilePage{
		PackagesPage:   *list,
		CanMarkSpammer: viewer.HasRole(userModel.RoleAntispam) && !u.HasRole(userModel.RoleSpammer),
	}, nil
}

// MyProfile 当前用户主页，附带最近一次 GitHub 同步任务
func (s *Service) MyProfile(ctx context.Context, actor auth.Actor, page int) (*OwnProfile, error) {
	u, err := user.LookupID(ctx, s.users, actor.UserID)
	if err != nil {
		return nil, err
	}

	list, err := s.packagesOf(ctx, u, page)
	if err != nil {
		return nil, err
	}

	result := &OwnProfile{
		PackagesPage:    *list,
		GithubConnected: u.HasGithubLink(),
	}

	last, err := s.jobs.LastByUser(ctx, u.ID, job.TypeGithubUserMigrate)
	if err != nil {
		// 同步状态只是附加信息
		slog.WarnContext(ctx, "查询 GitHub 同步任务失败", "user_id", u.ID, "error", err)
	}
	result.LastGithubSync = last
	return result, nil
}

func (s *Service) packagesOf(ctx context.Context, u *userModel.User, page int) (*PackagesPage, error) {
	pager := pagination.New[pkg.Package](
		s.packages.MaintainedBy(u.ID),
		pagination.WithPageSize(s.pageSize),
		pagination.WithLenient(true),
	)
	p, err := pager.Page(ctx, page)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorMessage("获取包列表失败"),
			response.WithError(err),
		)
	}

	favers := s.faverCounts(ctx, p.Items)
	return &PackagesPage{
		User: u.Summary(),
		Page: pagination.Map(p, func(item pkg.Package) PackageView {
			return PackageView{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				Repository:  item.Repository,
				Abandoned:   item.Abandoned,
				Favers:      favers[item.ID],
			}
		}),
	}, nil
}

// faverCounts Redis 不可用时收藏数全部为 0
func (s *Service) faverCounts(ctx context.Context, packages []pkg.Package) map[uint]int {
	ids := make([]uint, len(packages))
	for i, p := range packages {
		ids[i] = p.ID
	}

	counts, err := s.favorites.FaverCounts(ctx, ids)
	if err != nil {
		slog.WarnContext(ctx, "获取收藏数失败", "error", err)
		return map[uint]int{}
	}
	return counts
}
