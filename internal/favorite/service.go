package favorite

import (
	"context"
	"errors"
	"log/slog"

	"terminal-terrace/registry/internal/auth"
	"terminal-terrace/registry/internal/catalog"
	"terminal-terrace/registry/internal/model/pkg"
	userModel "terminal-terrace/registry/internal/model/user"
	"terminal-terrace/registry/internal/pagination"
	"terminal-terrace/registry/internal/user"
	"terminal-terrace/registry/pkg/response"
)

type Service struct {
	store    *Store
	users    *user.UserRepository
	packages *catalog.PackageRepository
	pageSize int
}

func NewService(store *Store, users *user.UserRepository, packages *catalog.PackageRepository, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	return &Service{
		store:    store,
		users:    users,
		packages: packages,
		pageSize: pageSize,
	}
}

// ListFavorites 用户收藏列表（宽松分页）
// Redis 不可用时返回空页和提示，不返回错误
func (s *Service) ListFavorites(ctx context.Context, username string, page int) (*FavoritesPage, error) {
	u, err := user.Lookup(ctx, s.users, username)
	if err != nil {
		return nil, err
	}

	result := &FavoritesPage{
		User: u.Summary(),
		Page: pagination.Page[PackageItem]{
			Items:       []PackageItem{},
			CurrentPage: page,
			PageSize:    s.pageSize,
		},
	}

	if err := s.store.Ping(ctx); err != nil {
		s.degrade(ctx, result, u.ID, err)
		return result, nil
	}

	pager := pagination.New[pkg.Package](
		NewSource(s.store, s.packages, u.ID),
		pagination.WithPageSize(s.pageSize),
		pagination.WithLenient(true),
	)
	p, err := pager.Page(ctx, page)
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			s.degrade(ctx, result, u.ID, err)
			return result, nil
		}
		return nil, response.NewBusinessError(
			response.WithErrorMessage("获取收藏列表失败"),
			response.WithError(err),
		)
	}

	result.Page = pagination.Map(p, toPackageItem)
	return result, nil
}

func (s *Service) degrade(ctx context.Context, result *FavoritesPage, userID uint, err error) {
	slog.WarnContext(ctx, "收藏存储不可用，返回空列表", "user_id", userID, "error", err)
	result.Warning = WarningStoreUnavailable
}

// AddFavorite 添加收藏，只能操作自己的收藏
func (s *Service) AddFavorite(ctx context.Context, actor auth.Actor, username, packageName string) (*PackageItem, error) {
	u, p, err := s.resolve(ctx, actor, username, packageName)
	if err != nil {
		return nil, err
	}

	if err := s.store.Mark(ctx, u.ID, p.ID); err != nil {
		slog.ErrorContext(ctx, "添加收藏失败", "user_id", u.ID, "package", p.Name, "error", err)
		return nil, storeError(err)
	}

	item := toPackageItem(*p)
	return &item, nil
}

// RemoveFavorite 取消收藏，未收藏时同样成功
func (s *Service) RemoveFavorite(ctx context.Context, actor auth.Actor, username, packageName string) error {
	u, p, err := s.resolve(ctx, actor, username, packageName)
	if err != nil {
		return err
	}

	if err := s.store.Remove(ctx, u.ID, p.ID); err != nil {
		slog.ErrorContext(ctx, "取消收藏失败", "user_id", u.ID, "package", p.Name, "error", err)
		return storeError(err)
	}
	return nil
}

func (s *Service) resolve(ctx context.Context, actor auth.Actor, username, packageName string) (*userModel.User, *pkg.Package, error) {
	u, err := user.Lookup(ctx, s.users, username)
	if err != nil {
		return nil, nil, err
	}
	if actor.UserID != u.ID {
		return nil, nil, response.NewBusinessError(
			response.WithErrorCode(response.Forbidden),
			response.WithErrorMessage("不能修改其他用户的收藏"),
		)
	}

	p, err := s.packages.Lookup(ctx, packageName)
	if err != nil {
		return nil, nil, err
	}
	return u, p, nil
}

func storeError(err error) error {
	return response.NewBusinessError(
		response.WithErrorCode(response.StoreUnavailable),
		response.WithErrorMessage(WarningStoreUnavailable),
		response.WithError(err),
	)
}

func toPackageItem(p pkg.Package) PackageItem {
	return PackageItem{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Abandoned:   p.Abandoned,
	}
}
