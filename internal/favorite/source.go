package favorite

import (
	"context"

	"terminal-terrace/registry/internal/catalog"
	"terminal-terrace/registry/internal/model/pkg"
)

// Source 把某个用户的收藏适配为分页数据源
// 计数来自 Redis；切片先取 Redis 中的 ID，再一次性查关系库。
// 已删除的包会被跳过，所以一页可能少于 limit 条。
type Source struct {
	store    *Store
	packages *catalog.PackageRepository
	userID   uint
}

func NewSource(store *Store, packages *catalog.PackageRepository, userID uint) *Source {
	return &Source{store: store, packages: packages, userID: userID}
}

func (s *Source) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx, s.userID)
}

func (s *Source) Slice(ctx context.Context, offset, limit int) ([]pkg.Package, error) {
	ids, err := s.store.Page(ctx, s.userID, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.packages.FindByIDs(ctx, ids)
}
