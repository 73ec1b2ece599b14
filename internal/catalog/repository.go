// Package catalog 包与版本的只读查询
package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"terminal-terrace/registry/internal/model/pkg"
	"terminal-terrace/registry/internal/pagination"
	"terminal-terrace/registry/pkg/response"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

// FindByName 按包名查找
func (r *PackageRepository) FindByName(ctx context.Context, name string) (*pkg.Package, error) {
	var p pkg.Package
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDs 按给定 ID 顺序返回包，不存在的 ID 直接跳过
func (r *PackageRepository) FindByIDs(ctx context.Context, ids []uint) ([]pkg.Package, error) {
	if len(ids) == 0 {
		return []pkg.Package{}, nil
	}

	var found []pkg.Package
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]pkg.Package, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	result := make([]pkg.Package, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

// MaintainedBy 用户维护的包（含共同维护），按包名排序
func (r *PackageRepository) MaintainedBy(userID uint) pagination.Source[pkg.Package] {
	query := r.db.Model(&pkg.Package{}).
		Joins("JOIN maintainers_packages mp ON mp.package_id = packages.id").
		Where("mp.user_id = ?", userID)
	return pagination.NewQuerySource[pkg.Package](query, "packages.name ASC")
}

// Lookup 按包名查找，把数据库错误转换为业务错误
func (r *PackageRepository) Lookup(ctx context.Context, name string) (*pkg.Package, error) {
	p, err := r.FindByName(ctx, name)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("包不存在"),
			response.WithError(err),
		)
	}
	return nil, response.NewBusinessError(
		response.WithErrorMessage("查询包失败"),
		response.WithError(err),
	)
}
