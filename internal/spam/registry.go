package spam

import (
	"context"
	"time"

	"gorm.io/gorm"

	"terminal-terrace/registry/internal/model/pkg"
	userModel "terminal-terrace/registry/internal/model/user"
)

// AbandonFields 批量废弃时写入的字段
type AbandonFields struct {
	ReplacementPackage string
	DumpedAt           time.Time
}

// Registry 处理流程依赖的关系库操作
type Registry interface {
	FindUser(ctx context.Context, username string) (*userModel.User, error)
	// Transaction 在同一个事务中执行 fn，fn 返回错误时整体回滚
	Transaction(ctx context.Context, fn func(tx Registry) error) error
	// UpdateUser 一次更新写入 enabled 与 roles
	UpdateUser(ctx context.Context, u *userModel.User) error
	// AbandonPackagesByMaintainer 按维护者批量废弃，一条 UPDATE 完成
	AbandonPackagesByMaintainer(ctx context.Context, userID uint, fields AbandonFields) (int64, error)
	// FindPackagesByMaintainer 返回维护的包，已预加载版本
	FindPackagesByMaintainer(ctx context.Context, userID uint) ([]pkg.Package, error)
	DeleteVersion(ctx context.Context, versionID uint) error
}

// GormRegistry 基于 gorm 的实现
type GormRegistry struct {
	db *gorm.DB
}

func NewGormRegistry(db *gorm.DB) *GormRegistry {
	return &GormRegistry{db: db}
}

func (r *GormRegistry) FindUser(ctx context.Context, username string) (*userModel.User, error) {
	var u userModel.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormRegistry) Transaction(ctx context.Context, fn func(tx Registry) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRegistry{db: tx})
	})
}

func (r *GormRegistry) UpdateUser(ctx context.Context, u *userModel.User) error {
	return r.db.WithContext(ctx).Model(u).Select("enabled", "roles").Updates(u).Error
}

func (r *GormRegistry) AbandonPackagesByMaintainer(ctx context.Context, userID uint, fields AbandonFields) (int64, error) {
	db := r.db.WithContext(ctx)
	maintained := db.Model(&pkg.MaintainerPackage{}).Select("package_id").Where("user_id = ?", userID)

	result := db.Model(&pkg.Package{}).
		Where("id IN (?)", maintained).
		Updates(map[string]any{
			"abandoned":           true,
			"replacement_package": fields.ReplacementPackage,
			"description":         "",
			"readme":              "",
			"indexed_at":          nil,
			"dumped_at":           fields.DumpedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *GormRegistry) FindPackagesByMaintainer(ctx context.Context, userID uint) ([]pkg.Package, error) {
	var packages []pkg.Package
	err := r.db.WithContext(ctx).
		Preload("Versions").
		Joins("JOIN maintainers_packages mp ON mp.package_id = packages.id").
		Where("mp.user_id = ?", userID).
		Order("packages.id ASC").
		Find(&packages).Error
	return packages, err
}

func (r *GormRegistry) DeleteVersion(ctx context.Context, versionID uint) error {
	return r.db.WithContext(ctx).Delete(&pkg.Version{}, versionID).Error
}
