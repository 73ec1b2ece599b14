package model

import (
	"gorm.io/gorm"

	"terminal-terrace/registry/internal/model/job"
	"terminal-terrace/registry/internal/model/pkg"
	"terminal-terrace/registry/internal/model/user"
)

func InitTable(db *gorm.DB) error {
	// 维护者关联表使用自定义模型
	if err := db.SetupJoinTable(&pkg.Package{}, "Maintainers", &pkg.MaintainerPackage{}); err != nil {
		return err
	}

	// 自动迁移数据库表结构
	return db.AutoMigrate(
		&user.User{},
		&pkg.Package{},
		&pkg.Version{},
		&pkg.MaintainerPackage{},
		&job.Job{},
	)
}
