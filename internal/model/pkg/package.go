// Package pkg 包与版本模型
package pkg

import (
	"time"

	"terminal-terrace/registry/internal/model/user"
)

// Package 包信息表
type Package struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Name               string     `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Description        string     `gorm:"type:text" json:"description"`
	Readme             string     `gorm:"type:text" json:"-"`
	Repository         string     `gorm:"type:varchar(255)" json:"repository"`
	Abandoned          bool       `gorm:"not null;default:false" json:"abandoned"`
	ReplacementPackage *string    `gorm:"type:varchar(255)" json:"replacement_package,omitempty"`
	IndexedAt          *time.Time `json:"indexed_at"`
	// 最近一次导出元数据的时间，下游用它做缓存失效
	DumpedAt  *time.Time `json:"-"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Maintainers []user.User `gorm:"many2many:maintainers_packages;joinForeignKey:PackageID;joinReferences:UserID" json:"-"`
	// 版本只属于一个包，删除必须显式进行
	Versions []Version `gorm:"foreignKey:PackageID" json:"-"`
}

func (Package) TableName() string {
	return "packages"
}

// Version 包版本表
type Version struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	PackageID         uint       `gorm:"not null;index" json:"package_id"`
	Version           string     `gorm:"type:varchar(191);not null" json:"version"`
	NormalizedVersion string     `gorm:"type:varchar(191);not null" json:"normalized_version"`
	Description       string     `gorm:"type:text" json:"description"`
	ReleasedAt        *time.Time `json:"released_at"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (Version) TableName() string {
	return "versions"
}

// MaintainerPackage 维护者关联表
type MaintainerPackage struct {
	PackageID uint `gorm:"primaryKey"`
	UserID    uint `gorm:"primaryKey;index"`
}

func (MaintainerPackage) TableName() string {
	return "maintainers_packages"
}
