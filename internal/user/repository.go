package user

import (
	"context"

	"gorm.io/gorm"

	userModel "terminal-terrace/registry/internal/model/user"
)

// UserRepository 用户数据访问层
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername 按用户名查找，不存在时返回 gorm.ErrRecordNotFound
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*userModel.User, error) {
	var u userModel.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID 按 ID 查找
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*userModel.User, error) {
	var u userModel.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ClearGithub 一条 UPDATE 同时清空 GitHub id/token/scope
func (r *UserRepository) ClearGithub(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&userModel.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"github_id":    nil,
			"github_token": nil,
			"github_scope": nil,
		}).Error
}
