package user

import (
	"context"
	"errors"

	"gorm.io/gorm"

	userModel "terminal-terrace/registry/internal/model/user"
	"terminal-terrace/registry/pkg/response"
)

// Lookup 按用户名查找用户，把数据库错误转换为业务错误
func Lookup(ctx context.Context, repo *UserRepository, username string) (*userModel.User, error) {
	u, err := repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, toBusinessError(err)
	}
	return u, nil
}

// LookupID 按 ID 查找用户
func LookupID(ctx context.Context, repo *UserRepository, id uint) (*userModel.User, error) {
	u, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, toBusinessError(err)
	}
	return u, nil
}

func toBusinessError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("用户不存在"),
			response.WithError(err),
		)
	}
	return response.NewBusinessError(
		response.WithErrorCode(response.Fail),
		response.WithErrorMessage("查询用户失败"),
		response.WithError(err),
	)
}
