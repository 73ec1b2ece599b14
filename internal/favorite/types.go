package favorite

import (
	"terminal-terrace/registry/internal/model/user"
	"terminal-terrace/registry/internal/pagination"
)

// WarningStoreUnavailable 收藏存储不可用时返回给前端的提示
const WarningStoreUnavailable = "Could not connect to the Redis database."

// PackageItem 收藏列表中的一项
type PackageItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Abandoned   bool   `json:"abandoned"`
}

// FavoritesPage 收藏列表
type FavoritesPage struct {
	User    user.Summary                 `json:"user"`
	Page    pagination.Page[PackageItem] `json:"page"`
	Warning string                       `json:"warning,omitempty"`
}

// AddFavoriteRequest 添加收藏请求
type AddFavoriteRequest struct {
	Package string `json:"package" binding:"required,max=255"`
}
