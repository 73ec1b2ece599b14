package favorite

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/registry/config"
	"terminal-terrace/registry/internal/catalog"
	"terminal-terrace/registry/internal/middleware"
	"terminal-terrace/registry/internal/user"
	"terminal-terrace/registry/pkg/database"
)

// SetupFavoriteRoutes 收藏相关路由
func SetupFavoriteRoutes(r *gin.RouterGroup, db *gorm.DB, rdb *database.RedisClient) {
	service := NewService(
		NewStore(rdb),
		user.NewUserRepository(db),
		catalog.NewPackageRepository(db),
		config.Conf.Registry.PageSize,
	)
	handler := NewFavoriteHandler(service)

	favorites := r.Group("/users/:name/favorites")
	{
		favorites.GET("", handler.ListFavorites)
	}

	favoritesAuth := r.Group("/users/:name/favorites")
	favoritesAuth.Use(middleware.JWTAuth())
	{
		favoritesAuth.POST("", handler.AddFavorite)
		favoritesAuth.DELETE("/:vendor/:package", handler.RemoveFavorite)
	}
}
