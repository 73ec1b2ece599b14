package profile

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/registry/config"
	"terminal-terrace/registry/internal/catalog"
	"terminal-terrace/registry/internal/favorite"
	"terminal-terrace/registry/internal/middleware"
	"terminal-terrace/registry/internal/scheduler"
	"terminal-terrace/registry/internal/user"
	"terminal-terrace/registry/pkg/database"
)

// SetupProfileRoutes 用户主页相关路由
func SetupProfileRoutes(r *gin.RouterGroup, db *gorm.DB, rdb *database.RedisClient) {
	service := NewService(
		user.NewUserRepository(db),
		catalog.NewPackageRepository(db),
		favorite.NewStore(rdb),
		scheduler.NewJobRepository(db),
		config.Conf.Registry.PageSize,
	)
	handler := NewProfileHandler(service)

	// 可选认证：antispam 用户能看到标记入口
	users := r.Group("/users/:name")
	users.Use(middleware.OptionalJWTAuth())
	{
		users.GET("/", handler.ViewProfile)
		users.GET("/packages/", handler.ListPackages)
	}

	profile := r.Group("/profile")
	profile.Use(middleware.JWTAuth())
	{
		profile.GET("", handler.MyProfile)
	}
}
